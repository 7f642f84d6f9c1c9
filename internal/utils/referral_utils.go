package utils

import (
	"fmt"
	"log"

	"github.com/skip2/go-qrcode"
)

// GenerateReferralLink генерирует реферальную ссылку для участника.
// botUsername должен передаваться, так как это конфигурационное значение.
func GenerateReferralLink(botUsername string, inviteCode string) (string, error) {
	if botUsername == "" {
		log.Println("GenerateReferralLink: botUsername не предоставлен.")
		return "", fmt.Errorf("имя пользователя бота не настроено")
	}
	if inviteCode == "" {
		log.Println("GenerateReferralLink: пустой реферальный код.")
		return "", fmt.Errorf("реферальный код не задан")
	}
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, inviteCode), nil
}

// GenerateReferralQRCode генерирует QR-код для реферальной ссылки.
func GenerateReferralQRCode(botUsername string, inviteCode string) ([]byte, error) {
	link, err := GenerateReferralLink(botUsername, inviteCode)
	if err != nil {
		return nil, err
	}

	// qrcode.Medium — уровень коррекции ошибок, 256 — размер в пикселях.
	qrBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		log.Printf("GenerateReferralQRCode: ошибка кодирования QR-кода для ссылки '%s': %v", link, err)
		return nil, err
	}
	return qrBytes, nil
}
