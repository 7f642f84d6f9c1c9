package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
)

// inviteCodeKey хранит глобальный ключ выработки реферальных кодов.
// Инициализируется через InitInviteCodeKey().
var inviteCodeKey []byte

// InitInviteCodeKey инициализирует ключ из переменной окружения.
// Вызывается один раз при старте приложения. Код участника — чистая функция
// от (ключ, chatID): при смене ключа все ранее выданные коды перестанут
// резолвиться, поэтому ключ менять нельзя.
func InitInviteCodeKey(secret string) error {
	if secret == "" {
		log.Println("КРИТИЧЕСКАЯ ОШИБКА: секрет INVITE_CODE_SECRET не установлен в переменных окружения.")
		return fmt.Errorf("секрет реферальных кодов не установлен")
	}
	inviteCodeKey = []byte(secret)
	log.Println("Ключ реферальных кодов успешно инициализирован.")
	return nil
}

// DeriveInviteCode детерминированно выводит реферальный код из chatID.
// HMAC-SHA256 по десятичной записи идентификатора, усеченный до 15 байт hex.
// Код непереборный без знания ключа и стабилен между вызовами.
func DeriveInviteCode(chatID int64) (string, error) {
	if len(inviteCodeKey) == 0 {
		log.Println("DeriveInviteCode: ключ реферальных кодов не инициализирован. Вызовите InitInviteCodeKey().")
		return "", fmt.Errorf("ключ реферальных кодов не инициализирован")
	}
	mac := hmac.New(sha256.New, inviteCodeKey)
	mac.Write([]byte(strconv.FormatInt(chatID, 10)))
	sum := mac.Sum(nil)
	return hex.EncodeToString(sum[:15]), nil
}
