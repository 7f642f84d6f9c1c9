// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TelegramToken  string
	DatabaseURL    string
	AppEnv         string
	BotUsername    string
	AdminToken     string // Токен доступа к административному API
	ReferralBonus  float64
	InviteCodeKey  string // Секрет для детерминированной выработки реферальных кодов
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	SMTPFrom       string
	HTTPPort       string
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_APITOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppEnv:        os.Getenv("ENV"),
		BotUsername:   os.Getenv("BOT_USERNAME"),
		AdminToken:    os.Getenv("ADMIN_API_TOKEN"),
		InviteCodeKey: os.Getenv("INVITE_CODE_SECRET"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		HTTPPort:      os.Getenv("PORT"),
	}

	bonusStr := os.Getenv("REFERRAL_BONUS")
	if bonusStr == "" {
		cfg.ReferralBonus = 100
	} else {
		bonus, errParse := strconv.ParseFloat(bonusStr, 64)
		if errParse != nil || bonus <= 0 {
			log.Printf("Предупреждение: некорректное значение REFERRAL_BONUS ('%s'): %v. Используется значение по умолчанию 100.", bonusStr, errParse)
			cfg.ReferralBonus = 100
		} else {
			cfg.ReferralBonus = bonus
		}
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if cfg.SMTPPort == "" {
		cfg.SMTPPort = "587"
	}

	if cfg.TelegramToken == "" {
		log.Println("Критическая ошибка: TELEGRAM_APITOKEN не установлен.")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Критическая ошибка: DATABASE_URL не установлен.")
	}
	if cfg.BotUsername == "" {
		log.Println("Предупреждение: BOT_USERNAME не установлен. Реферальные ссылки не будут работать.")
	}
	if cfg.AdminToken == "" {
		log.Println("Предупреждение: ADMIN_API_TOKEN не установлен. Административный API будет недоступен.")
	}
	if cfg.SMTPHost == "" {
		log.Println("Предупреждение: SMTP_HOST не установлен. E-mail уведомления о заказах отправляться не будут.")
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}
