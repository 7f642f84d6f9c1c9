package db

import (
	"log"

	"refbot/internal/models"
)

// GetNotificationSettings возвращает актуальные настройки уведомлений.
// Таблица содержит единственную строку, создаваемую миграцией; диспетчер
// читает ее заново при каждой отправке, чтобы изменения из админки
// применялись без перезапуска.
func GetNotificationSettings() (models.NotificationSettings, error) {
	var s models.NotificationSettings
	err := DB.QueryRow(`
        SELECT id, notify_email, notify_chat_id, COALESCE(email_subject, ''), header_text
        FROM notification_settings ORDER BY id LIMIT 1`).Scan(
		&s.ID, &s.NotifyEmail, &s.NotifyChatID, &s.EmailSubject, &s.HeaderText)
	if err != nil {
		log.Printf("GetNotificationSettings: ошибка чтения настроек уведомлений: %v", err)
		return s, err
	}
	return s, nil
}

// UpdateNotificationSettings обновляет настройки уведомлений (административный API).
func UpdateNotificationSettings(s models.NotificationSettings) error {
	_, err := DB.Exec(`
        UPDATE notification_settings
        SET notify_email=$1, notify_chat_id=$2, email_subject=$3, header_text=$4, updated_at=NOW()
        WHERE id=(SELECT id FROM notification_settings ORDER BY id LIMIT 1)`,
		s.NotifyEmail, s.NotifyChatID, s.EmailSubject, s.HeaderText)
	if err != nil {
		log.Printf("UpdateNotificationSettings: ошибка обновления настроек уведомлений: %v", err)
		return err
	}
	log.Println("Настройки уведомлений обновлены.")
	return nil
}

// SettingsStore адаптирует функции пакета db к интерфейсу notify.SettingsSource.
type SettingsStore struct{}

func (SettingsStore) NotificationSettings() (models.NotificationSettings, error) {
	return GetNotificationSettings()
}
