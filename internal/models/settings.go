package models

import "database/sql"

// NotificationSettings — контакты владельца бота для уведомлений о заказах.
// Редактируются через административный API, читаются диспетчером уведомлений
// в момент отправки.
type NotificationSettings struct {
	ID           int64
	NotifyEmail  sql.NullString // Адрес для e-mail уведомлений; пусто — канал выключен
	NotifyChatID sql.NullInt64  // ChatID для уведомлений в Telegram; пусто — канал выключен
	EmailSubject string         // Тема письма; при пустом значении используется тема по умолчанию
	HeaderText   sql.NullString // Свободный текст, добавляемый перед данными заказа
}
