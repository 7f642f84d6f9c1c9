// Файл: internal/notify/dispatcher.go
//
// Диспетчер уведомлений о заказах. Рассылает событие завершенного заказа
// в чат менеджера и на e-mail. Каналы независимы: сбой одного не мешает
// другому, ошибки логируются и никогда не поднимаются к диалогу.
package notify

import (
	"log"
	"strings"

	"refbot/internal/models"
	"refbot/internal/utils"
)

// SettingsSource отдает актуальные настройки уведомлений. Реализуется
// пакетом db; настройки читаются заново при каждой отправке, чтобы
// изменения из админки применялись сразу.
type SettingsSource interface {
	NotificationSettings() (models.NotificationSettings, error)
}

// ChatSender отправляет текст в Telegram-чат. Реализуется пакетом telegram_api.
type ChatSender interface {
	SendText(chatID int64, text string) error
}

// Dispatcher — рассылка уведомлений о заказах.
type Dispatcher struct {
	settings SettingsSource
	chat     ChatSender
	mailer   Mailer
}

// NewDispatcher создает диспетчер уведомлений.
func NewDispatcher(settings SettingsSource, chat ChatSender, mailer Mailer) *Dispatcher {
	return &Dispatcher{
		settings: settings,
		chat:     chat,
		mailer:   mailer,
	}
}

// OrderCompleted реализует orderflow.Notifier: рассылка уходит в фоновую
// горутину, диалог пользователя ее не ждет.
func (d *Dispatcher) OrderCompleted(o models.Order) {
	go d.Dispatch(o)
}

// Dispatch выполняет рассылку синхронно. Вынесено отдельно от
// OrderCompleted, чтобы рассылку можно было проверять без гонок.
func (d *Dispatcher) Dispatch(o models.Order) {
	eventID := utils.GenerateUUID()
	log.Printf("Dispatcher.Dispatch [%s]: рассылка уведомления о заказе от chatID %d.", eventID, o.ChatID)

	settings, err := d.settings.NotificationSettings()
	if err != nil {
		log.Printf("Dispatcher.Dispatch [%s]: не удалось прочитать настройки уведомлений: %v", eventID, err)
		return
	}

	body := formatOrderText(settings, o)

	if settings.NotifyChatID.Valid {
		if errSend := d.chat.SendText(settings.NotifyChatID.Int64, body); errSend != nil {
			log.Printf("Dispatcher.Dispatch [%s]: ошибка отправки в чат %d: %v", eventID, settings.NotifyChatID.Int64, errSend)
		}
	} else {
		log.Printf("Dispatcher.Dispatch [%s]: чат для уведомлений не настроен, канал пропущен.", eventID)
	}

	if settings.NotifyEmail.Valid && settings.NotifyEmail.String != "" {
		subject := settings.EmailSubject
		if subject == "" {
			subject = "Новый заказ"
		}
		if errMail := d.mailer.Send(settings.NotifyEmail.String, subject, body); errMail != nil {
			log.Printf("Dispatcher.Dispatch [%s]: ошибка отправки письма на %s: %v", eventID, settings.NotifyEmail.String, errMail)
		}
	} else {
		log.Printf("Dispatcher.Dispatch [%s]: e-mail для уведомлений не настроен, канал пропущен.", eventID)
	}
}

// formatOrderText собирает текст уведомления. Формат общий для чата и письма.
func formatOrderText(settings models.NotificationSettings, o models.Order) string {
	var b strings.Builder
	if settings.HeaderText.Valid && settings.HeaderText.String != "" {
		b.WriteString(settings.HeaderText.String)
		b.WriteString("\n\n")
	}
	b.WriteString("Новый заказ!\n\n")
	b.WriteString("Имя: " + o.Name + "\n")
	b.WriteString("Telegram: " + formatUsername(o.Username) + "\n")
	b.WriteString("Телефон: " + o.Phone + "\n")
	b.WriteString("E-mail: " + o.Email + "\n")
	return b.String()
}

func formatUsername(username string) string {
	if username == "" || username == "нет" {
		return "нет"
	}
	return "@" + username
}
