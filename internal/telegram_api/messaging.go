package telegram_api

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// SendText отправляет простое текстовое сообщение без клавиатуры.
// Этим методом BotClient реализует notify.ChatSender.
func (bc *BotClient) SendText(chatID int64, text string) error {
	if bc == nil || bc.api == nil {
		return fmt.Errorf("BotClient или его API не инициализирован")
	}
	_, err := bc.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		log.Printf("SendText: ошибка отправки сообщения для chatID %d: %v", chatID, err)
	}
	return err
}

// SendTextWithKeyboard отправляет текст с reply-клавиатурой
// (или с ее удалением, если передан tgbotapi.ReplyKeyboardRemove).
func (bc *BotClient) SendTextWithKeyboard(chatID int64, text string, keyboard interface{}) error {
	if bc == nil || bc.api == nil {
		return fmt.Errorf("BotClient или его API не инициализирован")
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	_, err := bc.Send(msg)
	if err != nil {
		log.Printf("SendTextWithKeyboard: ошибка отправки сообщения для chatID %d: %v", chatID, err)
	}
	return err
}

// SendPhotoURL отправляет фото по URL с подписью и reply-клавиатурой.
// Используется карточками проектов.
func (bc *BotClient) SendPhotoURL(chatID int64, photoURL string, caption string, keyboard interface{}) error {
	if bc == nil || bc.api == nil {
		return fmt.Errorf("BotClient или его API не инициализирован")
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	if keyboard != nil {
		photo.ReplyMarkup = keyboard
	}
	_, err := bc.Send(photo)
	if err != nil {
		log.Printf("SendPhotoURL: ошибка отправки фото для chatID %d: %v", chatID, err)
	}
	return err
}

// SendPhotoBytes отправляет фото из памяти (например, сгенерированный QR-код).
func (bc *BotClient) SendPhotoBytes(chatID int64, name string, data []byte, caption string) error {
	if bc == nil || bc.api == nil {
		return fmt.Errorf("BotClient или его API не инициализирован")
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption
	_, err := bc.Send(photo)
	if err != nil {
		log.Printf("SendPhotoBytes: ошибка отправки фото для chatID %d: %v", chatID, err)
	}
	return err
}
