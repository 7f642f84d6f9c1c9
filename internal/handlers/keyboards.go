package handlers

import (
	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"refbot/internal/constants"
)

// Reply-клавиатуры бота. Все постоянные, кроме клавиатуры проектов,
// которая строится из каталога.

// MainMenuKeyboard — главное меню.
func MainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_PROJECTS)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_FRIENDS)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_ORDER)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// FriendsMenuKeyboard — подменю "Приглашенные друзья".
func FriendsMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(constants.BTN_REFERRAL_LINK),
			tgbotapi.NewKeyboardButton(constants.BTN_REFERRAL_LIST),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(constants.BTN_BALANCE),
			tgbotapi.NewKeyboardButton(constants.BTN_DESCRIPTION),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_BACK)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// ProjectsKeyboard — список проектов кнопками, по одной на проект.
func ProjectsKeyboard(titles []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(titles)+1)
	for _, title := range titles {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(title)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_BACK)))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// YesNoKeyboard — подтверждение имени в диалоге заказа.
func YesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(constants.BTN_YES),
			tgbotapi.NewKeyboardButton(constants.BTN_NO),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// ContactKeyboard — кнопка запроса контакта для шага телефона.
func ContactKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(constants.BTN_SHARE_CONTACT),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
