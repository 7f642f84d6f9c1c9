// Файл: internal/handlers/message_handler.go
//
// Точка входа обработки обновлений Telegram. Порядок диспетчеризации:
// команды, затем контакт, затем активный диалог заказа, затем меню.
// Роутер меню опрашивается только когда диалога нет.
package handlers

import (
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"refbot/internal/orderflow"
)

// HandleUpdate обрабатывает одно обновление Telegram. Вызывается из main
// в отдельной горутине на каждое обновление; события одного чата
// сериализуются замком сессии.
func (h *BotHandler) HandleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	message := update.Message
	chatID := message.Chat.ID

	h.Deps.SessionManager.LockChat(chatID)
	defer h.Deps.SessionManager.UnlockChat(chatID)

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	if message.Contact != nil {
		replies := h.Deps.OrderEngine.HandleContact(h.engineInput(message))
		h.sendReplies(chatID, replies)
		return
	}

	if h.Deps.OrderEngine.Active(chatID) {
		replies := h.Deps.OrderEngine.Handle(h.engineInput(message))
		h.sendReplies(chatID, replies)
		return
	}

	h.handleMenu(message)
}

// handleCommand обрабатывает команды бота (/start, /cancel).
func (h *BotHandler) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		// /start посреди диалога заказа молча сбрасывает черновик.
		if h.Deps.OrderEngine.Active(chatID) {
			h.Deps.SessionManager.ClearDraft(chatID)
			h.Deps.SessionManager.ClearState(chatID)
		}
		// Аргумент /start — реферальный код из ссылки приглашения.
		h.handleStart(message, strings.TrimSpace(message.CommandArguments()))
	case "cancel":
		if h.Deps.OrderEngine.Active(chatID) {
			h.sendReplies(chatID, h.Deps.OrderEngine.Cancel(chatID))
		}
		// /cancel вне диалога — молчаливый no-op.
	default:
		// Неизвестные команды игнорируются.
		log.Printf("handleCommand: неизвестная команда '%s' от chatID %d, игнорируется.", message.Command(), chatID)
	}
}

// handleMenu обрабатывает нажатия кнопок меню вне диалога заказа.
func (h *BotHandler) handleMenu(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	titles := h.projectTitles()
	action, title, ok := RouteMenu(message.Text, titles)
	if !ok {
		// Неопознанный текст — молчаливый no-op: ничего не отправляем.
		log.Printf("handleMenu: неопознанный ввод от chatID %d, игнорируется.", chatID)
		return
	}

	switch action {
	case ActionProjects:
		h.handleProjectsList(chatID, titles)
	case ActionFriends:
		h.handleFriendsMenu(chatID)
	case ActionOrder:
		replies := h.Deps.OrderEngine.Start(h.engineInput(message))
		h.sendReplies(chatID, replies)
	case ActionBack:
		h.handleBackToMain(chatID)
	case ActionReferralLink:
		h.handleReferralLink(chatID)
	case ActionReferralList:
		h.handleReferralList(chatID)
	case ActionBalance:
		h.handleBalance(chatID)
	case ActionDescription:
		h.handleDescription(chatID)
	case ActionProjectDetail:
		h.handleProjectDetail(chatID, title)
	}
}

// engineInput переводит сообщение Telegram во входное событие движка диалога.
func (h *BotHandler) engineInput(message *tgbotapi.Message) orderflow.Input {
	in := orderflow.Input{
		ChatID:      message.Chat.ID,
		Text:        message.Text,
		ProfileName: profileName(message.From),
	}
	if message.From != nil {
		in.Username = message.From.UserName
	}
	if message.Contact != nil {
		in.Contact = &orderflow.Contact{
			PhoneNumber: message.Contact.PhoneNumber,
			OwnerChatID: message.Contact.UserID,
		}
	}
	return in
}

// profileName собирает имя из профиля Telegram.
func profileName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return strings.TrimSpace(name)
}

// sendReplies отправляет ответы движка диалога, подбирая клавиатуру.
func (h *BotHandler) sendReplies(chatID int64, replies []orderflow.Reply) {
	for _, reply := range replies {
		var keyboard interface{}
		switch reply.Keyboard {
		case orderflow.KeyboardMain:
			keyboard = MainMenuKeyboard()
		case orderflow.KeyboardYesNo:
			keyboard = YesNoKeyboard()
		case orderflow.KeyboardContact:
			keyboard = ContactKeyboard()
		case orderflow.KeyboardRemove:
			keyboard = tgbotapi.NewRemoveKeyboard(false)
		}
		if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, reply.Text, keyboard); err != nil {
			log.Printf("sendReplies: ошибка отправки ответа для chatID %d: %v", chatID, err)
		}
	}
}
