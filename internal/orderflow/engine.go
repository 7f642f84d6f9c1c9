// Файл: internal/orderflow/engine.go
//
// Движок диалога оформления заказа. Машина состояний на сессию:
// IDLE -> подтверждение имени -> (ручной ввод имени) -> телефон -> e-mail -> IDLE.
package orderflow

import (
	"fmt"
	"log"

	"refbot/internal/constants"
	"refbot/internal/models"
	"refbot/internal/session"
	"refbot/internal/utils"
)

// Contact — структурированный контакт из Telegram-сообщения.
type Contact struct {
	PhoneNumber string
	OwnerChatID int64
}

// Input — входящее событие сессии, уже очищенное от деталей транспорта.
type Input struct {
	ChatID      int64
	Text        string
	Username    string   // Telegram-хэндл, может быть пустым
	ProfileName string   // Имя из профиля Telegram
	Contact     *Contact // Не nil, если пришел контакт
}

// Keyboard — какую клавиатуру показать вместе с ответом.
// Сам движок про Telegram не знает, раскладку строит обработчик.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMain
	KeyboardYesNo
	KeyboardContact
	KeyboardRemove
)

// Reply — исходящее сообщение движка.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// OrderSaver сохраняет завершенный заказ. Реализуется пакетом db.
type OrderSaver interface {
	Save(o models.Order) (models.Order, error)
}

// Notifier получает событие завершенного заказа. Реализуется пакетом notify.
// Вызов не должен блокировать диалог и не возвращает ошибку: доставка
// уведомлений — забота диспетчера, а не движка.
type Notifier interface {
	OrderCompleted(o models.Order)
}

// Engine ведет диалоги оформления заказа. Все методы вызываются под
// замком сессии (session.Manager.LockChat), поэтому события одного чата
// обрабатываются строго по одному.
type Engine struct {
	sessions *session.SessionManager
	orders   OrderSaver
	notifier Notifier
}

// NewEngine создает движок диалога заказа.
func NewEngine(sessions *session.SessionManager, orders OrderSaver, notifier Notifier) *Engine {
	return &Engine{
		sessions: sessions,
		orders:   orders,
		notifier: notifier,
	}
}

// Active сообщает, идет ли у сессии диалог оформления.
func (e *Engine) Active(chatID int64) bool {
	return e.sessions.InConversation(chatID)
}

// Start начинает новый диалог заказа. Предыдущий черновик, если был,
// отбрасывается: активен ровно один диалог на сессию.
func (e *Engine) Start(in Input) []Reply {
	e.sessions.PutDraft(in.ChatID, session.OrderDraft{
		ChatID:   in.ChatID,
		Username: in.Username,
	})

	if in.ProfileName != "" {
		e.sessions.SetState(in.ChatID, constants.STATE_ORDER_NAME_CONFIRM)
		return []Reply{{
			Text:     fmt.Sprintf("Вас зовут %s?", in.ProfileName),
			Keyboard: KeyboardYesNo,
		}}
	}

	e.sessions.SetState(in.ChatID, constants.STATE_ORDER_NAME)
	return []Reply{{Text: "Как вас зовут?", Keyboard: KeyboardRemove}}
}

// Cancel прерывает диалог из любого состояния: черновик отбрасывается,
// сессия возвращается в IDLE. Уведомление не отправляется.
func (e *Engine) Cancel(chatID int64) []Reply {
	e.sessions.ClearDraft(chatID)
	e.sessions.ClearState(chatID)
	log.Printf("Engine.Cancel: диалог заказа для chatID %d отменен.", chatID)
	return []Reply{{Text: constants.OrderCanceledMessage, Keyboard: KeyboardMain}}
}

// Handle обрабатывает событие активного диалога согласно текущему состоянию.
func (e *Engine) Handle(in Input) []Reply {
	if in.Text == "/cancel" {
		return e.Cancel(in.ChatID)
	}

	state := e.sessions.GetState(in.ChatID)
	switch state {
	case constants.STATE_ORDER_NAME_CONFIRM:
		return e.handleNameConfirm(in)
	case constants.STATE_ORDER_NAME:
		return e.handleName(in)
	case constants.STATE_ORDER_PHONE:
		return e.handlePhone(in)
	case constants.STATE_ORDER_EMAIL:
		return e.handleEmail(in)
	default:
		// Сюда попадать не должны: Handle вызывается только при активном
		// диалоге. На всякий случай возвращаем сессию в IDLE.
		log.Printf("Engine.Handle: неожиданное состояние '%s' для chatID %d, сброс.", state, in.ChatID)
		return e.reset(in.ChatID)
	}
}

// HandleContact обрабатывает контакт, пришедший вне активного диалога.
// Контакт без черновика — признак рассинхронизации (например, после
// перезапуска): сессия молча возвращается в IDLE.
func (e *Engine) HandleContact(in Input) []Reply {
	if _, exists := e.sessions.GetDraft(in.ChatID); !exists {
		log.Printf("Engine.HandleContact: контакт без активного заказа от chatID %d, сброс состояния.", in.ChatID)
		return e.reset(in.ChatID)
	}
	return e.Handle(in)
}

func (e *Engine) handleNameConfirm(in Input) []Reply {
	switch in.Text {
	case constants.BTN_YES:
		draft, exists := e.sessions.GetDraft(in.ChatID)
		if !exists {
			return e.reset(in.ChatID)
		}
		draft.Name = in.ProfileName
		e.sessions.PutDraft(in.ChatID, draft)
		return e.askPhone(in.ChatID)
	case constants.BTN_NO:
		e.sessions.SetState(in.ChatID, constants.STATE_ORDER_NAME)
		return []Reply{{Text: "Как вас зовут?", Keyboard: KeyboardRemove}}
	default:
		// Любой другой ввод — переспрашиваем, состояние не меняется.
		return []Reply{{
			Text:     fmt.Sprintf("Пожалуйста, ответьте «%s» или «%s».", constants.BTN_YES, constants.BTN_NO),
			Keyboard: KeyboardYesNo,
		}}
	}
}

func (e *Engine) handleName(in Input) []Reply {
	name, err := utils.ValidateName(in.Text)
	if err != nil {
		return []Reply{{Text: "Имя не должно быть пустым. Как вас зовут?", Keyboard: KeyboardRemove}}
	}

	draft, exists := e.sessions.GetDraft(in.ChatID)
	if !exists {
		return e.reset(in.ChatID)
	}
	draft.Name = name
	e.sessions.PutDraft(in.ChatID, draft)
	return e.askPhone(in.ChatID)
}

func (e *Engine) askPhone(chatID int64) []Reply {
	e.sessions.SetState(chatID, constants.STATE_ORDER_PHONE)
	return []Reply{{
		Text:     "Отправьте ваш номер телефона кнопкой ниже.",
		Keyboard: KeyboardContact,
	}}
}

func (e *Engine) handlePhone(in Input) []Reply {
	// Телефон принимается только структурированным контактом: набранный
	// вручную текст не проверить, кнопка дает номер из профиля.
	if in.Contact == nil {
		return []Reply{{
			Text:     fmt.Sprintf("Пожалуйста, воспользуйтесь кнопкой «%s».", constants.BTN_SHARE_CONTACT),
			Keyboard: KeyboardContact,
		}}
	}

	draft, exists := e.sessions.GetDraft(in.ChatID)
	if !exists {
		log.Printf("Engine.handlePhone: контакт без черновика от chatID %d, сброс состояния.", in.ChatID)
		return e.reset(in.ChatID)
	}

	draft.Phone = utils.NormalizePhone(in.Contact.PhoneNumber)
	e.sessions.PutDraft(in.ChatID, draft)
	e.sessions.SetState(in.ChatID, constants.STATE_ORDER_EMAIL)
	return []Reply{{Text: "Укажите ваш e-mail:", Keyboard: KeyboardRemove}}
}

func (e *Engine) handleEmail(in Input) []Reply {
	email, err := utils.ValidateEmail(in.Text)
	if err != nil {
		// Отвергнутое значение возвращаем пользователю, чтобы опечатку
		// было видно сразу.
		return []Reply{{
			Text:     fmt.Sprintf("«%s» не похоже на e-mail. Попробуйте еще раз:", in.Text),
			Keyboard: KeyboardRemove,
		}}
	}

	draft, exists := e.sessions.GetDraft(in.ChatID)
	if !exists {
		return e.reset(in.ChatID)
	}
	draft.Email = email

	username := draft.Username
	if username == "" {
		username = "нет"
	}
	order := models.Order{
		ChatID:   draft.ChatID,
		Name:     draft.Name,
		Username: username,
		Phone:    draft.Phone,
		Email:    draft.Email,
	}

	saved, err := e.orders.Save(order)
	if err != nil {
		// Заказ не попал в базу, но данные уйдут в уведомление — менеджер
		// увидит заявку, пользователя повторным вводом не мучаем.
		log.Printf("Engine.handleEmail: ошибка сохранения заказа для chatID %d: %v", in.ChatID, err)
		saved = order
	}

	// Диалог завершен: черновик и состояние снимаются до уведомления,
	// поэтому событие уходит ровно один раз.
	e.sessions.ClearDraft(in.ChatID)
	e.sessions.ClearState(in.ChatID)
	e.notifier.OrderCompleted(saved)
	log.Printf("Engine.handleEmail: заказ от chatID %d оформлен.", in.ChatID)

	return []Reply{{Text: constants.OrderAcceptedMessage, Keyboard: KeyboardMain}}
}

// reset молча возвращает сессию в IDLE и показывает главное меню.
func (e *Engine) reset(chatID int64) []Reply {
	e.sessions.ClearDraft(chatID)
	e.sessions.ClearState(chatID)
	return []Reply{{Text: constants.ChooseActionMessage, Keyboard: KeyboardMain}}
}
