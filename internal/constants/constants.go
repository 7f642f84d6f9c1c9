package constants

// Состояния диалога оформления заказа
// Order conversation states
const (
	STATE_IDLE               = "idle"
	STATE_ORDER_NAME_CONFIRM = "order_name_confirm" // Подтверждение имени из профиля ("Да"/"Нет")
	STATE_ORDER_NAME         = "order_name"         // Ручной ввод имени
	STATE_ORDER_PHONE        = "order_phone"        // Ожидание контакта (кнопка "Поделиться контактом")
	STATE_ORDER_EMAIL        = "order_email"        // Ожидание e-mail
)

// Кнопки главного меню и подменю (точные строки, сопоставление регистрозависимое)
// Main menu and submenu buttons (exact strings, case-sensitive matching)
const (
	BTN_PROJECTS      = "Как зарабатывать в интернете"
	BTN_FRIENDS       = "Приглашенные друзья"
	BTN_ORDER         = "Заказать"
	BTN_ORDER_LONG    = "Сделать заказ" // Историческая формулировка кнопки; принимается наравне с BTN_ORDER
	BTN_BACK          = "Назад"
	BTN_REFERRAL_LINK = "Ссылка для приглашения"
	BTN_REFERRAL_LIST = "Список приглашенных"
	BTN_BALANCE       = "Баланс"
	BTN_DESCRIPTION   = "Описание"
	BTN_YES           = "Да"
	BTN_NO            = "Нет"
	BTN_SHARE_CONTACT = "📱 Поделиться контактом"
)

// Реферальная программа
// Referral program
const (
	// REFERRAL_BONUS_AMOUNT — фиксированное начисление предку за одного приглашенного.
	REFERRAL_BONUS_AMOUNT = 100.0
	// REFERRAL_MAX_DEPTH — бонус получают не более трех ближайших предков.
	// Ограничение глубины намеренное: защита от накрутки и от неограниченного
	// каскада начислений при длинных цепочках приглашений.
	REFERRAL_MAX_DEPTH = 3
)

// Общие текстовые сообщения
// General text messages
const (
	WelcomeMessage       = "Добро пожаловать!"
	ChooseActionMessage  = "Выберите действие"
	FriendsMenuMessage   = "Приглашенные друзья"
	ProjectsListMessage  = "Проекты по заработку в интернете:"
	EmptyReferralsText   = "Ваш список приглашенных пуст"
	OrderAcceptedMessage = "✅ Ваш заказ принят! Мы свяжемся с вами в ближайшее время."
	OrderCanceledMessage = "Заказ отменен."

	// DescriptionTemplate — текст кнопки "Описание"; подставляется размер бонуса.
	DescriptionTemplate = "Приглашайте друзей по вашей ссылке. За каждого нового участника, пришедшего по ней, вы получаете %.0f бонусов. Бонусы также получают пригласившие вас — до третьего уровня."
)

// LevelDisplayMap — заголовки уровней в списке приглашенных.
var LevelDisplayMap = map[int]string{
	1: "Первый уровень:",
	2: "Второй уровень:",
	3: "Третий уровень:",
}
