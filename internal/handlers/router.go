package handlers

import (
	"refbot/internal/constants"
)

// MenuAction — закрытый перечень действий меню.
type MenuAction int

const (
	ActionProjects MenuAction = iota
	ActionFriends
	ActionOrder
	ActionBack
	ActionReferralLink
	ActionReferralList
	ActionBalance
	ActionDescription
	ActionProjectDetail
)

// menuActions — словарь меню: точные строки кнопок, сопоставление
// регистрозависимое. Опечатки и произвольный текст сюда не попадают
// и молча игнорируются.
var menuActions = map[string]MenuAction{
	constants.BTN_PROJECTS:      ActionProjects,
	constants.BTN_FRIENDS:       ActionFriends,
	constants.BTN_ORDER:         ActionOrder,
	constants.BTN_ORDER_LONG:    ActionOrder,
	constants.BTN_BACK:          ActionBack,
	constants.BTN_REFERRAL_LINK: ActionReferralLink,
	constants.BTN_REFERRAL_LIST: ActionReferralList,
	constants.BTN_BALANCE:       ActionBalance,
	constants.BTN_DESCRIPTION:   ActionDescription,
}

// RouteMenu сопоставляет текст сообщения действию меню. Сначала фиксированный
// словарь, затем динамические названия проектов (для ActionProjectDetail
// второй результат — само название). Неопознанный текст — (0, "", false).
func RouteMenu(text string, projectTitles []string) (MenuAction, string, bool) {
	if action, ok := menuActions[text]; ok {
		return action, "", true
	}
	for _, title := range projectTitles {
		if text == title {
			return ActionProjectDetail, title, true
		}
	}
	return 0, "", false
}
