package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"refbot/internal/constants"
)

func TestRouteMenu_FixedVocabulary(t *testing.T) {
	tests := []struct {
		text string
		want MenuAction
	}{
		{constants.BTN_PROJECTS, ActionProjects},
		{constants.BTN_FRIENDS, ActionFriends},
		{constants.BTN_ORDER, ActionOrder},
		{constants.BTN_ORDER_LONG, ActionOrder},
		{"Сделать заказ", ActionOrder},
		{constants.BTN_BACK, ActionBack},
		{constants.BTN_REFERRAL_LINK, ActionReferralLink},
		{constants.BTN_REFERRAL_LIST, ActionReferralList},
		{constants.BTN_BALANCE, ActionBalance},
		{constants.BTN_DESCRIPTION, ActionDescription},
	}
	for _, tt := range tests {
		action, title, ok := RouteMenu(tt.text, nil)
		assert.True(t, ok, tt.text)
		assert.Equal(t, tt.want, action, tt.text)
		assert.Empty(t, title)
	}
}

func TestRouteMenu_CaseSensitive(t *testing.T) {
	_, _, ok := RouteMenu("баланс", nil)
	assert.False(t, ok)

	_, _, ok = RouteMenu("ЗАКАЗАТЬ", nil)
	assert.False(t, ok)
}

func TestRouteMenu_ProjectTitles(t *testing.T) {
	titles := []string{"Проект Альфа", "Проект Бета"}

	action, title, ok := RouteMenu("Проект Бета", titles)
	assert.True(t, ok)
	assert.Equal(t, ActionProjectDetail, action)
	assert.Equal(t, "Проект Бета", title)

	// Название с другим регистром не совпадает.
	_, _, ok = RouteMenu("проект бета", titles)
	assert.False(t, ok)
}

func TestRouteMenu_UnknownInput(t *testing.T) {
	_, _, ok := RouteMenu("привет", []string{"Проект Альфа"})
	assert.False(t, ok)

	_, _, ok = RouteMenu("", nil)
	assert.False(t, ok)
}
