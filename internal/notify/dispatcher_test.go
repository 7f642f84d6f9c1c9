package notify

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"refbot/internal/models"
)

type fakeSettings struct {
	settings models.NotificationSettings
	err      error
	reads    int
}

func (f *fakeSettings) NotificationSettings() (models.NotificationSettings, error) {
	f.reads++
	return f.settings, f.err
}

type fakeChat struct {
	sent []string
	to   []int64
	err  error
}

func (f *fakeChat) SendText(chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, chatID)
	f.sent = append(f.sent, text)
	return nil
}

type fakeMailer struct {
	to       []string
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

func fullSettings() models.NotificationSettings {
	return models.NotificationSettings{
		NotifyEmail:  sql.NullString{String: "admin@example.com", Valid: true},
		NotifyChatID: sql.NullInt64{Int64: 777, Valid: true},
		EmailSubject: "Новый заказ",
		HeaderText:   sql.NullString{String: "Заявка с бота", Valid: true},
	}
}

func testOrder() models.Order {
	return models.Order{
		ChatID:   10,
		Name:     "Иван",
		Username: "ivan_tg",
		Phone:    "+79001112233",
		Email:    "ivan@example.com",
	}
}

func TestDispatch_BothChannels(t *testing.T) {
	settings := &fakeSettings{settings: fullSettings()}
	chat := &fakeChat{}
	mailer := &fakeMailer{}
	d := NewDispatcher(settings, chat, mailer)

	d.Dispatch(testOrder())

	assert.Equal(t, []int64{777}, chat.to)
	assert.Equal(t, []string{"admin@example.com"}, mailer.to)
	assert.Equal(t, []string{"Новый заказ"}, mailer.subjects)

	// Оба канала получают один и тот же текст с полями заказа и шапкой.
	assert.Equal(t, chat.sent[0], mailer.bodies[0])
	assert.Contains(t, chat.sent[0], "Заявка с бота")
	assert.Contains(t, chat.sent[0], "Имя: Иван")
	assert.Contains(t, chat.sent[0], "Telegram: @ivan_tg")
	assert.Contains(t, chat.sent[0], "Телефон: +79001112233")
	assert.Contains(t, chat.sent[0], "E-mail: ivan@example.com")
}

func TestDispatch_ChatFailureDoesNotBlockEmail(t *testing.T) {
	settings := &fakeSettings{settings: fullSettings()}
	chat := &fakeChat{err: fmt.Errorf("чат недоступен")}
	mailer := &fakeMailer{}
	d := NewDispatcher(settings, chat, mailer)

	d.Dispatch(testOrder())

	assert.Empty(t, chat.sent)
	assert.Len(t, mailer.to, 1)
}

func TestDispatch_MissingChannelsSkipped(t *testing.T) {
	settings := &fakeSettings{settings: models.NotificationSettings{EmailSubject: "Новый заказ"}}
	chat := &fakeChat{}
	mailer := &fakeMailer{}
	d := NewDispatcher(settings, chat, mailer)

	d.Dispatch(testOrder())

	assert.Empty(t, chat.sent)
	assert.Empty(t, mailer.to)
}

func TestDispatch_SettingsReadFreshEachTime(t *testing.T) {
	settings := &fakeSettings{settings: fullSettings()}
	chat := &fakeChat{}
	mailer := &fakeMailer{}
	d := NewDispatcher(settings, chat, mailer)

	d.Dispatch(testOrder())
	// Настройки поменяли между отправками — вторая рассылка видит новые.
	settings.settings.NotifyChatID = sql.NullInt64{Int64: 888, Valid: true}
	d.Dispatch(testOrder())

	assert.Equal(t, 2, settings.reads)
	assert.Equal(t, []int64{777, 888}, chat.to)
}

func TestDispatch_SettingsErrorSkipsDelivery(t *testing.T) {
	settings := &fakeSettings{err: fmt.Errorf("база недоступна")}
	chat := &fakeChat{}
	mailer := &fakeMailer{}
	d := NewDispatcher(settings, chat, mailer)

	d.Dispatch(testOrder())

	assert.Empty(t, chat.sent)
	assert.Empty(t, mailer.to)
}

func TestFormatUsername(t *testing.T) {
	assert.Equal(t, "@ivan", formatUsername("ivan"))
	assert.Equal(t, "нет", formatUsername(""))
	assert.Equal(t, "нет", formatUsername("нет"))
}
