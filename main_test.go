package main

import (
	"testing"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/stretchr/testify/assert"
)

func TestSenderName(t *testing.T) {
	assert.Equal(t, "?", senderName(nil))

	// Пост из канала: поле From отсутствует.
	assert.Equal(t, "?", senderName(&tgbotapi.Message{}))

	msg := &tgbotapi.Message{From: &tgbotapi.User{UserName: "ivan_tg"}}
	assert.Equal(t, "ivan_tg", senderName(msg))
}
