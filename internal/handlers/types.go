package handlers

import (
	"refbot/internal/config"
	"refbot/internal/orderflow"
	"refbot/internal/referral"
	"refbot/internal/session"
	"refbot/internal/telegram_api"
)

// HandlerDependencies содержит все зависимости, необходимые обработчикам.
// HandlerDependencies contains all dependencies required by handlers.
type HandlerDependencies struct {
	Config         *config.Config
	BotClient      *telegram_api.BotClient
	SessionManager *session.SessionManager
	OrderEngine    *orderflow.Engine
	Directory      *referral.Directory
}

// BotHandler — корневой обработчик обновлений Telegram.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	return &BotHandler{Deps: deps}
}
