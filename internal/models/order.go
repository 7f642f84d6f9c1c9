package models

import "time"

// Order представляет завершенный заказ, собранный диалогом оформления.
// Черновик заказа (до завершения диалога) живет только в сессии и в БД не попадает.
// Order represents a completed order collected by the intake dialog.
type Order struct {
	ID        int64
	ChatID    int64
	Name      string
	Username  string // "нет", если у пользователя не задан username
	Phone     string
	Email     string
	CreatedAt time.Time
}
