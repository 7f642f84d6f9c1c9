package models

import (
	"database/sql"
	"time"
)

// Member представляет участника реферальной программы (пользователя бота).
// Member represents a referral program participant (a bot user).
type Member struct {
	ID         int64
	ChatID     int64
	Name       string
	Username   sql.NullString // Telegram username, может отсутствовать
	InviteCode string         // Детерминированно выводится из ChatID один раз, никогда не перегенерируется
	ParentID   sql.NullInt64  // Пригласивший участник; NULL для корневых
	Depth      int            // Уровень в дереве: 0 для корневых, parent.Depth+1 для остальных
	Balance    float64
	CreatedAt  time.Time
}

// DisplayName возвращает имя для вывода в списках приглашенных.
func (m Member) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Username.Valid && m.Username.String != "" {
		return "@" + m.Username.String
	}
	return "Без имени"
}
