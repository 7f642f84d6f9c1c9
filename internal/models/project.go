package models

import (
	"database/sql"
	"time"
)

// Project представляет проект по заработку в интернете из каталога.
// Картинки хранятся внешним сервисом, здесь только URL.
type Project struct {
	ID          int64
	Title       string
	Description string
	ImageURL    sql.NullString
	Link        sql.NullString
	CreatedAt   time.Time
}
