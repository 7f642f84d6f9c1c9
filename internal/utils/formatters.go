// Файл: internal/utils/formatters.go

package utils

import (
	"github.com/google/uuid"
)

// GenerateUUID возвращает новый UUID в строковом виде.
// Используется как идентификатор события уведомления для трассировки в логах.
func GenerateUUID() string {
	return uuid.New().String()
}
