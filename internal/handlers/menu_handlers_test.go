package handlers

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"refbot/internal/constants"
	"refbot/internal/models"
)

func member(name string, username string) models.Member {
	m := models.Member{Name: name}
	if username != "" {
		m.Username = sql.NullString{String: username, Valid: true}
	}
	return m
}

func TestFormatReferralLevels(t *testing.T) {
	levels := map[int][]models.Member{
		1: {member("Иван", ""), member("", "masha_tg")},
		3: {member("Петр", "")},
	}

	text := formatReferralLevels(levels)

	assert.Contains(t, text, "Первый уровень:")
	assert.Contains(t, text, "— Иван")
	assert.Contains(t, text, "— @masha_tg")
	// Пустой второй уровень опускается.
	assert.NotContains(t, text, "Второй уровень:")
	assert.Contains(t, text, "Третий уровень:")
	assert.Contains(t, text, "— Петр")
}

func TestFormatReferralLevels_Empty(t *testing.T) {
	assert.Equal(t, constants.EmptyReferralsText, formatReferralLevels(nil))
	assert.Equal(t, constants.EmptyReferralsText, formatReferralLevels(map[int][]models.Member{}))
}
