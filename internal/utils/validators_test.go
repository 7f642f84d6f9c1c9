package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"простой адрес", "user@example.com", "user@example.com", false},
		{"точка в локальной части", "user.name@domain.co", "user.name@domain.co", false},
		{"поддомен", "user@mail.example.ru", "user@mail.example.ru", false},
		{"обрезаются пробелы", "  user@example.com  ", "user@example.com", false},
		{"нет точки в домене", "user@domain", "", true},
		{"произвольный текст", "not-an-email", "", true},
		{"пустая строка", "", "", true},
		{"только пробелы", "   ", "", true},
		{"нет локальной части", "@example.com", "", true},
		{"слишком длинный TLD", "user@example.commerce", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEmail(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	got, err := ValidateName("  Иван Петров  ")
	assert.NoError(t, err)
	assert.Equal(t, "Иван Петров", got)

	_, err = ValidateName("   ")
	assert.Error(t, err)

	_, err = ValidateName(strings.Repeat("а", 101))
	assert.Error(t, err)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+79001234567", NormalizePhone("79001234567"))
	assert.Equal(t, "+79001234567", NormalizePhone("+79001234567"))
	assert.Equal(t, "", NormalizePhone("  "))
}
