package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// emailRegex — консервативная проверка формы адреса: локальная часть,
// домен, опциональный поддомен и TLD из 2-6 букв. Сознательно строже RFC:
// адрес без точки в домене ("user@domain") не проходит.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)?\.[a-zA-Z]{2,6}$`)

// ValidateEmail проверяет и нормализует e-mail адрес.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("адрес пуст")
	}
	if !emailRegex.MatchString(email) {
		return "", fmt.Errorf("некорректный формат e-mail адреса")
	}
	return email, nil
}

// ValidateName проверяет введенное вручную имя заказчика.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("имя не может быть пустым")
	}
	if len(trimmed) > 100 {
		return "", fmt.Errorf("имя слишком длинное (максимум 100 символов)")
	}
	return trimmed, nil
}

// NormalizePhone приводит номер из контакта Telegram к виду с ведущим '+'.
// Контакты приходят из структурированного payload, поэтому формат здесь не
// проверяется строго — только выравнивается.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return phone
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return phone
}
