package notify

import (
	"fmt"
	"mime"
	"net"
	"net/smtp"
)

// Mailer — отправка письма. В тестах подменяется записывающей заглушкой.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer отправляет письма через обычный SMTP с PLAIN-аутентификацией.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

// NewSMTPMailer создает почтовый клиент. Пустой host означает, что SMTP
// не сконфигурирован: Send будет возвращать ошибку, которую диспетчер
// логирует как пропуск канала.
func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

// Send отправляет текстовое письмо единственному получателю.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("SMTP_HOST не задан")
	}

	// Тема кодируется по RFC 2047: в ней почти всегда кириллица.
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.from, to, encodedSubject, body))

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("отправка письма через %s: %w", addr, err)
	}
	return nil
}
