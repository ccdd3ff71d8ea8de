package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail delivers an HTML mail through the SMTP relay configured in the
// environment. The .env file is loaded once at startup, so this reads the
// environment directly.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("EMAIL_USER")
	if host == "" || from == "" {
		return fmt.Errorf("smtp is not configured")
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, from, os.Getenv("EMAIL_PASS"))
	return d.DialAndSend(m)
}
