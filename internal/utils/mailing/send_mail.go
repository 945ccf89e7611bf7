package mailing

import (
	"fmt"
	"html"
	"pantry-manager/internal/utils"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

// Mailer sends a single HTML message.
type Mailer interface {
	Send(toEmail string, subject string, body string) error
}

type smtpMailer struct{}

func NewMailer() Mailer {
	return smtpMailer{}
}

func (smtpMailer) Send(toEmail string, subject string, body string) error {
	return SendMail(toEmail, subject, body)
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	if emailConfig.SMTPSender != "" {
		mailer.SetAddressHeader("From", emailConfig.SMTPEmail, emailConfig.SMTPSender)
	} else {
		mailer.SetHeader("From", emailConfig.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

// ListLine is one row of a shared shopping list.
type ListLine struct {
	Name     string
	Quantity float64
}

// ShoppingListBody renders the open shopping list as an HTML email body.
func ShoppingListBody(lines []ListLine) string {
	var b strings.Builder
	b.WriteString("<h2>Shopping list</h2><ul>")
	for _, line := range lines {
		fmt.Fprintf(&b, "<li>%s: %gg</li>", html.EscapeString(line.Name), line.Quantity)
	}
	b.WriteString("</ul>")
	if url := utils.GetConfig("APP_URL"); url != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Open the app</a></p>`, html.EscapeString(url))
	}
	return b.String()
}
