package service

import (
	"errors"
	"fmt"

	"okravets/contacts-api/pkg/security"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// MailDispatcher sends a confirmation link to a freshly registered
// address. Callers treat delivery as fire-and-forget.
type MailDispatcher interface {
	SendConfirmation(to, username, baseURL string) error
}

type Mailer struct {
	tokens *security.TokenMaker

	host     string
	port     int
	sender   string
	password string
}

func NewMailer(tokens *security.TokenMaker) *Mailer {
	return &Mailer{
		tokens:   tokens,
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
	}
}

// SendConfirmation mints an email-scoped token and mails a link that
// verifies the account when opened
func (m *Mailer) SendConfirmation(to, username, baseURL string) error {
	if to == m.sender {
		return errors.New("invalid recipient address")
	}

	token, err := m.tokens.CreateEmailToken(to)
	if err != nil {
		return fmt.Errorf("failed to generate email token, %w", err)
	}

	confirmLink := fmt.Sprintf("%s/api/auth/confirm_email/%s", baseURL, token)

	if username == "" {
		username = to
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirm your email to start using your contact book")
	msg.SetBody("text/html", fmt.Sprintf(
		"Hi %s,<br><br>Click <a href='%s'>here</a> to confirm your account. The link expires in %s.",
		username, confirmLink, m.tokens.EmailTTL))

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	return d.DialAndSend(msg)
}
