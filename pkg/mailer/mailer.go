package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends credential emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a new Mailer.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendCredentials mails a generated password to a freshly created account.
func (m *Mailer) SendCredentials(recipient, password string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", "Your closed auction account credentials")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello,\n\n"+
			"You have been invited to participate in the closed auction system for clearing company inventory.\n"+
			"An account has been created for you on the CrispyBid Bidding System.\n\n"+
			"Email: %s\n"+
			"Authentication key: %s\n\n"+
			"Please log in and set up your password as soon as possible.\n\n"+
			"Regards,\nCrispyBid team.",
		recipient, password))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send credential mail to %s: %w", recipient, err)
	}
	return nil
}
