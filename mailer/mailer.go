package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"github.com/sanketa/backend/models"
)

// Mailer sends contact form submissions over SMTP. When no SMTP host is
// configured the mailer stays disabled and submissions are accepted but
// reported as skipped, so the demo works without credentials.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

// New builds a Mailer from SMTP settings. Any of them may be empty.
func New(host string, port int, username, password, to string) *Mailer {
	from := username
	if from == "" {
		from = "noreply@sanketa.local"
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.to != ""
}

// Send delivers a contact submission and reports the outcome. A delivery
// failure is logged but not returned as an error: the submission itself
// already succeeded from the caller's point of view.
func (m *Mailer) Send(ctx context.Context, req models.ContactRequest) models.MailOutcome {
	if !m.Enabled() {
		return models.MailSkipped
	}

	subject := req.Subject
	if subject == "" {
		subject = "Contact Form"
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		log.Printf("mailer: invalid from address %q: %v", m.from, err)
		return models.MailError
	}
	if err := msg.To(m.to); err != nil {
		log.Printf("mailer: invalid to address %q: %v", m.to, err)
		return models.MailError
	}
	if err := msg.ReplyTo(req.Email); err != nil {
		log.Printf("mailer: invalid reply-to address %q: %v", req.Email, err)
		return models.MailError
	}
	msg.Subject("[Sanketa] " + subject)
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", req.Name, req.Email, req.Message))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		log.Printf("mailer: failed to create SMTP client: %v", err)
		return models.MailError
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Printf("mailer: failed to send contact mail: %v", err)
		return models.MailError
	}
	return models.MailSent
}
