package models

import (
	"errors"
	"strings"
)

// MailOutcome reports what happened to a contact submission's email leg.
type MailOutcome string

const (
	MailSent    MailOutcome = "sent"
	MailSkipped MailOutcome = "skipped"
	MailError   MailOutcome = "error"
)

// ContactRequest is the POST /api/contact body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Validate checks the required contact fields, reporting the first missing
// one with a field-level message.
func (c *ContactRequest) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(c.Email, "@") {
		return errors.New("email must be a valid address")
	}
	if strings.TrimSpace(c.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}
