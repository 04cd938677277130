package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
// A message carries a plain-text body, an HTML body, or both; when both are
// set the HTML body is delivered as an alternative to the text one.
type SendEmailParams struct {
	SendTo   []string `json:"send_to"`             // Recipient addresses, all listed on one message
	Subject  string   `json:"subject"`             // Subject of the email
	BodyText string   `json:"body_text,omitempty"` // Plain-text body
	BodyHTML string   `json:"body_html,omitempty"` // HTML body
	Tag      string   `json:"tag,omitempty"`       // Optional
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the message can be handed to a transport.
func (p SendEmailParams) Validate() error {
	if len(p.SendTo) == 0 {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	for _, to := range p.SendTo {
		if strings.TrimSpace(to) == "" {
			return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
		}
		if !emailRegex.MatchString(to) {
			return fmt.Errorf("%w: SendTo must be a valid email address: %q", ErrInvalidParams, to)
		}
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyText) == "" && strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyText or BodyHTML is required", ErrInvalidParams)
	}
	return nil
}
