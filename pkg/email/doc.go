// Package email provides a provider-agnostic interface for sending transactional
// emails, with a Postmark implementation and a development sender that writes
// messages to disk.
//
// # Architecture
//
// Everything is built around the EmailSender interface:
//   - NewPostmarkClient for production delivery through the Postmark API
//   - NewDevSender for local development (saves .html/.txt/.json files)
//
// A message may be addressed to several recipients at once and carries a
// plain-text body, an HTML body, or both:
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   []string{"admin1@example.com", "admin2@example.com"},
//	    Subject:  "Assembled order #42",
//	    BodyText: text,
//	    BodyHTML: html,
//	    Tag:      "order-state",
//	})
//
// All implementations validate parameters before sending.
//
// # Configuration
//
// Config is loaded from the environment (see pkg/config). SenderEmail is the
// From address of every message and SupportEmail its Reply-To. When the
// Postmark tokens are empty, Config.PostmarkEnabled reports false and callers
// are expected to fall back to the DevSender.
//
// # Error Handling
//
//   - ErrInvalidConfig: configuration validation failed
//   - ErrInvalidParams: message validation failed
//   - ErrFailedToSendEmail: delivery failed
//
// # Templates
//
// The templates subpackage renders templ components to strings and ships the
// order invoice email (HTML and plain-text variants).
package email
