package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// postmarkMaxRecipients is the per-message recipient limit of the Postmark API.
const postmarkMaxRecipients = 50

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// PostmarkOption configures the Postmark-backed sender.
type PostmarkOption func(*postmark.Client)

// WithPostmarkBaseURL points the client at a different API endpoint.
// Used by tests and by Postmark-compatible sandboxes.
func WithPostmarkBaseURL(url string) PostmarkOption {
	return func(c *postmark.Client) {
		if url != "" {
			c.BaseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// NewPostmarkClient creates a Postmark-backed email sender.
// Both tokens are required for runtime operation - this enforces
// explicit configuration rather than silent failures in production.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if err := validateAddresses(cfg); err != nil {
		return nil, err
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(client)
	}

	return &postmarkClient{
		client: client,
		config: cfg,
	}, nil
}

// MustNewPostmarkClient creates a Postmark client that panics on invalid config.
func MustNewPostmarkClient(cfg Config, opts ...PostmarkOption) EmailSender {
	client, err := NewPostmarkClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements EmailSender using Postmark's transactional API.
// Recipient lists above the API limit are split into several requests carrying
// the same content; the first failing request aborts the rest.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	for _, to := range chunk(params.SendTo, postmarkMaxRecipients) {
		resp, err := c.client.SendEmail(ctx, postmark.Email{
			From:       c.config.SenderEmail,
			ReplyTo:    c.config.SupportEmail,
			To:         strings.Join(to, ","),
			Subject:    params.Subject,
			Tag:        params.Tag,
			TextBody:   params.BodyText,
			HTMLBody:   params.BodyHTML,
			TrackOpens: params.BodyHTML != "",
			TrackLinks: "HtmlOnly",
		})
		if err != nil {
			return errors.Join(ErrFailedToSendEmail, err)
		}
		if resp.ErrorCode > 0 {
			return errors.Join(
				ErrFailedToSendEmail,
				fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
			)
		}
	}
	return nil
}

func validateAddresses(cfg Config) error {
	if cfg.SenderEmail == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail == "" {
		return fmt.Errorf("%w: SupportEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SupportEmail) {
		return fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}

func chunk(addrs []string, size int) [][]string {
	out := make([][]string, 0, (len(addrs)+size-1)/size)
	for len(addrs) > size {
		out = append(out, addrs[:size])
		addrs = addrs[size:]
	}
	if len(addrs) > 0 {
		out = append(out, addrs)
	}
	return out
}
