package notify

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/shopnotify/pkg/email"
)

const (
	SubjectEmailConfirmation   = "Email confirmation for your account"
	SubjectPasswordResetToken  = "Password reset token for your account"
	SubjectPasswordResetNotice = "Password reset"

	bodyPreamble = "This is an important message.\n"
)

const (
	tagEmailConfirmation = "email-confirmation"
	tagPasswordReset     = "password-reset"
	tagOrderState        = "order-state"
)

// UserRegistered sends the confirmation token to the registration address.
// The token is reused if the user already has one.
func (d *Dispatcher) UserRegistered(ctx context.Context, e UserRegistered) error {
	token, err := d.repo.GetOrCreateConfirmToken(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("get confirm token for user %d: %w", e.UserID, err)
	}

	if err := d.send(ctx, email.SendEmailParams{
		SendTo:   []string{e.Email},
		Subject:  SubjectEmailConfirmation,
		BodyText: bodyPreamble + "Your email confirmation token: " + token.Key,
		Tag:      tagEmailConfirmation,
	}); err != nil {
		return fmt.Errorf("send email confirmation: %w", err)
	}
	return nil
}

// PasswordResetTokenCreated sends the reset token to its owner.
func (d *Dispatcher) PasswordResetTokenCreated(ctx context.Context, t ResetPasswordToken) error {
	if err := d.send(ctx, email.SendEmailParams{
		SendTo:   []string{t.User.Email},
		Subject:  SubjectPasswordResetToken,
		BodyText: bodyPreamble + "Your password reset token: " + t.Key,
		Tag:      tagPasswordReset,
	}); err != nil {
		return fmt.Errorf("send password reset token: %w", err)
	}
	return nil
}

// PasswordReset tells the user their password was changed.
func (d *Dispatcher) PasswordReset(ctx context.Context, u User) error {
	if err := d.send(ctx, email.SendEmailParams{
		SendTo:   []string{u.Email},
		Subject:  SubjectPasswordResetNotice,
		BodyText: bodyPreamble + "Your password has been successfully reset.",
		Tag:      tagPasswordReset,
	}); err != nil {
		return fmt.Errorf("send password reset notice: %w", err)
	}
	return nil
}
