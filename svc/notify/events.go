package notify

import "context"

// UserRegistered is raised after a new account is stored.
// Email is the address given at registration time.
type UserRegistered struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// ResetPasswordToken is a freshly created password reset token.
type ResetPasswordToken struct {
	Key  string `json:"key"`
	User User   `json:"user"`
}

// OrderStateChanged is raised when an order moves to a new state.
type OrderStateChanged struct {
	OrderID int64      `json:"order_id"`
	UserID  int64      `json:"user_id"`
	State   OrderState `json:"state"`
}

// Notifier handles storefront domain events by sending emails.
type Notifier interface {
	UserRegistered(ctx context.Context, e UserRegistered) error
	PasswordResetTokenCreated(ctx context.Context, t ResetPasswordToken) error
	PasswordReset(ctx context.Context, u User) error
	OrderStateChanged(ctx context.Context, e OrderStateChanged) error
}
