package notify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ConfirmToken is the email confirmation token of a user. A user has at most one.
type ConfirmToken struct {
	UserID    int64
	Key       string
	CreatedAt time.Time
}

// Repository is the read side of the storefront data the dispatcher needs,
// plus confirmation token bookkeeping. Implementations return fully loaded
// values; the dispatcher performs no lazy loading.
type Repository interface {
	// GetOrCreateConfirmToken returns the user's token, creating it on first
	// use. Repeated calls for one user return the same key.
	// Returns ErrNotFound when the user does not exist.
	GetOrCreateConfirmToken(ctx context.Context, userID int64) (ConfirmToken, error)

	// GetUser returns ErrNotFound when no user has the id.
	GetUser(ctx context.Context, id int64) (User, error)

	// ListUsersByType returns users of the given type ordered by id.
	ListUsersByType(ctx context.Context, t UserType) ([]User, error)

	// ListOrderItems returns the order's items in storage order.
	// An unknown order yields an empty slice.
	ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)
}

// GenerateTokenKey returns a random 64-character hex token key.
func GenerateTokenKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
