package notify

import "errors"

var (
	// ErrUnknownOrderState is returned for order state codes outside the fixed table.
	ErrUnknownOrderState = errors.New("notify: unknown order state")

	// ErrNotFound is returned by repositories when a referenced user does not exist.
	ErrNotFound = errors.New("notify: not found")

	// ErrRepositoryNil is returned when a nil repository is passed to New.
	ErrRepositoryNil = errors.New("notify: repository cannot be nil")

	// ErrSenderNil is returned when a nil email sender is passed to New.
	ErrSenderNil = errors.New("notify: email sender cannot be nil")
)
