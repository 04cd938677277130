// Package memory provides an in-process notify.Repository used by tests and
// local runs without a database.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/shopnotify/svc/notify"
)

// Store is a mutex-guarded notify.Repository.
type Store struct {
	mu     sync.RWMutex
	users  map[int64]notify.User
	tokens map[int64]notify.ConfirmToken
	items  map[int64][]notify.OrderItem
	now    func() time.Time
}

var _ notify.Repository = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		users:  make(map[int64]notify.User),
		tokens: make(map[int64]notify.ConfirmToken),
		items:  make(map[int64][]notify.OrderItem),
		now:    time.Now,
	}
}

// AddUser inserts or replaces a user.
func (s *Store) AddUser(users ...notify.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
}

// AddOrderItems appends items to an order.
func (s *Store) AddOrderItems(orderID int64, items ...notify.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[orderID] = append(s.items[orderID], items...)
}

// GetOrCreateConfirmToken implements notify.Repository.
func (s *Store) GetOrCreateConfirmToken(_ context.Context, userID int64) (notify.ConfirmToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tokens[userID]; ok {
		return t, nil
	}
	if _, ok := s.users[userID]; !ok {
		return notify.ConfirmToken{}, notify.ErrNotFound
	}

	key, err := notify.GenerateTokenKey()
	if err != nil {
		return notify.ConfirmToken{}, err
	}
	t := notify.ConfirmToken{UserID: userID, Key: key, CreatedAt: s.now()}
	s.tokens[userID] = t
	return t, nil
}

// GetUser implements notify.Repository.
func (s *Store) GetUser(_ context.Context, id int64) (notify.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return notify.User{}, notify.ErrNotFound
	}
	return u, nil
}

// ListUsersByType implements notify.Repository.
func (s *Store) ListUsersByType(_ context.Context, t notify.UserType) ([]notify.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []notify.User
	for _, u := range s.users {
		if u.Type == t {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b notify.User) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// ListOrderItems implements notify.Repository.
func (s *Store) ListOrderItems(_ context.Context, orderID int64) ([]notify.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items[orderID]), nil
}
