package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopnotify/svc/events"
)

type recordingDispatcher struct {
	mu   sync.Mutex
	envs []events.Envelope
	err  error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, env events.Envelope) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.envs = append(d.envs, env)
	return d.err
}

func (d *recordingDispatcher) received() []events.Envelope {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Envelope(nil), d.envs...)
}

func offlineClient(t *testing.T) *goredis.Client {
	t.Helper()
	c := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewSubscriber(t *testing.T) {
	t.Parallel()

	_, err := events.NewSubscriber(nil, &recordingDispatcher{})
	assert.ErrorIs(t, err, events.ErrClientNil)

	_, err = events.NewSubscriber(offlineClient(t), nil)
	assert.ErrorIs(t, err, events.ErrDispatcherNil)
}

func TestSubscriber_Handle(t *testing.T) {
	t.Parallel()

	t.Run("dispatches envelope", func(t *testing.T) {
		t.Parallel()
		d := &recordingDispatcher{}
		s, err := events.NewSubscriber(offlineClient(t), d, events.WithChannel("test:events"))
		require.NoError(t, err)

		ok := s.Handle(context.Background(), []byte(`{"id":"e1","kind":"post_password_reset","payload":{"user":{"email":"a@example.com"}}}`))
		assert.True(t, ok)

		got := d.received()
		require.Len(t, got, 1)
		assert.Equal(t, "e1", got[0].ID)
		assert.Equal(t, events.KindPasswordReset, got[0].Kind)
	})

	t.Run("malformed message is dropped", func(t *testing.T) {
		t.Parallel()
		d := &recordingDispatcher{}
		s, err := events.NewSubscriber(offlineClient(t), d)
		require.NoError(t, err)

		assert.False(t, s.Handle(context.Background(), []byte(`garbage`)))
		assert.Empty(t, d.received())
	})

	t.Run("dispatch failure is reported", func(t *testing.T) {
		t.Parallel()
		d := &recordingDispatcher{err: errors.New("smtp down")}
		s, err := events.NewSubscriber(offlineClient(t), d)
		require.NoError(t, err)

		assert.False(t, s.Handle(context.Background(), []byte(`{"kind":"post_password_reset","payload":{}}`)))
		assert.Len(t, d.received(), 1)
	})
}

func TestSubscriber_RunUnreachable(t *testing.T) {
	t.Parallel()

	s, err := events.NewSubscriber(offlineClient(t), &recordingDispatcher{})
	require.NoError(t, err)

	err = s.Run(context.Background())
	assert.ErrorIs(t, err, events.ErrSubscribeFailed)
}
