package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopnotify/pkg/email"
)

// MockEmailSender is a mock implementation of EmailSender for testing
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  email.SendEmailParams
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid html params",
			params: email.SendEmailParams{
				SendTo:   []string{"user@example.com"},
				Subject:  "Test Subject",
				BodyHTML: "<p>Test body</p>",
				Tag:      "test",
			},
		},
		{
			name: "valid text only",
			params: email.SendEmailParams{
				SendTo:   []string{"user@example.com"},
				Subject:  "Test Subject",
				BodyText: "Test body",
			},
		},
		{
			name: "valid multiple recipients",
			params: email.SendEmailParams{
				SendTo:   []string{"a@example.com", "test.user+tag@sub.example.com"},
				Subject:  "Test Subject",
				BodyText: "Test body",
			},
		},
		{
			name: "no recipients",
			params: email.SendEmailParams{
				Subject:  "Test Subject",
				BodyHTML: "<p>Test body</p>",
			},
			wantErr: true,
			errMsg:  "SendTo is required",
		},
		{
			name: "whitespace only recipient",
			params: email.SendEmailParams{
				SendTo:   []string{"   "},
				Subject:  "Test Subject",
				BodyHTML: "<p>Test body</p>",
			},
			wantErr: true,
			errMsg:  "SendTo is required",
		},
		{
			name: "one invalid recipient among valid ones",
			params: email.SendEmailParams{
				SendTo:   []string{"user@example.com", "invalid-email"},
				Subject:  "Test Subject",
				BodyHTML: "<p>Test body</p>",
			},
			wantErr: true,
			errMsg:  "SendTo must be a valid email address",
		},
		{
			name: "missing domain",
			params: email.SendEmailParams{
				SendTo:   []string{"user@"},
				Subject:  "Test Subject",
				BodyHTML: "<p>Test body</p>",
			},
			wantErr: true,
			errMsg:  "SendTo must be a valid email address",
		},
		{
			name: "empty subject",
			params: email.SendEmailParams{
				SendTo:   []string{"user@example.com"},
				Subject:  " ",
				BodyHTML: "<p>Test body</p>",
			},
			wantErr: true,
			errMsg:  "Subject is required",
		},
		{
			name: "no body at all",
			params: email.SendEmailParams{
				SendTo:  []string{"user@example.com"},
				Subject: "Test Subject",
			},
			wantErr: true,
			errMsg:  "BodyText or BodyHTML is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, email.ErrInvalidParams)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func readDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	files := make(map[string]string, len(entries))
	for _, e := range entries {
		files[filepath.Ext(e.Name())] = filepath.Join(dir, e.Name())
	}
	return files
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("html and text bodies with tag", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   []string{"a@example.com", "b@example.com"},
			Subject:  "Assembled order #42",
			BodyText: "Order #42",
			BodyHTML: "<p>Order #42</p>",
			Tag:      "order-state",
		})
		require.NoError(t, err)

		files := readDir(t, dir)
		require.Len(t, files, 3)
		assert.Contains(t, files[".html"], "order-state")

		html, err := os.ReadFile(files[".html"])
		require.NoError(t, err)
		assert.Equal(t, "<p>Order #42</p>", string(html))

		text, err := os.ReadFile(files[".txt"])
		require.NoError(t, err)
		assert.Equal(t, "Order #42", string(text))

		raw, err := os.ReadFile(files[".json"])
		require.NoError(t, err)
		var meta map[string]any
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, []any{"a@example.com", "b@example.com"}, meta["send_to"])
		assert.Equal(t, "Assembled order #42", meta["subject"])
		assert.Equal(t, true, meta["has_html"])
		assert.Equal(t, true, meta["has_text"])
	})

	t.Run("text only without tag uses subject", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   []string{"user@example.com"},
			Subject:  "Password Reset",
			BodyText: "Your password has been successfully reset.",
		})
		require.NoError(t, err)

		files := readDir(t, dir)
		require.Len(t, files, 2)
		assert.NotContains(t, files, ".html")
		assert.Contains(t, files[".txt"], "password_reset")
	})

	t.Run("same subject twice does not overwrite", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)
		params := email.SendEmailParams{
			SendTo:   []string{"shop@example.com"},
			Subject:  "New order #1",
			BodyHTML: "<p>x</p>",
		}

		require.NoError(t, sender.SendEmail(ctx, params))
		require.NoError(t, sender.SendEmail(ctx, params))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 4)
	})

	t.Run("validation error writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(ctx, email.SendEmailParams{
			Subject:  "Test Email",
			BodyHTML: "<p>Test content</p>",
		})
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("directory creation error", func(t *testing.T) {
		t.Parallel()

		sender := email.NewDevSender("/dev/null/cannot-create-here")

		err := sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   []string{"user@example.com"},
			Subject:  "Test Email",
			BodyHTML: "<p>Test content</p>",
		})
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "failed to create directory")
	})

	t.Run("special characters in tag are sanitized", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   []string{"user@example.com"},
			Subject:  "Subject",
			BodyHTML: "<p>x</p>",
			Tag:      "Test@Email#Subject!",
		})
		require.NoError(t, err)

		files := readDir(t, dir)
		name := filepath.Base(files[".html"])
		assert.True(t, strings.Contains(name, "_testemailsubject_"), name)
	})
}

func TestConfig_PostmarkEnabled(t *testing.T) {
	t.Parallel()

	assert.False(t, email.Config{}.PostmarkEnabled())
	assert.False(t, email.Config{PostmarkServerToken: "x"}.PostmarkEnabled())
	assert.True(t, email.Config{PostmarkServerToken: "x", PostmarkAccountToken: "y"}.PostmarkEnabled())
}

func TestEmailSender_Interface(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	params := email.SendEmailParams{
		SendTo:   []string{"user@example.com"},
		Subject:  "Test Email",
		BodyText: "Test content",
	}

	mockSender := new(MockEmailSender)
	mockSender.On("SendEmail", ctx, params).Return(email.ErrFailedToSendEmail)

	var sender email.EmailSender = mockSender
	err := sender.SendEmail(ctx, params)
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)

	mockSender.AssertExpectations(t)
}
