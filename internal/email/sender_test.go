package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashion-oms/oms-service/internal/email"
)

func TestClientSend(t *testing.T) {
	ctx := context.Background()

	t.Run("posts message with bearer auth", func(t *testing.T) {
		var got struct {
			From    string   `json:"from"`
			To      []string `json:"to"`
			Subject string   `json:"subject"`
			HTML    string   `json:"html"`
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := email.NewClient(email.Config{
			APIKey:  "key-123",
			BaseURL: server.URL,
			From:    "Fashion OMS <onboarding@resend.dev>",
		})

		require.NoError(t, client.Send(ctx, "u1@example.com", "Verify Admin Role Upgrade", "<p>hi</p>"))
		assert.Equal(t, []string{"u1@example.com"}, got.To)
		assert.Equal(t, "Verify Admin Role Upgrade", got.Subject)
		assert.Equal(t, "<p>hi</p>", got.HTML)
		assert.Equal(t, "Fashion OMS <onboarding@resend.dev>", got.From)
	})

	t.Run("reports api failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := email.NewClient(email.Config{APIKey: "key-123", BaseURL: server.URL, From: "x"})
		err := client.Send(ctx, "u1@example.com", "s", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("missing api key is a configuration error", func(t *testing.T) {
		client := email.NewClient(email.Config{BaseURL: "http://unused", From: "x"})
		require.ErrorIs(t, client.Send(ctx, "u1@example.com", "s", "b"), email.ErrNotConfigured)
	})
}
