package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flixauth/internal/client"
	"flixauth/internal/config"
	"flixauth/internal/models"
	"flixauth/internal/server"
)

func newLoginServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Port:           5000,
		AllowedOrigins: "*",
		LoginEmail:     "user@example.com",
		LoginPassword:  "password123",
		LogLevel:       "info",
		LogFormat:      "console",
	}
	srv := httptest.NewServer(server.NewServer(cfg).RegisterRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginAgainstServer(t *testing.T) {
	srv := newLoginServer(t)
	c := client.NewClient(srv.URL + "/")

	res, err := c.Login(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, res.Authenticated())
	assert.Equal(t, models.Authenticated, res.Verdict)
	assert.Equal(t, "Login successful!", res.Message)

	res, err = c.Login(context.Background(), "user@example.com", "wrongpass")
	require.NoError(t, err)
	assert.False(t, res.Authenticated())
	assert.Equal(t, models.InvalidCredentials, res.Verdict)
	assert.Equal(t, "Invalid email or password.", res.Message)
}

// A well-formed but unknown pair must not be reported as a successful login.
func TestClient_FormatValidIsNotSuccess(t *testing.T) {
	srv := newLoginServer(t)
	c := client.NewClient(srv.URL)

	res, err := c.Login(context.Background(), "someone@else.com", "longenough")
	require.NoError(t, err)
	assert.False(t, res.Authenticated())
}

func TestClient_ValidationSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()
	c := client.NewClient(srv.URL)

	_, err := c.Login(context.Background(), "bad-email", "password123")
	assert.ErrorIs(t, err, client.ErrValidation)

	_, err = c.Login(context.Background(), "user@example.com", "short")
	assert.ErrorIs(t, err, client.ErrValidation)

	assert.Zero(t, calls.Load())
}

func TestClient_MissingFieldsVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Email and password are required."}`))
	}))
	defer srv.Close()

	res, err := client.NewClient(srv.URL).Login(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.MissingFields, res.Verdict)
	assert.Equal(t, "Email and password are required.", res.Message)
}

func TestClient_UnexpectedResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"success":false,"message":"Internal server error."}`},
		{"not json", http.StatusOK, `<html>ok</html>`},
		{"success flag mismatch", http.StatusUnauthorized, `{"success":true,"message":"?"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := client.NewClient(srv.URL).Login(context.Background(), "user@example.com", "password123")
			assert.ErrorIs(t, err, client.ErrUnexpectedResponse)
		})
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.NewClient(srv.URL, client.WithHTTPClient(&http.Client{})).Login(ctx, "user@example.com", "password123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_NoBaseURL(t *testing.T) {
	_, err := client.NewClient("").Login(context.Background(), "user@example.com", "password123")
	assert.Error(t, err)
}
