package identity

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "test-api-key", r.Header.Get("apikey"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "user@example.com", creds.Email)

		_ = json.NewEncoder(w).Encode(Session{
			AccessToken: "token-123",
			TokenType:   "bearer",
			ExpiresIn:   3600,
			User:        User{ID: "u-1", Email: creds.Email},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-api-key", WithLogger(testLogger()))

	session, err := client.SignIn(context.Background(), Credentials{
		Email:    "user@example.com",
		Password: "hunter2",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-123", session.AccessToken)
	assert.Equal(t, "u-1", session.User.ID)
}

func TestSignInInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", WithLogger(testLogger()))

	session, err := client.SignIn(context.Background(), Credentials{Email: "a@b.c", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, session)
}

func TestCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(User{ID: "u-1", Email: "user@example.com"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", WithLogger(testLogger()))

	user, err := client.CurrentUser(context.Background(), "token-123")

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestCurrentUserMissingToken(t *testing.T) {
	client := NewClient("http://unused", "key", WithLogger(testLogger()))

	user, err := client.CurrentUser(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, user)
}

func TestSignOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", WithLogger(testLogger()))

	err := client.SignOut(context.Background(), "token-123")

	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestSignUpExpiredSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"JWT expired"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", WithLogger(testLogger()))

	_, err := client.SignUp(context.Background(), Credentials{Email: "a@b.c", Password: "p"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
