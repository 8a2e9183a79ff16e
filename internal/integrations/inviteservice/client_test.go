package inviteservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Validate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/invites/good":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"valid": true, "owner_id": 42}`))
		case "/internal/invites/used":
			_, _ = w.Write([]byte(`{"valid": false, "owner_id": 42}`))
		case "/internal/invites/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	ctx := context.Background()

	invite, err := client.Validate(ctx, "good")
	require.NoError(t, err)
	assert.True(t, invite.Valid)
	assert.Equal(t, int64(42), invite.OwnerID)

	invite, err = client.Validate(ctx, "used")
	require.NoError(t, err)
	assert.False(t, invite.Valid)

	invite, err = client.Validate(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, invite.Valid)

	invite, err = client.Validate(ctx, "")
	require.NoError(t, err)
	assert.False(t, invite.Valid)

	_, err = client.Validate(ctx, "broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_ValidateUnavailable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})

	_, err := client.Validate(context.Background(), "token")

	assert.ErrorIs(t, err, ErrUnavailable)
}
