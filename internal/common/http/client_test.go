package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))

		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["prompt"]})
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	var out map[string]string
	err := c.PostJSON(context.Background(), srv.URL, map[string]string{"Authorization": "Bearer k"},
		map[string]string{"prompt": "hello"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "hello", out["echo"])
}

func TestClient_PostJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out map[string]string
	err := NewClient(time.Second).PostJSON(context.Background(), srv.URL, nil, map[string]string{}, &out)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "model loading")
}

func TestClient_PostJSON_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out map[string]string
	err := NewClient(5*time.Second).PostJSON(ctx, srv.URL, nil, map[string]string{}, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
