package teams

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresWebhook(t *testing.T) {
	_, err := NewClient(Config{})

	assert.Error(t, err)
}

func TestSendPostsTextPayload(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(Config{DefaultWebhookURL: server.URL})
	require.NoError(t, err)

	err = client.Send(context.Background(), "ops", "failed login for admin")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"text": "failed login for admin"}, got)
}

func TestSendResolvesChannelWebhook(t *testing.T) {
	var defaultHits, opsHits atomic.Int64
	defaultServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		defaultHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer defaultServer.Close()
	opsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		opsHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer opsServer.Close()

	client, err := NewClient(Config{
		DefaultWebhookURL: defaultServer.URL,
		WebhookURLs:       map[string]string{"ops": opsServer.URL},
	})
	require.NoError(t, err)

	require.NoError(t, client.Send(context.Background(), "ops", "to ops"))
	require.NoError(t, client.Send(context.Background(), "unknown", "to default"))

	assert.Equal(t, int64(1), opsHits.Load())
	assert.Equal(t, int64(1), defaultHits.Load())
}

func TestSendRetriesOnServerError(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(Config{DefaultWebhookURL: server.URL, RetryLimit: 2})
	require.NoError(t, err)

	err = client.Send(context.Background(), "", "retry me")

	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestSendReturnsLastErrorWhenExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such webhook", http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(Config{DefaultWebhookURL: server.URL, RetryLimit: 1})
	require.NoError(t, err)

	err = client.Send(context.Background(), "", "doomed")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
