package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Tengoku18/thirft-verse-sub001/internal/config"
	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelay(t *testing.T, tokenCalls *atomic.Int32, batchHandler http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		assert.Equal(t, "Key test-api-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "relay-credential"})
	})
	mux.HandleFunc("/send", batchHandler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewClient(&config.PushService{
		Endpoint:      server.URL + "/send",
		TokenEndpoint: server.URL + "/token",
		APIKey:        "test-api-key",
	})
}

func TestSendBatchDeliversToAllTokens(t *testing.T) {
	var tokenCalls atomic.Int32
	client := newTestRelay(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer relay-credential", r.Header.Get("Authorization"))

		var req struct {
			To    []string          `json:"to"`
			Title string            `json:"title"`
			Data  map[string]string `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"token-a", "token-b"}, req.To)
		assert.Equal(t, "New order received", req.Title)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"status": "ok"},
				{"status": "error", "message": "DeviceNotRegistered"},
			},
		})
	})

	tickets, err := client.SendBatch(context.Background(), &domain.PushMessage{
		Tokens: []string{"token-a", "token-b"},
		Title:  "New order received",
		Body:   "Wool jacket · Rs. 2500.00 · Asha",
	})
	require.NoError(t, err)

	// per-token outcomes are independent
	require.Len(t, tickets, 2)
	assert.True(t, tickets[0].OK)
	assert.Equal(t, "token-a", tickets[0].Token)
	assert.False(t, tickets[1].OK)
	assert.Equal(t, "DeviceNotRegistered", tickets[1].Message)
}

func TestSendBatchReusesCredentialAcrossCalls(t *testing.T) {
	var tokenCalls atomic.Int32
	client := newTestRelay(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"status": "ok"}},
		})
	})

	msg := &domain.PushMessage{Tokens: []string{"token-a"}, Title: "t", Body: "b"}
	_, err := client.SendBatch(context.Background(), msg)
	require.NoError(t, err)
	_, err = client.SendBatch(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestSendBatchRelayErrorStatus(t *testing.T) {
	var tokenCalls atomic.Int32
	client := newTestRelay(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	tickets, err := client.SendBatch(context.Background(), &domain.PushMessage{
		Tokens: []string{"token-a"}, Title: "t", Body: "b",
	})
	assert.Nil(t, tickets)
	assert.ErrorContains(t, err, "502")
}

func TestSendBatchShortTicketList(t *testing.T) {
	var tokenCalls atomic.Int32
	client := newTestRelay(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"status": "ok"}},
		})
	})

	tickets, err := client.SendBatch(context.Background(), &domain.PushMessage{
		Tokens: []string{"token-a", "token-b"}, Title: "t", Body: "b",
	})
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.True(t, tickets[0].OK)
	assert.False(t, tickets[1].OK)
	assert.Equal(t, "no ticket returned", tickets[1].Message)
}

func TestSendBatchTokenEndpointFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(&config.PushService{
		Endpoint:      server.URL + "/send",
		TokenEndpoint: server.URL + "/token",
		APIKey:        "wrong-key",
	})

	_, err := client.SendBatch(context.Background(), &domain.PushMessage{
		Tokens: []string{"token-a"}, Title: "t", Body: "b",
	})
	assert.ErrorContains(t, err, "acquire push credential")
}
