package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/config"
	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
)

// Client sends batch pushes to the push relay. One request addresses every
// device token of a seller; the relay answers with one ticket per token.
type Client struct {
	endpoint   string
	provider   *TokenProvider
	httpClient *http.Client
}

func NewClient(cfg *config.PushService) *Client {
	c := &Client{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	c.provider = NewTokenProvider(func(ctx context.Context) (string, error) {
		return fetchAccessToken(ctx, c.httpClient, cfg.TokenEndpoint, cfg.APIKey)
	})
	return c
}

type batchRequest struct {
	To    []string          `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type batchResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"data"`
}

func (c *Client) SendBatch(ctx context.Context, msg *domain.PushMessage) ([]domain.PushTicket, error) {
	accessToken, err := c.provider.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire push credential: %w", err)
	}

	body, err := json.Marshal(batchRequest{
		To:    msg.Tokens,
		Title: msg.Title,
		Body:  msg.Body,
		Data:  msg.Data,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("push relay returned status %d", resp.StatusCode)
	}

	var parsed batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode push response: %w", err)
	}

	// tickets come back positionally, one per token in request order
	tickets := make([]domain.PushTicket, len(msg.Tokens))
	for i, token := range msg.Tokens {
		tickets[i] = domain.PushTicket{Token: token, OK: false, Message: "no ticket returned"}
		if i < len(parsed.Data) {
			tickets[i].OK = parsed.Data[i].Status == "ok"
			tickets[i].Message = parsed.Data[i].Message
		}
	}

	return tickets, nil
}

func fetchAccessToken(ctx context.Context, client *http.Client, tokenEndpoint, apiKey string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Key "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty access token")
	}

	return parsed.AccessToken, nil
}
