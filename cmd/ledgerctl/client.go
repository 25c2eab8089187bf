package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	"github.com/SscSPs/exchange_ledger/internal/dto"
)

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient(baseURL, token string, timeout time.Duration) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// invoke posts inv and decodes the outcome. Non-2xx statuses still carry an
// InvokeResponse body, which is returned together with the status code.
func (c *client) invoke(ctx context.Context, inv domain.Invocation) (dto.InvokeResponse, int, error) {
	var out dto.InvokeResponse

	body, err := json.Marshal(dto.InvokeRequest{Function: inv.Function, Args: inv.Args, Signature: inv.Signature})
	if err != nil {
		return out, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/invoke", bytes.NewReader(body))
	if err != nil {
		return out, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return out, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, resp.StatusCode, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	return out, resp.StatusCode, nil
}
