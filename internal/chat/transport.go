// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package chat runs the site's chat widget: it keeps a visitor's
// conversation and relays each message to the chat endpoint.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/acucogn/site/internal/model"
)

// ChatPath is appended to the configured base URL.
const ChatPath = "/api/chat"

const maxErrorBody = 512

// UserAgent identifies the site's own chat requests.
const UserAgent = "ACUCOGN-Site/1.0 (chat relay)"

// VisitorIPHeader carries the visitor's address on relayed requests so the
// endpoint rate-limits per visitor rather than per relay.
const VisitorIPHeader = "X-Real-IP"

type visitorIPKey struct{}

// WithVisitorIP attaches the address of the visitor a message comes from.
func WithVisitorIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, visitorIPKey{}, ip)
}

// VisitorIP returns the address set by WithVisitorIP, or "".
func VisitorIP(ctx context.Context) string {
	ip, _ := ctx.Value(visitorIPKey{}).(string)
	return ip
}

// ErrEmptyReply is returned when the endpoint answers without text.
var ErrEmptyReply = errors.New("chat endpoint returned an empty response")

// Transport sends one user message and returns the assistant reply.
// history holds the conversation before text and may be ignored.
type Transport interface {
	Send(ctx context.Context, history []model.ChatMessage, text string) (string, error)
}

// Request is the JSON body posted to the chat endpoint.
type Request struct {
	Message string `json:"message"`
}

// Response is the JSON body returned by the chat endpoint.
type Response struct {
	Response string `json:"response"`
}

// HTTPTransport posts messages to {baseURL}/api/chat.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
}

// NewHTTPTransport creates a transport for baseURL with the given timeout.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		endpoint: strings.TrimRight(baseURL, "/") + ChatPath,
		client:   &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the full URL messages are posted to.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Send implements Transport. Any non-2xx status is an error.
func (t *HTTPTransport) Send(ctx context.Context, _ []model.ChatMessage, text string) (string, error) {
	body, err := json.Marshal(Request{Message: text})
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if ip := VisitorIP(ctx); ip != "" {
		req.Header.Set(VisitorIPHeader, ip)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", ErrEmptyReply
	}

	return out.Response, nil
}
