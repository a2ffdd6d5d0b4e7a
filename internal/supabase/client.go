// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package supabase talks to a hosted Supabase project through its PostgREST
// API. It serves the same blog_posts reads and contact_submissions insert as
// the SQL store, for deployments without direct database access.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/acucogn/site/internal/model"
)

const (
	httpTimeout  = 15 * time.Second
	maxErrorBody = 512
)

// Client is a minimal PostgREST client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the project at baseURL using the anon or service key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: httpTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPublished returns published articles, newest first.
func (c *Client) ListPublished(ctx context.Context) ([]model.Article, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("published", "eq.true")
	q.Set("order", "created_at.desc")

	articles := []model.Article{}
	if err := c.get(ctx, "blog_posts", q, &articles); err != nil {
		return nil, fmt.Errorf("listing published articles: %w", err)
	}
	return articles, nil
}

// GetPublished returns one published article or model.ErrNotFound.
func (c *Client) GetPublished(ctx context.Context, id string) (*model.Article, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	q.Set("published", "eq.true")

	var rows []model.Article
	if err := c.get(ctx, "blog_posts", q, &rows); err != nil {
		return nil, fmt.Errorf("getting article %s: %w", id, err)
	}
	if len(rows) != 1 {
		return nil, model.ErrNotFound
	}
	return &rows[0], nil
}

// Insert writes one contact submission.
func (c *Client) Insert(ctx context.Context, lead *model.LeadSubmission) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "contact_submissions", nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("inserting contact submission: %w", err)
	}
	return nil
}

// Ping checks that the REST endpoint answers.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")

	var rows []json.RawMessage
	return c.get(ctx, "blog_posts", q, &rows)
}

func (c *Client) get(ctx context.Context, table string, q url.Values, dst any) error {
	req, err := c.newRequest(ctx, http.MethodGet, table, q, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, table string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + "/rest/v1/" + table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}
