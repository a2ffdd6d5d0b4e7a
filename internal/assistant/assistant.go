// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package assistant produces replies for the site's chat endpoint.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/acucogn/site/internal/config"
)

// Provider identifiers.
const (
	ProviderCanned    = config.ChatProviderCanned
	ProviderOpenAI    = config.ChatProviderOpenAI
	ProviderAnthropic = config.ChatProviderAnthropic
)

// requestTimeout bounds a single provider call.
const requestTimeout = 60 * time.Second

// maxReplyTokens caps generated replies.
const maxReplyTokens = 512

// SystemPrompt frames every provider conversation.
const SystemPrompt = `You are the virtual assistant on the ACUCOGN website. ACUCOGN is an AI consulting company offering three services: Chatbot Generation, GenAI Consulting and AI Consulting for Service businesses.
Answer briefly and in a friendly, professional tone. Keep answers under 120 words.
When a visitor wants a quote, a meeting or a callback, point them to the contact form at /contact.
Do not invent prices, client names or commitments.`

// ErrEmptyReply is returned when a provider answers without text.
var ErrEmptyReply = errors.New("assistant returned an empty reply")

// Responder answers one visitor message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
	Name() string
}

// New returns the Responder selected by cfg.ChatProvider.
func New(cfg *config.Config) (Responder, error) {
	switch cfg.ChatProvider {
	case "", ProviderCanned:
		return NewCanned(), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.ChatProvider)
	}
}

func checkReply(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyReply
	}
	return s, nil
}
