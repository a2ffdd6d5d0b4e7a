// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/acucogn/site/internal/metrics"
	"github.com/acucogn/site/internal/model"
)

// FallbackReply is appended as the assistant's answer when the endpoint
// cannot be reached.
const FallbackReply = "Sorry, I'm having trouble connecting right now. Please try again in a moment or reach us through the contact form."

// Greeting is shown above an empty conversation.
const Greeting = "How can I assist you today?"

// QuickActions are canned prompts offered before the first message. They
// are sent like any typed message.
var QuickActions = []string{
	"Tell me about ACUCOGN",
	"Explore Services",
	"Schedule a Consultation",
	"Contact Support",
}

// Limits on stored conversations.
const (
	MaxMessageLength = 2000
	MaxHistory       = 50
)

// Conversation is one visitor's ordered message log. Composing is true
// only while a reply is awaited.
type Conversation struct {
	Messages  []model.ChatMessage
	Composing bool
}

// Empty reports whether no message has been exchanged yet.
func (c *Conversation) Empty() bool {
	return len(c.Messages) == 0
}

func (c *Conversation) append(role model.Role, content string) {
	c.Messages = append(c.Messages, model.ChatMessage{Role: role, Content: content})
	if over := len(c.Messages) - MaxHistory; over > 0 {
		c.Messages = append(c.Messages[:0:0], c.Messages[over:]...)
	}
}

// Service relays messages through a Transport.
type Service struct {
	transport Transport
	metrics   *metrics.Metrics
}

// NewService creates a Service. m may be nil.
func NewService(t Transport, m *metrics.Metrics) *Service {
	return &Service{transport: t, metrics: m}
}

// Send appends text as a user message, waits for the reply and appends it.
// If the transport fails, FallbackReply is appended instead and no error is
// returned. Blank text is ignored. The result reports whether a real reply
// was received.
func (s *Service) Send(ctx context.Context, conv *Conversation, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		text = string([]rune(text)[:MaxMessageLength])
	}

	history := append([]model.ChatMessage(nil), conv.Messages...)
	conv.append(model.RoleUser, text)

	conv.Composing = true
	defer func() { conv.Composing = false }()

	start := time.Now()
	reply, err := s.transport.Send(ctx, history, text)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		slog.WarnContext(ctx, "chat endpoint failed", "error", err)
		s.metrics.ChatMessage(metrics.OutcomeFallback, elapsed)
		conv.append(model.RoleAssistant, FallbackReply)
		return false
	}

	s.metrics.ChatMessage(metrics.OutcomeSuccess, elapsed)
	conv.append(model.RoleAssistant, reply)
	return true
}
