// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package chat

import (
	"context"
	"encoding/gob"

	"github.com/alexedwards/scs/v2"
)

const sessionKey = "chat_conversation"

func init() {
	gob.Register(Conversation{})
}

// SessionStore keeps each visitor's conversation in their session.
type SessionStore struct {
	sm *scs.SessionManager
}

// NewSessionStore creates a SessionStore.
func NewSessionStore(sm *scs.SessionManager) *SessionStore {
	return &SessionStore{sm: sm}
}

// Load returns the visitor's conversation, or an empty one.
func (s *SessionStore) Load(ctx context.Context) *Conversation {
	conv, ok := s.sm.Get(ctx, sessionKey).(Conversation)
	if !ok {
		return &Conversation{}
	}
	return &conv
}

// Save stores conv. The composing flag is never persisted.
func (s *SessionStore) Save(ctx context.Context, conv *Conversation) {
	c := *conv
	c.Composing = false
	s.sm.Put(ctx, sessionKey, c)
}

// Reset discards the visitor's conversation.
func (s *SessionStore) Reset(ctx context.Context) {
	s.sm.Remove(ctx, sessionKey)
}
