// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Role is the author of a chat message.
type Role string

// Chat roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// IsUser returns true if the message was written by the visitor.
func (m ChatMessage) IsUser() bool {
	return m.Role == RoleUser
}
