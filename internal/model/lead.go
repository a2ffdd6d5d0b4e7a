// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ServiceInterest is the service a lead is asking about.
type ServiceInterest string

// Service interests offered on the contact form.
const (
	ServiceChatbot    ServiceInterest = "chatbot"
	ServiceGenAI      ServiceInterest = "genai"
	ServiceConsulting ServiceInterest = "consulting"
)

// Services returns all service interests in display order.
func Services() []ServiceInterest {
	return []ServiceInterest{ServiceChatbot, ServiceGenAI, ServiceConsulting}
}

// Label returns the human-readable service name.
func (s ServiceInterest) Label() string {
	switch s {
	case ServiceChatbot:
		return "Chatbot Generation"
	case ServiceGenAI:
		return "GenAI Consulting"
	case ServiceConsulting:
		return "AI Consulting for Service"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the offered services.
func (s ServiceInterest) Valid() bool {
	for _, v := range Services() {
		if v == s {
			return true
		}
	}
	return false
}

// BudgetBracket is the optional project budget range of a lead.
type BudgetBracket string

// Budget brackets offered on the contact form.
const (
	BudgetBelow10k  BudgetBracket = "below-10k"
	Budget10kTo50k  BudgetBracket = "10k-50k"
	Budget50kTo100k BudgetBracket = "50k-100k"
	Budget100kPlus  BudgetBracket = "100k-plus"
	BudgetNotSure   BudgetBracket = "not-sure"
)

// Budgets returns all budget brackets in display order.
func Budgets() []BudgetBracket {
	return []BudgetBracket{BudgetBelow10k, Budget10kTo50k, Budget50kTo100k, Budget100kPlus, BudgetNotSure}
}

// Label returns the human-readable budget range.
func (b BudgetBracket) Label() string {
	switch b {
	case BudgetBelow10k:
		return "Below $10k"
	case Budget10kTo50k:
		return "$10k-$50k"
	case Budget50kTo100k:
		return "$50k-$100k"
	case Budget100kPlus:
		return "$100k+"
	case BudgetNotSure:
		return "Not Sure"
	default:
		return string(b)
	}
}

// Valid reports whether b is one of the offered brackets.
func (b BudgetBracket) Valid() bool {
	for _, v := range Budgets() {
		if v == b {
			return true
		}
	}
	return false
}

// LeadSubmission is one contact form submission. It is written once and
// never read back by the site.
type LeadSubmission struct {
	ID        string          `db:"id" json:"-"`
	Name      string          `db:"name" json:"name"`
	Email     string          `db:"email" json:"email"`
	Company   *string         `db:"company" json:"company"`
	Phone     *string         `db:"phone" json:"phone"`
	Service   ServiceInterest `db:"service" json:"service"`
	Budget    *BudgetBracket  `db:"budget" json:"budget"`
	Message   string          `db:"message" json:"message"`
	CreatedAt time.Time       `db:"created_at" json:"-"`
}
