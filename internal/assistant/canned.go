package assistant

import (
	"context"
	"strings"
	"unicode"
)

type cannedRule struct {
	keywords []string
	reply    string
}

// Canned answers from a fixed keyword table. It never calls the network.
type Canned struct {
	rules    []cannedRule
	fallback string
}

// NewCanned returns a Canned responder with the site's standard answers.
func NewCanned() *Canned {
	return &Canned{
		rules: []cannedRule{
			{
				keywords: []string{"about", "who are", "acucogn", "company"},
				reply:    "ACUCOGN is an AI consulting company. We help businesses design, build and roll out AI solutions, from customer-facing chatbots to generative AI strategy.",
			},
			{
				keywords: []string{"service", "offer", "explore", "chatbot", "genai"},
				reply:    "We offer Chatbot Generation, GenAI Consulting and AI Consulting for Service businesses. Visit /services for details on each.",
			},
			{
				keywords: []string{"schedule", "consult", "meeting", "call", "book"},
				reply:    "We'd love to talk. Share a few details through the form at /contact and we'll get back to you within 24 hours to set up a consultation.",
			},
			{
				keywords: []string{"price", "pricing", "cost", "budget", "quote"},
				reply:    "Pricing depends on scope. Most engagements start with a short discovery call. Tell us about your project at /contact and pick a budget range that fits.",
			},
			{
				keywords: []string{"support", "help", "contact", "email", "phone"},
				reply:    "You can reach our team through the contact form at /contact. We usually reply within one business day.",
			},
			{
				keywords: []string{"portfolio", "case", "project", "example", "client"},
				reply:    "Take a look at /portfolio for a selection of projects across retail, healthcare, finance and more.",
			},
			{
				keywords: []string{"hello", "hi", "hey"},
				reply:    "Hello! How can I assist you today?",
			},
		},
		fallback: "Thanks for your message. One of our consultants can give you a detailed answer; reach us through /contact and we'll respond within 24 hours.",
	}
}

// Name implements Responder.
func (c *Canned) Name() string { return ProviderCanned }

// Reply returns the answer of the first rule with a matching keyword.
// Keywords of up to three letters must match a whole word; longer ones
// match anywhere in the message.
func (c *Canned) Reply(_ context.Context, message string) (string, error) {
	lower := strings.ToLower(message)
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) }) {
		words[w] = true
	}

	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if len(kw) <= 3 && words[kw] || len(kw) > 3 && strings.Contains(lower, kw) {
				return r.reply, nil
			}
		}
	}
	return c.fallback, nil
}
