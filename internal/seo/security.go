// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"time"
)

// SecurityTxtConfig holds the fields of /.well-known/security.txt (RFC 9116).
type SecurityTxtConfig struct {
	// Contact is required: mailto: or https: URIs.
	Contact []string
	// Expires is required. Zero means one year from now.
	Expires            time.Time
	PreferredLanguages string
	Canonical          string
}

// BuildSecurityTxt renders cfg.
func BuildSecurityTxt(cfg SecurityTxtConfig) string {
	var sb strings.Builder

	for _, contact := range cfg.Contact {
		if contact == "" {
			continue
		}
		if !strings.Contains(contact, ":") {
			contact = "mailto:" + contact
		}
		sb.WriteString("Contact: " + contact + "\n")
	}

	expires := cfg.Expires
	if expires.IsZero() {
		expires = time.Now().AddDate(1, 0, 0)
	}
	sb.WriteString("Expires: " + expires.UTC().Format(time.RFC3339) + "\n")

	if cfg.PreferredLanguages != "" {
		sb.WriteString("Preferred-Languages: " + cfg.PreferredLanguages + "\n")
	}
	if cfg.Canonical != "" {
		sb.WriteString("Canonical: " + cfg.Canonical + "\n")
	}

	return sb.String()
}

// GenerateSecurityTxt builds security.txt for the site's contact email.
func GenerateSecurityTxt(email, siteURL string, expires time.Time) string {
	cfg := SecurityTxtConfig{
		Contact:            []string{email},
		Expires:            expires,
		PreferredLanguages: "en",
	}
	if siteURL != "" {
		cfg.Canonical = strings.TrimSuffix(siteURL, "/") + "/.well-known/security.txt"
	}
	return BuildSecurityTxt(cfg)
}
