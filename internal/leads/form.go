// Package leads validates and submits contact form leads.
package leads

import (
	"html"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/acucogn/site/internal/model"
)

// Field names, matching the HTML form inputs.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldCompany     = "company"
	FieldCountryCode = "countryCode"
	FieldPhone       = "phone"
	FieldService     = "service"
	FieldBudget      = "budget"
	FieldMessage     = "message"
)

// Input length limits.
const (
	MaxShortField = 200
	MaxPhone      = 32
	MaxMessage    = 5000
)

// strictPolicy strips every tag from visitor input.
var strictPolicy = bluemonday.StrictPolicy()

// Form is the raw contact form as entered by the visitor. It is kept in the
// session on failure so the visitor can retry without retyping.
type Form struct {
	Name        string
	Email       string
	Company     string
	CountryCode string
	Phone       string
	Service     string
	Budget      string
	Message     string
}

// Validate checks required fields and enumerations. It returns a
// *model.ValidationError or nil.
func (f Form) Validate() error {
	ve := model.NewValidationError()

	required := []struct {
		field, value, label string
	}{
		{FieldName, clean(f.Name), "Name"},
		{FieldEmail, f.Email, "Email"},
		{FieldService, f.Service, "Service"},
		{FieldMessage, clean(f.Message), "Message"},
	}
	// Name and message are checked as stored, after markup is removed.
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			ve.Add(r.field, r.label+" is required")
		}
	}

	if email := strings.TrimSpace(f.Email); email != "" {
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			ve.Add(FieldEmail, "Enter a valid email address")
		}
	}

	if s := strings.TrimSpace(f.Service); s != "" && !model.ServiceInterest(s).Valid() {
		ve.Add(FieldService, "Choose one of the listed services")
	}
	if b := strings.TrimSpace(f.Budget); b != "" && !model.BudgetBracket(b).Valid() {
		ve.Add(FieldBudget, "Choose one of the listed budget ranges")
	}
	if c := strings.TrimSpace(f.CountryCode); c != "" && !IsKnownDialCode(c) {
		ve.Add(FieldCountryCode, "Choose a country code from the list")
	}

	tooLong := []struct {
		field, value string
		max          int
	}{
		{FieldName, f.Name, MaxShortField},
		{FieldEmail, f.Email, MaxShortField},
		{FieldCompany, f.Company, MaxShortField},
		{FieldPhone, f.Phone, MaxPhone},
		{FieldMessage, f.Message, MaxMessage},
	}
	for _, l := range tooLong {
		if utf8.RuneCountInString(strings.TrimSpace(l.value)) > l.max {
			ve.Add(l.field, "This field is too long")
		}
	}

	return ve.Err()
}

// Submission converts a validated form into the stored record. Optional
// fields left blank become nil; the phone number is prefixed with the
// country code and a single space when both are present.
func (f Form) Submission() *model.LeadSubmission {
	lead := &model.LeadSubmission{
		Name:    clean(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Service: model.ServiceInterest(strings.TrimSpace(f.Service)),
		Message: clean(f.Message),
	}

	if company := clean(f.Company); company != "" {
		lead.Company = &company
	}
	if phone := FullPhone(f.CountryCode, f.Phone); phone != "" {
		lead.Phone = &phone
	}
	if b := strings.TrimSpace(f.Budget); b != "" {
		budget := model.BudgetBracket(b)
		lead.Budget = &budget
	}

	return lead
}

// FullPhone joins a country code and a phone number. Without a number the
// result is empty; without a code it is the number alone.
func FullPhone(countryCode, phone string) string {
	countryCode = strings.TrimSpace(countryCode)
	phone = clean(phone)
	if phone == "" {
		return ""
	}
	if countryCode == "" {
		return phone
	}
	return countryCode + " " + phone
}

// clean removes markup but keeps plain characters such as "&" unescaped;
// templates escape on output.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(strings.TrimSpace(s))))
}
