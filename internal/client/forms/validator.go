// Package forms describes the client's input forms: which fields each entity
// shows, how they are edited, and the checks run before any request is sent.
package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"golang.org/x/text/language"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator accumulates field errors. Methods chain.
type Validator struct {
	errors []FieldError
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) add(field, msg string) *Validator {
	v.errors = append(v.errors, FieldError{Field: field, Message: msg})
	return v
}

// Required fails on empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.add(field, "is required")
	}
	return v
}

// MinLength checks rune length. Empty values are left to Required.
func (v *Validator) MinLength(field, value string, min int) *Validator {
	if value != "" && len([]rune(value)) < min {
		return v.add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return v
}

func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len([]rune(value)) > max {
		return v.add(field, fmt.Sprintf("must be no more than %d characters", max))
	}
	return v
}

// Email checks a bare address; display names are rejected.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return v.add(field, "must be a valid email address")
	}
	return v
}

// URL accepts absolute http(s) URLs. Empty values pass.
func (v *Validator) URL(field, value string) *Validator {
	if value == "" {
		return v
	}
	u, err := url.ParseRequestURI(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return v.add(field, "must be a valid URL")
	}
	return v
}

// DateOrder fails when both dates are set and end precedes start.
func (v *Validator) DateOrder(field string, start, end *time.Time) *Validator {
	if start != nil && end != nil && end.Before(*start) {
		return v.add(field, "must not be before the start date")
	}
	return v
}

func (v *Validator) PasswordMatch(field, password, confirm string) *Validator {
	if password != confirm {
		return v.add(field, "passwords do not match")
	}
	return v
}

// OneOf fails when value is set and not in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if a == value {
			return v
		}
	}
	return v.add(field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
}

// LanguageTag checks a BCP 47 tag such as "en" or "nl-BE".
func (v *Validator) LanguageTag(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := language.Parse(value); err != nil {
		return v.add(field, "must be a valid language tag")
	}
	return v
}

// Timezone checks an IANA zone name.
func (v *Validator) Timezone(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := time.LoadLocation(value); err != nil {
		return v.add(field, "must be a valid IANA timezone")
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Fields groups the messages by field, the shape the backend uses.
func (v *Validator) Fields() map[string][]string {
	if len(v.errors) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, e := range v.errors {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Err returns nil or an *api.Error with status 400 wrapping
// common.ErrValidation.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return api.NewValidationError(v.Fields())
}
