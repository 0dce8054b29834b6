// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level input errors and reports them as one
// VALIDATION_ERROR.
//
// Services validate; handlers only decode and storage only persists. A field
// is checked against an ordered list of [Rule]s and reports the first rule it
// breaks, so "password" never shows up as both empty and too short.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Rule inspects a value and returns a message when it fails, "" otherwise.
type Rule func(value string) string

// Required rejects blank values.
func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return "This field is required"
	}
	return ""
}

// Email accepts a bare address only; "Ana <ana@example.com>" is rejected.
func Email(value string) string {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		return "Must be a valid email address"
	}
	return ""
}

// MinRunes rejects values shorter than min characters.
func MinRunes(min int) Rule {
	return func(value string) string {
		if utf8.RuneCountInString(value) < min {
			return fmt.Sprintf("Minimum %d characters", min)
		}
		return ""
	}
}

// MaxRunes rejects values longer than max characters.
func MaxRunes(max int) Rule {
	return func(value string) string {
		if utf8.RuneCountInString(value) > max {
			return fmt.Sprintf("Maximum %d characters", max)
		}
		return ""
	}
}

// MaxBytes rejects values whose encoding exceeds max bytes.
func MaxBytes(max int) Rule {
	return func(value string) string {
		if len(value) > max {
			return fmt.Sprintf("Maximum %d bytes", max)
		}
		return ""
	}
}

// Validator accumulates failures. Use a fresh one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Check runs rules in order and records the first failure for field.
func (v *Validator) Check(field, value string, rules ...Rule) *Validator {
	for _, rule := range rules {
		if message := rule(value); message != "" {
			v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
			break
		}
	}
	return v
}

// CheckOptional is Check for patch fields: a nil value is skipped.
func (v *Validator) CheckOptional(field string, value *string, rules ...Rule) *Validator {
	if value == nil {
		return v
	}
	return v.Check(field, *value, rules...)
}

// HasErrors reports whether any field failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns the accumulated VALIDATION_ERROR, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// Invalid builds a single-field VALIDATION_ERROR outside a Validator chain.
func Invalid(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
