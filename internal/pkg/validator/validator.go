package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidPhoneNumber accepts international numbers: optional leading +, 7-15 digits,
// spaces and dashes ignored.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.TrimPrefix(phone, "+")

	if len(phone) < 7 || len(phone) > 15 {
		return false
	}
	return IsNumeric(phone)
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01", value)
	return t, err == nil
}

// OptionalInt parses an optional integer query value and checks [min, max].
// An empty value returns fallback.
func OptionalInt(field, value string, fallback, min, max int) (int, error) {
	if IsEmpty(value) {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, ValidationErrors{{Field: field, Message: field + " must be a number"}}
	}
	if n < min || n > max {
		return 0, ValidationErrors{{
			Field:   field,
			Message: field + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max),
		}}
	}
	return n, nil
}
