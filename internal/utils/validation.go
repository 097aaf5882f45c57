package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"convertkit.dev/internal/domain"
)

// Compiled regular expressions for validation
var (
	// Unit ids and currency codes: alphanumeric and underscore
	validUnitPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateUnitID validates that a unit id or currency code is safe and within reasonable limits
func ValidateUnitID(id string) error {
	if id == "" {
		return errors.New("unit cannot be empty")
	}

	if len(id) > 32 {
		return errors.New("unit too long (max 32 characters)")
	}

	if !validUnitPattern.MatchString(id) {
		return errors.New("unit contains invalid characters")
	}

	return nil
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates and sanitizes a search query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}

// SanitizeNumeric keeps the digits and the first decimal point of raw, plus a
// leading minus sign. Everything else, including grouping separators and
// exponent markers, is dropped.
func SanitizeNumeric(raw string) string {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(raw))
	if strings.HasPrefix(raw, "-") {
		b.WriteByte('-')
		raw = raw[1:]
	}

	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseNumericInput sanitizes raw and parses it as a float. Input with no
// digits left after sanitizing is an invalid_numeric_input error for field.
func ParseNumericInput(field, raw string) (float64, error) {
	const op = "parse numeric input"

	clean := SanitizeNumeric(raw)
	if strings.Trim(clean, "-.") == "" {
		return 0, domain.NewError(op, domain.KindInvalidNumericInput, field, "no digits in "+strconv.Quote(raw))
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, &domain.Error{Op: op, Kind: domain.KindInvalidNumericInput, Field: field, Err: err}
	}
	return f, nil
}

// ParseDate parses a calendar date in any common layout (ISO 8601, RFC 1123,
// "March 1, 2024", "2024/03/01", ...). Ambiguous numeric dates read month
// first. The result is the UTC calendar date.
func ParseDate(field, raw string) (time.Time, error) {
	const op = "parse date"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.NewError(op, domain.KindInvalidNumericInput, field, "date is required")
	}

	t, err := dateparse.ParseIn(raw, time.UTC, dateparse.PreferMonthFirst(true))
	if err != nil {
		return time.Time{}, &domain.Error{Op: op, Kind: domain.KindInvalidNumericInput, Field: field, Err: err}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
