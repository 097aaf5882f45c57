package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"convertkit.dev/internal/domain"
)

// ParseFloatParam retrieves a float64 value from the provided URL query parameters.
// If the key is not present or the value is invalid, it returns 0 and updates the fieldErrors map.
func ParseFloatParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return f, fieldErrors
}

// ParseNumericParam reads a user-typed number from params, sanitizing it the
// way the converter form does. A missing or digitless value is recorded in
// fieldErrors.
func ParseNumericParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	f, err := ParseNumericInput(key, params.Get(key))
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return f, fieldErrors
}

// ParseBoolParam reads "true"/"false"/"1"/"0" from params. A missing value is false.
func ParseBoolParam(params url.Values, key string, fieldErrors map[string][]string) (bool, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return false, fieldErrors
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return b, fieldErrors
}

// ParseUnitParam reads a required unit id from params.
func ParseUnitParam(params url.Values, key string, fieldErrors map[string][]string) (string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := strings.TrimSpace(params.Get(key))
	if err := ValidateUnitID(val); err != nil {
		fieldErrors[key] = append(fieldErrors[key], err.Error())
	}
	return val, fieldErrors
}

// ParseDateParam reads a date from params. When the key is absent, fallback
// is returned; a zero fallback makes the key required.
func ParseDateParam(params url.Values, key string, fallback time.Time, fieldErrors map[string][]string) (time.Time, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" && !fallback.IsZero() {
		return fallback, fieldErrors
	}

	t, err := ParseDate(key, val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return t, fieldErrors
}

// FieldErrorsFromError converts a classified input error into the field
// error map returned to clients. ok is false for errors that do not belong
// to a request field.
func FieldErrorsFromError(err error) (map[string][]string, bool) {
	field := domain.FieldOf(err)
	if field == "" {
		return nil, false
	}
	switch domain.KindOf(err) {
	case domain.KindInvalidNumericInput, domain.KindUnknownUnit, domain.KindInvalidRange:
		return map[string][]string{field: {err.Error()}}, true
	default:
		return nil, false
	}
}
