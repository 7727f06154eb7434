package serializers

import (
	"fmt"
	"sort"
	"strings"
)

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
	msgNullChar = "Null characters are not allowed."
)

func tooLong(max int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", max)
}

// hasNullChar reports whether s contains U+0000, which postgres text columns reject.
func hasNullChar(s string) bool {
	return strings.ContainsRune(s, 0)
}

// ValidationError carries field-level messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects messages and turns into an error only when non-empty.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func invalidJSON() error {
	return &ValidationError{Fields: map[string]string{"non_field_errors": "invalid JSON"}}
}
