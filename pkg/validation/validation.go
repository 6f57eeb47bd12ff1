package validation

import (
	"sort"
	"strings"
)

// NonFieldKey groups messages that do not belong to a single input field,
// e.g. uniqueness violations over several fields.
const NonFieldKey = "non_field_errors"

// Error carries field-keyed messages for client-fixable input problems.
// Handlers render it as a 400 with the fields map as the response body.
type Error struct {
	Fields map[string][]string
}

func New(field, message string) *Error {
	e := &Error{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

func (e *Error) Add(field, message string) *Error {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return strings.Join(parts, "; ")
}
