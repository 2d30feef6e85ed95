package store

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports bad or missing input. Store state is unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a missing entity. For deletes it also covers entities
// owned by someone else, so callers cannot probe for existence.
type NotFoundError struct {
	Kind string
	ID   string

	unauthorized bool
}

func (e *NotFoundError) Error() string {
	if e.unauthorized {
		return fmt.Sprintf("%s not found or unauthorized", capitalize(e.Kind))
	}
	return fmt.Sprintf("%s not found", capitalize(e.Kind))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func notFoundOrUnauthorized(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id, unauthorized: true}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
