package jss

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the server has no object for a key.
var ErrNotFound = errors.New("object not found")

// ErrNotMember is returned when removing a device that is not a static member of a group.
var ErrNotMember = errors.New("not a member")

// APIError is a non-success response other than 404.
type APIError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.Status, truncate(e.Body, 500))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
