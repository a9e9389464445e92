package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

// Message is one entry of the envelope's messages list.
type Message struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Error is a failed Persistence API call.
// It unwraps to the domain error matching its status.
type Error struct {
	Op         string
	StatusCode int
	Messages   []Message
}

// Error returns a human-readable description.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Op, e.Unwrap())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	for _, m := range e.Messages {
		if m.Description != "" {
			fmt.Fprintf(&b, ": %s", m.Description)
		} else if m.Code != "" {
			fmt.Fprintf(&b, ": %s", m.Code)
		}
	}
	return b.String()
}

// Unwrap returns the domain error for the status.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthRequired
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return domain.ErrRemote
	}
}
