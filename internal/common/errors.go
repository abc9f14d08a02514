package common

import (
	"fmt"
	"strings"
)

// Typed errors so the HTTP layer can tell bad input, missing entities,
// illegal state moves, plan limits and provider failures apart.

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func ErrValidation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What + " not found" }

func ErrNotFound(what string) error {
	return &NotFoundError{What: what}
}

// InvalidTransitionError carries the legal next states so client UIs can
// show the user what is still possible.
type InvalidTransitionError struct {
	From    string
	To      string
	Allowed []string
}

func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot move deal from %s to %s: %s is terminal", e.From, e.To, e.From)
	}
	return fmt.Sprintf("cannot move deal from %s to %s: allowed next states are %s",
		e.From, e.To, strings.Join(e.Allowed, ", "))
}

type QuotaExceededError struct {
	Plan  string
	Limit int
	Hint  string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly brand match limit of %d reached on the %s plan. %s", e.Limit, e.Plan, e.Hint)
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// ExternalError wraps a provider failure (suggestions, mail, billing).
type ExternalError struct {
	Provider string
	Err      error
}

func (e *ExternalError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ExternalError) Unwrap() error { return e.Err }
