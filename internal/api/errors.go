package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned for any 401 answer. Callers treat it as the
// end of the session, whatever operation triggered it.
var ErrSessionExpired = errors.New("session expired")

// Op names the user-facing operation a request belongs to.
type Op string

const (
	OpList   Op = "list"
	OpDetail Op = "detail"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpExport Op = "export"
)

// StatusError is a non-2xx, non-401 answer.
type StatusError struct {
	Op     Op
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Op, e.Status)
}
