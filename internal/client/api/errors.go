package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/agrivision/agrivision/internal/common"
)

// ErrAmbiguousPath is returned for request paths that double the /api
// prefix already carried by the base URL. It indicates a programming error,
// not a runtime condition.
var ErrAmbiguousPath = errors.New("ambiguous api path: base URL already includes /api")

// StatusError is a non-2xx response other than an auth expiry. Message is
// the server-provided message when one was parseable from the body.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Is lets a 404 match common.ErrNotFound under errors.Is.
func (e *StatusError) Is(target error) bool {
	return target == common.ErrNotFound && e.Status == http.StatusNotFound
}
