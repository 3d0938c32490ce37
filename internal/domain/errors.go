package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrCountryNotFound    = errors.New("country not found")
	ErrRegistryLoad       = errors.New("country registry unavailable")
	ErrFetchTimeout       = errors.New("intelligence request timed out")
	ErrFetchNetwork       = errors.New("backend unreachable")
	ErrFetchShapeMismatch = errors.New("unexpected intelligence payload shape")
	ErrSuperseded         = errors.New("fetch superseded by a newer request")
)

// ServerError is returned when the backend answers with a non-2xx status.
type ServerError struct {
	Status    int
	Detail    string
	RequestID string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
}

func (e *ServerError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

func (e *ServerError) IsServerError() bool {
	return e.Status >= 500 && e.Status < 600
}
