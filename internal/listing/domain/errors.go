package domain

import "fmt"

// StatusError reports a non-2xx answer from the listing service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("listing service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("listing service returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
