package gradestore

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the grade store answers with a non-2xx status
type StatusError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d %s", e.Method, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Method, e.StatusCode, e.Body)
}

// IsStatus reports whether err is a StatusError carrying the given HTTP status
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
