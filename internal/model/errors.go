package model

import "errors"

// ErrNotFound reports that a referenced subject, topic, or session no longer exists.
var ErrNotFound = errors.New("not found")

// ValidationError reports user-correctable input problems.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
