package services

import "errors"

// ErrNotFound is returned when a requested record does not exist or, for
// employee-facing offer lookups, is not yet published. Callers must not
// distinguish the two cases.
var ErrNotFound = errors.New("not found")

// ErrAlreadySigned marks the terminal signed state. It is success-shaped:
// callers render the "already signed" view, not an error page.
var ErrAlreadySigned = errors.New("already signed")

// ErrInvalidCredentials is returned for any admin login failure. Unknown
// username and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries a user-facing message for form re-rendering
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation extracts a ValidationError from err, if any
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
