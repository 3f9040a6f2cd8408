package errors

import "strings"

// DomainError is a client-facing failure carrying a stable code.
type DomainError struct {
	Code    string   `json:"code"`
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// Is matches on Code so sentinel values work with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithDetails returns a copy of e carrying the given details.
func (e *DomainError) WithDetails(details ...string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
}
