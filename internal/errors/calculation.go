package errors

var (
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid property input",
	}
	ErrInvalidRequest = &DomainError{
		Code:    "INVALID_REQUEST",
		Message: "request body does not match schema",
	}
	ErrCalculationNotFound = &DomainError{
		Code:    "CALCULATION_NOT_FOUND",
		Message: "calculation not found",
	}
	ErrHistoryDisabled = &DomainError{
		Code:    "HISTORY_DISABLED",
		Message: "calculation history is not enabled",
	}
)
