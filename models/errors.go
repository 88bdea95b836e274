package models

// InvalidInputError marks a request payload rejected before any mutation.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// ErrInvalidInput wraps a reason into an InvalidInputError.
func ErrInvalidInput(reason string) error {
	return InvalidInputError{Reason: reason}
}
