package catalog

// ValidationError rejects product input from an opt-in ProductValidator.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
