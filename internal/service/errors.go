package service

// ValidationError reports a request that is malformed at the service level:
// missing required fields or references to unregistered users.
// It is a client fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
