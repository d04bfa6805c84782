// Package errors defines the enumerable domain error taxonomy shared by the
// movement engine and its callers. Every expected business failure is a
// *DomainError with a stable code; unexpected storage faults are wrapped
// standard errors and never carry a code.
package errors

// DomainError is an expected business failure with a stable, enumerable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
