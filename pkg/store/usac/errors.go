package usac

import "fmt"

// TransportError wraps a network, timeout or HTTP status failure against the
// open-data endpoint. The state/year workflow treats it as fatal; the
// organization-history workflow skips the failing year.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("usac: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError wraps a malformed response body. Same fatality split as
// TransportError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("usac: malformed response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
