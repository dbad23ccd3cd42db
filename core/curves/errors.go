package curves

import "fmt"

// InvalidEncodingError reports a malformed or non-canonical point or scalar
// byte string.
type InvalidEncodingError struct {
	Kind string // "G1", "G2" or "scalar"
	Err  error
}

func (e *InvalidEncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s encoding: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("invalid %s encoding", e.Kind)
}

func (e *InvalidEncodingError) Unwrap() error { return e.Err }

// GroupMismatchError reports an operand whose byte length does not match the
// fixed encoding of the expected group.
type GroupMismatchError struct {
	Kind string
	Want int
	Got  int
}

func (e *GroupMismatchError) Error() string {
	return fmt.Sprintf("group mismatch: %s encoding must be %d bytes, got %d", e.Kind, e.Want, e.Got)
}
