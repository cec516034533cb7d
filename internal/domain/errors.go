package domain

import (
	"errors"
	"fmt"
)

// Reason classifies why user input was rejected.
type Reason string

const (
	ReasonMissingField      Reason = "missing required field"
	ReasonInvalidParameter  Reason = "invalid parameter"
	ReasonTooManyParameters Reason = "too many parameters"
)

// ValidationError reports missing or invalid user input. It never leaves the
// screen that produced it except as a user-visible message.
type ValidationError struct {
	Reason Reason
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Field)
}

// ErrNotReady is wrapped by SdkCallError when the SDK has not finished initializing.
var ErrNotReady = errors.New("sdk not initialized")

// SdkCallError wraps any rejection from the external SDK facade.
type SdkCallError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *SdkCallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sdk %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("sdk %s: %v", e.Op, e.Err)
}

func (e *SdkCallError) Unwrap() error { return e.Err }

// ParseError reports a malformed deep-link URL.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing deep link %q: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
