// Package errors provides unified error handling for the test bench,
// mapping the substrate's error taxonomy (spec §7) onto a single structured
// type so callers can branch on Code instead of string-matching messages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code.
type ErrorCode string

const (
	// Substrate invariant violations (1xxx) — fatal, surface to the engine caller.
	ErrCodeDuplicateNode ErrorCode = "SUBSTRATE_1001"
	ErrCodeUnknownNode   ErrorCode = "SUBSTRATE_1002"

	// Malformed message (2xxx) — receiver catches locally, drives to a safe state.
	ErrCodeMalformedMessage ErrorCode = "MSG_2001"

	// Protocol rejection (3xxx) — explicit negative response on the bus.
	ErrCodeProtocolRejection ErrorCode = "PROTO_3001"

	// Simulated hardware fault (4xxx) — propagates through a component FSM.
	ErrCodeHardwareFault ErrorCode = "HW_4001"

	// Configuration/persistence errors (5xxx).
	ErrCodeConfigInvalid ErrorCode = "CFG_5001"
	ErrCodeNVMUnavailable ErrorCode = "CFG_5002"
)

// BenchError represents a structured error with a taxonomy code.
type BenchError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface.
func (e *BenchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *BenchError) Unwrap() error {
	return e.Err
}

// WithDetails adds additional details to the error.
func (e *BenchError) WithDetails(key string, value interface{}) *BenchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new BenchError.
func New(code ErrorCode, message string) *BenchError {
	return &BenchError{Code: code, Message: message}
}

// Wrap wraps an existing error with a BenchError.
func Wrap(code ErrorCode, message string, err error) *BenchError {
	return &BenchError{Code: code, Message: message, Err: err}
}

// DuplicateNode reports a registration attempt for a name already in use.
func DuplicateNode(name string) *BenchError {
	return New(ErrCodeDuplicateNode, "node already registered").WithDetails("name", name)
}

// UnknownNode reports a lookup/unregister attempt on a name never registered.
func UnknownNode(name string) *BenchError {
	return New(ErrCodeUnknownNode, "no such node").WithDetails("name", name)
}

// MalformedMessage reports a payload that failed a receiver's local validation.
func MalformedMessage(id, reason string) *BenchError {
	return New(ErrCodeMalformedMessage, "malformed message payload").
		WithDetails("id", id).
		WithDetails("reason", reason)
}

// ProtocolRejection reports an explicit negative protocol response (e.g. UDS NRC).
func ProtocolRejection(protocol string, code int) *BenchError {
	return New(ErrCodeProtocolRejection, "protocol rejected request").
		WithDetails("protocol", protocol).
		WithDetails("code", code)
}

// HardwareFault reports a simulated hardware-level failure.
func HardwareFault(component, reason string) *BenchError {
	return New(ErrCodeHardwareFault, "simulated hardware fault").
		WithDetails("component", component).
		WithDetails("reason", reason)
}

// ConfigInvalid reports a rejected configuration value.
func ConfigInvalid(field, reason string) *BenchError {
	return New(ErrCodeConfigInvalid, "invalid configuration").
		WithDetails("field", field).
		WithDetails("reason", reason)
}

// NVMUnavailable wraps a failure to read/write the NVM persistence file.
func NVMUnavailable(path string, err error) *BenchError {
	return Wrap(ErrCodeNVMUnavailable, "NVM store unavailable", err).WithDetails("path", path)
}

// IsBenchError checks if an error is a BenchError.
func IsBenchError(err error) bool {
	var benchErr *BenchError
	return errors.As(err, &benchErr)
}

// GetBenchError extracts a BenchError from an error chain.
func GetBenchError(err error) *BenchError {
	var benchErr *BenchError
	if errors.As(err, &benchErr) {
		return benchErr
	}
	return nil
}

// Code returns the ErrorCode for an error, or "" if it is not a BenchError.
func Code(err error) ErrorCode {
	if benchErr := GetBenchError(err); benchErr != nil {
		return benchErr.Code
	}
	return ""
}
