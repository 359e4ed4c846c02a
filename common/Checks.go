// Package common implements functionality shared across the module:
// parameter maps read from configuration files and the error type
// used to signal that a configuration is invalid.
package common

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates that a user-supplied configuration
// could not be turned into a working object, for example because it
// names an unregistered initializer or requests block sizes that do
// not divide a tensor's dimensions. It is a terminal error for the
// construction or application path that produced it and is never
// retried.
type ConfigurationError struct {
	Message string
	Cause   error
}

// NewConfigurationError returns a new ConfigurationError with a
// formatted message.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// WrapConfigurationError returns a new ConfigurationError with a
// formatted message and an underlying cause, available through
// errors.Unwrap.
func WrapConfigurationError(cause error, format string,
	args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause of the ConfigurationError, if
// any.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// IsConfigurationError returns whether any error in err's chain is a
// ConfigurationError.
func IsConfigurationError(err error) bool {
	var confErr *ConfigurationError
	return errors.As(err, &confErr)
}
