package review

import "fmt"

// ValidationError indicates the caller omitted required input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError indicates required operator configuration is missing.
// It is distinct from ValidationError: the caller did nothing wrong.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ParseError indicates the provider reply violated the response contract:
// no JSON payload, a payload that does not parse, or an invalid score.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }
