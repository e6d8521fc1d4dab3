package engine

import "fmt"

// TransportError is a network-level failure talking to an upstream engine.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request error on search: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is an upstream response outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("didn't receive status code 2xx (%s)", e.Status)
}

// TimeoutError marks an engine that was still in flight when the
// dispatcher-level deadline expired.
type TimeoutError struct{}

func (e *TimeoutError) Error() string { return "timed out waiting for engine" }

// ConfigurationError is invalid static engine metadata. It is fatal for the
// affected engine at startup only and never occurs at request time.
type ConfigurationError struct {
	Engine string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("engine %q misconfigured: %s", e.Engine, e.Reason)
}
