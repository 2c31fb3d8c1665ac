package housing

import "fmt"

// ConfigurationError means the client cannot be built from the given
// credentials. It is never retried.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("housing api is not configured: %s is required", e.Field)
}

// UpstreamProtocolError is returned when the response body is not JSON.
type UpstreamProtocolError struct {
	Snippet string
	Err     error
}

func (e *UpstreamProtocolError) Error() string {
	return fmt.Sprintf("invalid JSON from housing api: %v (body: %q)", e.Err, e.Snippet)
}

func (e *UpstreamProtocolError) Unwrap() error { return e.Err }

// UpstreamRequestFailed is returned for a non-2xx HTTP status or an envelope
// status other than 200.
type UpstreamRequestFailed struct {
	StatusCode int
	Message    string
}

func (e *UpstreamRequestFailed) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("housing api request failed with status %d", e.StatusCode)
}
