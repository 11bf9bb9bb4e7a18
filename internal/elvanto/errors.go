package elvanto

import "fmt"

// Elvanto error code for a missing or invalid API key.
const codeInvalidKey = 102

// CredentialError means the upstream rejected the caller's API key.
// It is surfaced verbatim and never retried.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("elvanto: invalid API key: %s", e.Message)
}

// UpstreamError is any non-credential transport or API failure from
// the Elvanto API. StatusCode is the HTTP status (0 when the request
// never got a response), Code the Elvanto error code when present.
type UpstreamError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("elvanto: API error %d: %s", e.Code, e.Message)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("elvanto: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("elvanto: request failed: %s", e.Message)
}
