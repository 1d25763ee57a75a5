package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrCredential indicates the provider rejected the request for a reason
// tied to the API key itself: missing, invalid, out of quota, or a billing
// problem. Never retried.
type ErrCredential struct {
	Err error
}

func (e *ErrCredential) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM credential rejected: %v", e.Err)
	}
	return "LLM credential rejected"
}

func (e *ErrCredential) Unwrap() error { return e.Err }

// credentialPhrases are substrings that mark a provider error as a
// credential problem rather than a transient failure.
var credentialPhrases = []string{
	"api key",
	"api_key",
	"invalid key",
	"unauthorized",
	"unauthenticated",
	"permission denied",
	"quota",
	"billing",
}

// isCredentialText reports whether provider error text describes a
// credential, quota, or billing problem.
func isCredentialText(msg string) bool {
	lower := strings.ToLower(msg)
	for _, p := range credentialPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
