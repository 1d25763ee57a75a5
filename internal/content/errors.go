package content

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

// maxUserMessageLen bounds the provider error text shown to end users.
// Full details are only ever logged server-side.
const maxUserMessageLen = 160

// ValidationError means caller-supplied parameters failed pre-dispatch
// checks. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
	}
	return "invalid request: " + e.Message
}

// CredentialError means the provider rejected the configured API key
// (missing, invalid, quota, billing). Carries the capability family so the
// user-facing message can say which key to fix.
type CredentialError struct {
	Capability string
	Err        error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s credential problem: %v", e.Capability, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// GenerationError means the model responded but produced empty, malformed,
// or schema-invalid output.
type GenerationError struct {
	Capability string
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Capability, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TransportError means the network call to the provider failed. Not
// retried automatically here; retry is a user action.
type TransportError struct {
	Capability string
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Capability, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// classify maps a provider error into the flow taxonomy.
func classify(capability string, err error) error {
	var cred *llm.ErrCredential
	if errors.As(err, &cred) {
		return &CredentialError{Capability: capability, Err: err}
	}

	var inv *llm.ErrInvalidResponse
	if errors.As(err, &inv) {
		return &GenerationError{Capability: capability, Err: err}
	}
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return &GenerationError{Capability: capability, Err: err}
	}

	// Rate limits, provider outages and everything else are transport
	// failures from the caller's point of view.
	return &TransportError{Capability: capability, Err: err}
}

// UserMessage produces the sanitized, truncated message shown to end
// users for any flow error.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return truncate(ve.Error())
	}

	var ce *CredentialError
	if errors.As(err, &ce) {
		return truncate(fmt.Sprintf(
			"The API key for %s generation appears to be missing, invalid, or out of quota. Check the %s key configuration.",
			ce.Capability, ce.Capability))
	}

	var ge *GenerationError
	if errors.As(err, &ge) {
		return truncate(fmt.Sprintf("Could not generate %s. Please try again.", ge.Capability))
	}

	var te *TransportError
	if errors.As(err, &te) {
		return truncate(fmt.Sprintf("The %s service could not be reached. Please try again.", te.Capability))
	}

	return truncate("Something went wrong. Please try again.")
}

func truncate(s string) string {
	if len(s) <= maxUserMessageLen {
		return s
	}
	// Back up to a rune boundary so the cut never splits a multibyte
	// character.
	cut := maxUserMessageLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
