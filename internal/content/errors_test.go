package content

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want any
	}{
		{"credential", &llm.ErrCredential{Err: errors.New("API key not valid")}, &CredentialError{}},
		{"invalid response", &llm.ErrInvalidResponse{Err: errors.New("bad json")}, &GenerationError{}},
		{"max tokens", &llm.ErrMaxTokensExceeded{}, &GenerationError{}},
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, &TransportError{}},
		{"unavailable", &llm.ErrProviderUnavailable{Err: errors.New("down")}, &TransportError{}},
		{"plain", errors.New("connection reset"), &TransportError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("quiz", tt.in)
			switch tt.want.(type) {
			case *CredentialError:
				var e *CredentialError
				if !errors.As(got, &e) {
					t.Fatalf("expected CredentialError, got %T", got)
				}
			case *GenerationError:
				var e *GenerationError
				if !errors.As(got, &e) {
					t.Fatalf("expected GenerationError, got %T", got)
				}
			case *TransportError:
				var e *TransportError
				if !errors.As(got, &e) {
					t.Fatalf("expected TransportError, got %T", got)
				}
			}
		})
	}
}

func TestUserMessage_NamesCapabilityForCredentialErrors(t *testing.T) {
	err := classify("flashcards", &llm.ErrCredential{Err: errors.New("quota exceeded: see billing dashboard at https://internal.example.com/very/long/path")})
	msg := UserMessage(err)

	if !strings.Contains(msg, "flashcards") {
		t.Fatalf("message should name the capability: %q", msg)
	}
	if strings.Contains(msg, "internal.example.com") {
		t.Fatalf("message must not leak provider internals: %q", msg)
	}
}

func TestUserMessage_Truncated(t *testing.T) {
	long := &ValidationError{Message: strings.Repeat("x", 500)}
	if got := UserMessage(long); len(got) > maxUserMessageLen {
		t.Fatalf("message not truncated: %d chars", len(got))
	}
}

func TestUserMessage_TruncatesOnRuneBoundary(t *testing.T) {
	long := &ValidationError{Message: strings.Repeat("日", 300)}
	got := UserMessage(long)

	if len(got) > maxUserMessageLen {
		t.Fatalf("message not truncated: %d bytes", len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncated message is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated message should end with an ellipsis: %q", got)
	}
}
