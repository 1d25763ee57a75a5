package llm

import "context"

// purposeKey is unexported so only this package can set or read the
// purpose label; an empty struct key cannot collide with other packages.
type purposeKey struct{}

// WithPurpose labels the context with what the upcoming generation is
// for (notes, quiz, chat, ...) so provider logs can attribute calls.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reports the purpose label on ctx, or "unknown" if none
// was set.
func PurposeFrom(ctx context.Context) string {
	s, _ := ctx.Value(purposeKey{}).(string)
	if s == "" {
		return "unknown"
	}
	return s
}
