// Package cache stores generated study material keyed by content kind
// and topic, so repeat requests for the same topic skip the model call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Kind identifies which flavor of generated content a cache entry holds.
type Kind string

const (
	KindNotes      Kind = "notes"
	KindQuiz       Kind = "quiz"
	KindFlashcards Kind = "flashcards"
)

// ErrNotFound is returned when no entry exists for a key.
var ErrNotFound = errors.New("cache: entry not found")

// Store is a keyed blob store for generated content. Values are the
// JSON-encoded generation results; the cache never inspects them.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds the cache key for a content kind and raw topic string.
// Topics are normalized, so "Cell Biology" and "cell  biology" share an
// entry. Distinct raw topics can normalize to the same key; a stale-ish
// hit for a near-identical topic is acceptable here.
func Key(kind Kind, topic string) string {
	return string(kind) + "-" + NormalizeTopic(topic)
}

// NormalizeTopic lower-cases the topic and collapses whitespace runs
// into single hyphens.
func NormalizeTopic(topic string) string {
	fields := strings.Fields(strings.ToLower(topic))
	return strings.Join(fields, "-")
}
