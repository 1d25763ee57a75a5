package cache

import (
	"context"
	"encoding/json"
)

// Tiered layers an in-memory store in front of a persistent one.
// Reads fall through to the persistent tier and re-populate memory;
// writes and deletes go to both.
type Tiered struct {
	hot  *Memory
	cold Store
}

// NewTiered wraps cold with a fresh in-memory tier.
func NewTiered(cold Store) *Tiered {
	return &Tiered{hot: NewMemory(), cold: cold}
}

func (t *Tiered) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if v, err := t.hot.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err := t.cold.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	t.hot.Put(ctx, key, v)
	return v, nil
}

func (t *Tiered) Put(ctx context.Context, key string, value json.RawMessage) error {
	if err := t.hot.Put(ctx, key, value); err != nil {
		return err
	}
	return t.cold.Put(ctx, key, value)
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	if err := t.hot.Delete(ctx, key); err != nil {
		return err
	}
	return t.cold.Delete(ctx, key)
}

func (t *Tiered) Close() error {
	return t.cold.Close()
}
