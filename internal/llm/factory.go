package llm

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// Factory hands out providers for the process lifetime. It is constructed
// once at startup and passed explicitly to every flow; there are no
// package-level client singletons. Providers are built lazily on first use
// and cached.
type Factory struct {
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	text   Provider
	speech SpeechProvider
}

// NewFactory creates a Factory from validated configuration.
func NewFactory(cfg Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// Text returns the text-generation provider, building it on first call.
func (f *Factory) Text(ctx context.Context) (Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.text != nil {
		return f.text, nil
	}

	p, err := NewProvider(ctx, f.cfg, f.logger)
	if err != nil {
		return nil, err
	}
	f.text = p
	return p, nil
}

// Speech returns the text-to-speech provider. Only the gemini and mock
// providers have a speech surface; other configurations fail here rather
// than at synthesis time.
func (f *Factory) Speech(ctx context.Context) (SpeechProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.speech != nil {
		return f.speech, nil
	}

	switch f.cfg.Provider {
	case "gemini":
		p, err := NewGeminiProvider(ctx, f.cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini speech provider: %w", err)
		}
		f.speech = p
	case "mock":
		f.speech = NewMockSpeechProvider()
	default:
		return nil, fmt.Errorf("provider %q has no speech synthesis support", f.cfg.Provider)
	}
	return f.speech, nil
}

// Close releases provider resources. The underlying SDK clients hold no
// persistent connections, so this only clears the cache, but callers
// should still pair NewFactory with Close for an explicit lifecycle.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = nil
	f.speech = nil
	return nil
}
