package content

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

// Service runs the generation flows against an injected provider.
type Service struct {
	provider llm.Provider
	logger   *zap.Logger
	cfg      Config
}

// NewService creates a content generation service.
func NewService(provider llm.Provider, logger *zap.Logger, cfg Config) *Service {
	return &Service{provider: provider, logger: logger, cfg: cfg}
}

// invoke is the shared flow body: send the rendered prompt with the
// capability's schema, map provider errors into the flow taxonomy, and
// decode the validated JSON into out. No side effects beyond the call.
func (s *Service) invoke(ctx context.Context, capability, system, user string, schema *llm.Schema, out any) error {
	ctx = llm.WithPurpose(ctx, capability)

	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: user},
		},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return classify(capability, err)
	}

	if err := json.Unmarshal(resp.Content, out); err != nil {
		return &GenerationError{
			Capability: capability,
			Err:        fmt.Errorf("parse response: %w", err),
		}
	}

	return nil
}
