package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

// Chat produces a reply from the themed chatbot. Conversation history is
// replayed as alternating messages; the persona sets the system prompt.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "chat")

	messages := make([]llm.Message, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := llm.RoleUser
		if turn.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      personaPrompt(req.Persona),
		Messages:    messages,
		Schema:      ChatSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, classify("chat", err)
	}

	var reply ChatReply
	if err := json.Unmarshal(resp.Content, &reply); err != nil {
		return nil, &GenerationError{
			Capability: "chat",
			Err:        fmt.Errorf("parse response: %w", err),
		}
	}

	if strings.TrimSpace(reply.Response) == "" {
		return nil, &GenerationError{
			Capability: "chat",
			Err:        fmt.Errorf("model returned an empty reply"),
		}
	}

	return &reply, nil
}
