package content

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// GenerateFlashcards produces flashcards for a topic. Cards missing a term
// or a definition are dropped with a logged warning; an empty set after
// filtering is a generation failure.
func (s *Service) GenerateFlashcards(ctx context.Context, req FlashcardRequest) (*FlashcardSet, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var set FlashcardSet
	err := s.invoke(ctx, "flashcards", flashcardSystemPrompt, buildFlashcardUserMessage(req), FlashcardSchema, &set)
	if err != nil {
		return nil, err
	}

	kept := make([]Flashcard, 0, len(set.Cards))
	for _, c := range set.Cards {
		if c.Term == "" || c.Definition == "" {
			s.logger.Warn("dropping incomplete flashcard",
				zap.String("topic", req.Topic),
				zap.String("term", c.Term),
			)
			continue
		}
		kept = append(kept, c)
	}

	if len(kept) == 0 {
		return nil, &GenerationError{
			Capability: "flashcards",
			Err:        fmt.Errorf("no usable flashcards generated for topic %q", req.Topic),
		}
	}

	set.Cards = kept
	return &set, nil
}
