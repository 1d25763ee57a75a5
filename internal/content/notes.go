package content

import (
	"context"
	"fmt"
	"strings"
)

// GenerateNotes produces study notes for a topic.
// Empty or whitespace-only markdown is a generation failure, never a valid
// empty result.
func (s *Service) GenerateNotes(ctx context.Context, req NotesRequest) (*Notes, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var notes Notes
	err := s.invoke(ctx, "notes", notesSystemPrompt, buildNotesUserMessage(req), NotesSchema, &notes)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(notes.Markdown) == "" {
		return nil, &GenerationError{
			Capability: "notes",
			Err:        fmt.Errorf("model returned empty notes for topic %q", req.Topic),
		}
	}

	return &notes, nil
}
