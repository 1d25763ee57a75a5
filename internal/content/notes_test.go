package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

func TestGenerateNotes_HappyPath(t *testing.T) {
	svc, _ := testService(llm.MockResponse{
		Content: json.RawMessage(`{"markdown":"# Photosynthesis\n\nPlants convert light into energy.\n\n## Summary\n- light in, sugar out"}`),
	})

	notes, err := svc.GenerateNotes(context.Background(), NotesRequest{Topic: "Photosynthesis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notes.Markdown == "" {
		t.Fatal("expected non-empty markdown")
	}
}

func TestGenerateNotes_EmptyMarkdownIsError(t *testing.T) {
	tests := []string{
		`{"markdown":""}`,
		`{"markdown":"   \n\t  "}`,
	}
	for _, raw := range tests {
		svc, _ := testService(llm.MockResponse{Content: json.RawMessage(raw)})

		_, err := svc.GenerateNotes(context.Background(), NotesRequest{Topic: "Photosynthesis"})
		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("response %s: expected GenerationError, got %v", raw, err)
		}
	}
}

func TestGenerateNotes_ShortTopicRejected(t *testing.T) {
	svc, mock := testService()

	_, err := svc.GenerateNotes(context.Background(), NotesRequest{Topic: "ab"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("validation failure must not reach the provider")
	}
}

func TestGenerateFlashcards_FiltersIncompleteCards(t *testing.T) {
	set := FlashcardSet{Cards: []Flashcard{
		{Term: "Osmosis", Definition: "Diffusion of water across a membrane."},
		{Term: "", Definition: "orphan definition"},
		{Term: "orphan term", Definition: ""},
	}}
	raw, _ := json.Marshal(set)

	svc, _ := testService(llm.MockResponse{Content: raw})

	got, err := svc.GenerateFlashcards(context.Background(), FlashcardRequest{Topic: "Cell Biology", NumCards: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Cards) != 1 {
		t.Fatalf("expected 1 surviving card, got %d", len(got.Cards))
	}
}

func TestChat_UnknownPersonaFallsBack(t *testing.T) {
	svc, mock := testService(llm.MockResponse{
		Content: json.RawMessage(`{"response":"Let's break that down together."}`),
	})

	reply, err := svc.Chat(context.Background(), ChatRequest{Message: "help me with fractions", Persona: "nonexistent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response == "" {
		t.Fatal("expected a reply")
	}
	if mock.Calls[0].System != personas[defaultPersona] {
		t.Fatal("unknown persona should fall back to the default system prompt")
	}
}

func TestChat_HistoryReplayed(t *testing.T) {
	svc, mock := testService(llm.MockResponse{
		Content: json.RawMessage(`{"response":"As I said, the mitochondria."}`),
	})

	_, err := svc.Chat(context.Background(), ChatRequest{
		Message: "say that again?",
		History: []ChatTurn{
			{Role: "user", Content: "what is the powerhouse of the cell?"},
			{Role: "assistant", Content: "The mitochondria."},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Calls[0].Messages) != 3 {
		t.Fatalf("expected 3 messages (2 history + 1 new), got %d", len(mock.Calls[0].Messages))
	}
	if mock.Calls[0].Messages[1].Role != llm.RoleAssistant {
		t.Fatal("second message should be the assistant turn")
	}
}
