package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

func testService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewService(mock, zap.NewNop(), DefaultConfig()), mock
}

func TestGenerateQuiz_FiveQuestions(t *testing.T) {
	quiz := Quiz{Questions: make([]QuizQuestion, 5)}
	for i := range quiz.Questions {
		quiz.Questions[i] = QuizQuestion{
			Question:      "What organelle performs photosynthesis?",
			Type:          TypeMultipleChoice,
			Options:       []string{"Chloroplast", "Mitochondrion", "Ribosome", "Nucleus"},
			CorrectAnswer: "Chloroplast",
			Explanation:   "Chloroplasts contain chlorophyll.",
		}
	}
	raw, _ := json.Marshal(quiz)

	svc, mock := testService(llm.MockResponse{Content: raw})

	got, err := svc.GenerateQuiz(context.Background(), QuizRequest{Topic: "Photosynthesis", NumQuestions: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(got.Questions))
	}
	for i, q := range got.Questions {
		if q.Type != TypeMultipleChoice {
			t.Fatalf("question %d: unexpected type %q", i, q.Type)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
			}
		}
		if !found {
			t.Fatalf("question %d: options do not contain the correct answer", i)
		}
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.CallCount())
	}
}

func TestGenerateQuiz_DropsMalformedQuestions(t *testing.T) {
	quiz := Quiz{Questions: []QuizQuestion{
		{
			Question:      "Good one?",
			Type:          TypeMultipleChoice,
			Options:       []string{"Yes", "No"},
			CorrectAnswer: "Yes",
		},
		{
			// Single option: rejected.
			Question:      "One option?",
			Type:          TypeMultipleChoice,
			Options:       []string{"Only"},
			CorrectAnswer: "Only",
		},
		{
			// Correct answer not among options: rejected.
			Question:      "Mismatched?",
			Type:          TypeMultipleChoice,
			Options:       []string{"A", "B"},
			CorrectAnswer: "C",
		},
	}}
	raw, _ := json.Marshal(quiz)

	svc, _ := testService(llm.MockResponse{Content: raw})

	got, err := svc.GenerateQuiz(context.Background(), QuizRequest{Topic: "Logic", NumQuestions: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("expected 1 surviving question, got %d", len(got.Questions))
	}
	if got.Questions[0].Question != "Good one?" {
		t.Fatalf("wrong question survived: %q", got.Questions[0].Question)
	}
}

func TestGenerateQuiz_AllDroppedIsError(t *testing.T) {
	raw, _ := json.Marshal(Quiz{Questions: []QuizQuestion{
		{Question: "Bad", Type: TypeMultipleChoice, Options: []string{"X"}, CorrectAnswer: "X"},
	}})

	svc, _ := testService(llm.MockResponse{Content: raw})

	_, err := svc.GenerateQuiz(context.Background(), QuizRequest{Topic: "Anything", NumQuestions: 1})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got: %v", err)
	}
}

func TestGenerateQuiz_BoundsCheckedBeforeNetwork(t *testing.T) {
	svc, mock := testService()

	tests := []QuizRequest{
		{Topic: "ok", NumQuestions: 5},               // topic too short
		{Topic: "Photosynthesis", NumQuestions: 0},   // count too low
		{Topic: "Photosynthesis", NumQuestions: 51},  // count too high
		{Topic: "Photosynthesis", NumQuestions: 5, Difficulty: "impossible"},
	}
	for _, req := range tests {
		_, err := svc.GenerateQuiz(context.Background(), req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("request %+v: expected ValidationError, got %v", req, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Fatalf("validation failures must not reach the provider; got %d calls", mock.CallCount())
	}
}

func TestRepairQuestion_TagReconciliation(t *testing.T) {
	tests := []struct {
		name     string
		in       QuizQuestion
		wantType QuestionType
		rejected bool
	}{
		{
			name:     "short-answer tag with options becomes multiple-choice",
			in:       QuizQuestion{Question: "q", Type: TypeShortAnswer, Options: []string{"a", "b"}, CorrectAnswer: "a"},
			wantType: TypeMultipleChoice,
		},
		{
			name:     "multiple-choice tag without options becomes short-answer",
			in:       QuizQuestion{Question: "q", Type: TypeMultipleChoice, CorrectAnswer: "a"},
			wantType: TypeShortAnswer,
		},
		{
			name:     "unknown tag with options becomes multiple-choice",
			in:       QuizQuestion{Question: "q", Type: "multiple_choice", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			wantType: TypeMultipleChoice,
		},
		{
			name:     "five options rejected",
			in:       QuizQuestion{Question: "q", Type: TypeMultipleChoice, Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: "a"},
			rejected: true,
		},
		{
			name:     "missing correct answer rejected",
			in:       QuizQuestion{Question: "q", Type: TypeShortAnswer},
			rejected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := repairQuestion(tt.in)
			if tt.rejected {
				if reason == "" {
					t.Fatal("expected rejection")
				}
				return
			}
			if reason != "" {
				t.Fatalf("unexpected rejection: %s", reason)
			}
			if got.Type != tt.wantType {
				t.Fatalf("expected type %q, got %q", tt.wantType, got.Type)
			}
		})
	}
}
