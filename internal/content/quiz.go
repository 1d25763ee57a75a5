package content

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// GenerateQuiz produces a quiz for a topic.
//
// Each question's type tag is reconciled with its options before the quiz
// is accepted: a tag that disagrees with option presence is repaired
// deterministically (options present → multiple-choice, absent →
// short-answer), and multiple-choice questions that still have fewer than
// two options or whose options don't contain the correct answer are
// rejected with a logged warning. A quiz left with no usable questions is
// a generation failure.
func (s *Service) GenerateQuiz(ctx context.Context, req QuizRequest) (*Quiz, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var quiz Quiz
	err := s.invoke(ctx, "quiz", quizSystemPrompt, buildQuizUserMessage(req), QuizSchema, &quiz)
	if err != nil {
		return nil, err
	}

	kept := make([]QuizQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		fixed, reason := repairQuestion(q)
		if reason != "" {
			s.logger.Warn("dropping malformed quiz question",
				zap.String("topic", req.Topic),
				zap.String("question", q.Question),
				zap.String("reason", reason),
			)
			continue
		}
		kept = append(kept, fixed)
	}

	if len(kept) == 0 {
		return nil, &GenerationError{
			Capability: "quiz",
			Err:        fmt.Errorf("no usable questions generated for topic %q", req.Topic),
		}
	}

	quiz.Questions = kept
	return &quiz, nil
}

// repairQuestion normalizes a question's type tag against its options and
// checks the multiple-choice invariant. Returns the repaired question and
// an empty reason, or a non-empty rejection reason.
func repairQuestion(q QuizQuestion) (QuizQuestion, string) {
	if q.Question == "" || q.CorrectAnswer == "" {
		return q, "missing question text or correct answer"
	}

	// Reconcile the tag with option presence.
	switch {
	case q.Type == TypeShortAnswer && len(q.Options) > 0:
		q.Type = TypeMultipleChoice
	case q.Type == TypeMultipleChoice && len(q.Options) == 0:
		q.Type = TypeShortAnswer
	case q.Type != TypeMultipleChoice && q.Type != TypeShortAnswer:
		if len(q.Options) > 0 {
			q.Type = TypeMultipleChoice
		} else {
			q.Type = TypeShortAnswer
		}
	}

	if q.Type == TypeMultipleChoice {
		if len(q.Options) < 2 || len(q.Options) > 4 {
			return q, fmt.Sprintf("multiple-choice with %d options", len(q.Options))
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return q, "options do not contain the correct answer"
		}
	}

	return q, ""
}
