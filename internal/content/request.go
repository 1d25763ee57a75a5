package content

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// requestValidator checks generation request bounds. Shared and
// concurrency-safe per the validator docs.
var requestValidator = validator.New()

// NotesRequest asks for study notes on a topic.
type NotesRequest struct {
	Topic string `json:"topic" validate:"required,min=3"`
}

// QuizRequest asks for a quiz on a topic.
type QuizRequest struct {
	Topic        string     `json:"topic" validate:"required,min=3"`
	NumQuestions int        `json:"numQuestions" validate:"required,min=1,max=50"`
	Difficulty   Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// FlashcardRequest asks for flashcards on a topic.
type FlashcardRequest struct {
	Topic      string     `json:"topic" validate:"required,min=3"`
	NumCards   int        `json:"numFlashcards" validate:"required,min=1,max=50"`
	Difficulty Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// ChatTurn is one prior exchange in a chatbot conversation.
type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest asks the themed chatbot for a reply.
type ChatRequest struct {
	Message string     `json:"message" validate:"required,min=1"`
	Persona string     `json:"persona,omitempty"`
	History []ChatTurn `json:"history,omitempty" validate:"dive"`
}

// CheckRequest validates a generation request's bounds without
// invoking any flow. Violations surface as *ValidationError.
func CheckRequest(req any) error { return checkRequest(req) }

// checkRequest validates request bounds before any network call.
// Violations surface as *ValidationError.
func checkRequest(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{
		Field:   fe.Field(),
		Message: fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()),
	}
}
