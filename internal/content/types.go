// Package content implements the schema-validated generation flows for
// study material: notes, quizzes, flashcards, and the themed chatbot.
// Every capability is the same procedure — render a prompt, invoke the
// model with a declared output schema, validate and post-process the
// result — parameterized by template and schema.
package content

// Kind identifies a category of generated study content.
type Kind string

const (
	KindNotes      Kind = "notes"
	KindQuiz       Kind = "quiz"
	KindFlashcards Kind = "flashcards"
)

// Difficulty is the requested difficulty for quizzes and flashcards.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType is the mandatory discriminator for quiz questions. The tag
// is produced at generation time and validated against the presence of
// options; render-time inference from a possibly-missing options list is
// deliberately not supported.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeShortAnswer    QuestionType = "short-answer"
)

// Notes is generated study notes in Markdown.
type Notes struct {
	Markdown string `json:"markdown"`
}

// QuizQuestion is a single generated quiz question.
// Invariant: when Type is multiple-choice, Options has 2-4 entries and
// contains CorrectAnswer; when Type is short-answer, Options is empty.
type QuizQuestion struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// Quiz is an ordered set of generated questions.
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

// Flashcard is a (term, definition) study unit.
type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// FlashcardSet is an ordered set of generated flashcards.
type FlashcardSet struct {
	Cards []Flashcard `json:"cards"`
}

// ChatReply is a single chatbot response.
type ChatReply struct {
	Response string `json:"response"`
}
