// Package study implements study sessions: per-topic bundles of notes,
// a quiz, and flashcards generated concurrently, with a quiz state
// machine for answering, navigation, scoring, and timed tests.
package study

import (
	"strings"
	"sync"
	"time"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/cache"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/content"
)

// Scoring constants. Unanswered questions score zero.
const (
	PointsCorrect   = 4
	PointsIncorrect = -1
)

// SlotState tracks one content slot's generation lifecycle.
type SlotState string

const (
	SlotPending SlotState = "pending"
	SlotReady   SlotState = "ready"
	SlotFailed  SlotState = "failed"
)

// Slot is the generation status of one content kind within a session.
// A failed slot carries a user-facing reason; the other slots are
// unaffected.
type Slot struct {
	State SlotState `json:"state"`
	Error string    `json:"error,omitempty"`
}

// AnswerRecord is the per-question answer state. Once Finalized it
// never changes again.
type AnswerRecord struct {
	Value     string `json:"value"`
	Finalized bool   `json:"finalized"`
	Correct   bool   `json:"correct"`
}

// QuizState is the interactive state of a session's quiz.
type QuizState struct {
	Questions []content.QuizQuestion `json:"questions"`
	Current   int                    `json:"current"`
	Answers   []AnswerRecord         `json:"answers"`
	Submitted bool                   `json:"submitted"`
	Score     int                    `json:"score"`
	MaxScore  int                    `json:"maxScore"`

	// Timed is set for timed tests; TimerRemaining counts whole seconds.
	Timed          bool `json:"timed"`
	TimerRemaining int  `json:"timerRemaining,omitempty"`
}

func newQuizState(questions []content.QuizQuestion, timerSeconds int) *QuizState {
	return &QuizState{
		Questions:      questions,
		Answers:        make([]AnswerRecord, len(questions)),
		MaxScore:       PointsCorrect * len(questions),
		Timed:          timerSeconds > 0,
		TimerRemaining: timerSeconds,
	}
}

// Answer records the answer for question i. The first accepted answer
// finalizes the question; later calls for the same index are no-ops.
// Multiple-choice answers finalize on any selection; short answers
// finalize only when the trimmed value is non-empty. Correctness is a
// case-insensitive trimmed match against the expected answer.
func (q *QuizState) Answer(i int, value string) {
	if q.Submitted || i < 0 || i >= len(q.Questions) {
		return
	}
	if q.Answers[i].Finalized {
		return
	}

	question := q.Questions[i]
	trimmed := strings.TrimSpace(value)
	if question.Type == content.TypeShortAnswer && trimmed == "" {
		return
	}

	q.Answers[i] = AnswerRecord{
		Value:     value,
		Finalized: true,
		Correct:   strings.EqualFold(trimmed, strings.TrimSpace(question.CorrectAnswer)),
	}
}

// Navigate moves the cursor to question i, clamped to the valid range.
// Answer state for every index is retained across navigation.
func (q *QuizState) Navigate(i int) {
	if len(q.Questions) == 0 {
		q.Current = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(q.Questions) {
		i = len(q.Questions) - 1
	}
	q.Current = i
}

// Next advances the cursor by one, clamped.
func (q *QuizState) Next() { q.Navigate(q.Current + 1) }

// Prev moves the cursor back by one, clamped.
func (q *QuizState) Prev() { q.Navigate(q.Current - 1) }

// Submit totals the score and locks the quiz. It is idempotent: the
// score is computed exactly once and further answers are rejected.
func (q *QuizState) Submit() {
	if q.Submitted {
		return
	}
	q.Submitted = true

	score := 0
	for _, a := range q.Answers {
		if !a.Finalized {
			continue
		}
		if a.Correct {
			score += PointsCorrect
		} else {
			score += PointsIncorrect
		}
	}
	q.Score = score
}

// Tick advances the countdown by one second. Reaching zero forces a
// submit; once submitted, further ticks do nothing.
func (q *QuizState) Tick() {
	if !q.Timed || q.Submitted {
		return
	}
	if q.TimerRemaining > 0 {
		q.TimerRemaining--
	}
	if q.TimerRemaining == 0 {
		q.Submit()
	}
}

// Session is one study session. All mutation happens under mu, held by
// the Manager; generation goroutines commit results through the
// Manager so epoch checks stay in one place.
type Session struct {
	mu sync.Mutex

	ID      string
	Topic   string
	Created time.Time

	NotesSlot      Slot
	QuizSlot       Slot
	FlashcardsSlot Slot

	Notes      *content.Notes
	Quiz       *QuizState
	Flashcards *content.FlashcardSet

	// quiz configuration, kept for Refresh
	numQuestions int
	numCards     int
	difficulty   content.Difficulty
	timerSeconds int

	// epochs invalidate in-flight generations when Refresh supersedes
	// them; a commit whose epoch is older than the slot's is dropped.
	epochs map[cache.Kind]uint64

	// stopTimer ends the ticker goroutine for timed sessions.
	stopTimer chan struct{}
	timerOnce sync.Once
}

func (s *Session) slot(kind cache.Kind) *Slot {
	switch kind {
	case cache.KindNotes:
		return &s.NotesSlot
	case cache.KindQuiz:
		return &s.QuizSlot
	default:
		return &s.FlashcardsSlot
	}
}

// Snapshot is the externally visible view of a session, safe to encode
// after the session lock is released.
type Snapshot struct {
	ID      string    `json:"id"`
	Topic   string    `json:"topic"`
	Created time.Time `json:"createdAt"`

	NotesSlot      Slot `json:"notesSlot"`
	QuizSlot       Slot `json:"quizSlot"`
	FlashcardsSlot Slot `json:"flashcardsSlot"`

	Notes      *content.Notes        `json:"notes,omitempty"`
	Quiz       *QuizState            `json:"quiz,omitempty"`
	Flashcards *content.FlashcardSet `json:"flashcards,omitempty"`
}

// snapshotLocked copies the session state. Caller holds s.mu.
func (s *Session) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		ID:             s.ID,
		Topic:          s.Topic,
		Created:        s.Created,
		NotesSlot:      s.NotesSlot,
		QuizSlot:       s.QuizSlot,
		FlashcardsSlot: s.FlashcardsSlot,
		Notes:          s.Notes,
		Flashcards:     s.Flashcards,
	}
	if s.Quiz != nil {
		q := *s.Quiz
		q.Questions = append([]content.QuizQuestion(nil), s.Quiz.Questions...)
		q.Answers = append([]AnswerRecord(nil), s.Quiz.Answers...)
		snap.Quiz = &q
	}
	return snap
}
