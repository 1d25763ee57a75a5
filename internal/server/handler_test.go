package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/audio"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/cache"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/content"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/study"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/trivia"
)

func newTestHandler(t *testing.T, provider llm.Provider, speech llm.SpeechProvider) *Handler {
	t.Helper()
	logger := zap.NewNop()
	svc := content.NewService(provider, logger, content.DefaultConfig())
	manager := study.NewManager(svc, cache.NewMemory(), logger)
	t.Cleanup(manager.Close)
	return New(
		svc,
		audio.NewPipeline(svc, speech, logger),
		manager,
		trivia.NewClient(trivia.Keys{}, logger),
		logger,
	)
}

func doJSON(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func fiveQuestionQuiz(t *testing.T) json.RawMessage {
	t.Helper()
	questions := make([]content.QuizQuestion, 5)
	for i := range questions {
		questions[i] = content.QuizQuestion{
			Question:      "Which organelle produces ATP?",
			Type:          content.TypeMultipleChoice,
			Options:       []string{"Nucleus", "Mitochondrion"},
			CorrectAnswer: "Mitochondrion",
		}
	}
	raw, err := json.Marshal(content.Quiz{Questions: questions})
	if err != nil {
		t.Fatalf("marshal quiz: %v", err)
	}
	return raw
}

func TestHandleQuiz_FiveQuestions(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: fiveQuestionQuiz(t)})
	h := newTestHandler(t, provider, llm.NewMockSpeechProvider())

	rec := doJSON(t, h, http.MethodPost, "/api/quiz", content.QuizRequest{
		Topic: "Cell Biology", NumQuestions: 5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var quiz content.Quiz
	if err := json.Unmarshal(rec.Body.Bytes(), &quiz); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(quiz.Questions))
	}
}

func TestHandleQuiz_ValidationMapsTo422(t *testing.T) {
	provider := llm.NewMockProvider()
	h := newTestHandler(t, provider, llm.NewMockSpeechProvider())

	rec := doJSON(t, h, http.MethodPost, "/api/quiz", content.QuizRequest{
		Topic: "ab", NumQuestions: 5,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if provider.CallCount() != 0 {
		t.Fatal("invalid requests must not reach the model")
	}
}

func TestHandleNotes_CredentialErrorMapsTo502(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrCredential{Err: errors.New("api key not valid")}},
	)
	h := newTestHandler(t, provider, llm.NewMockSpeechProvider())

	rec := doJSON(t, h, http.MethodPost, "/api/notes", content.NotesRequest{Topic: "Cell Biology"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(strings.ToLower(body.Error), "key") {
		t.Fatalf("credential message should be actionable, got %q", body.Error)
	}
}

func TestHandleFlashcardAudio_FailedSynthesisStillReturnsCards(t *testing.T) {
	cards := content.FlashcardSet{Cards: []content.Flashcard{
		{Term: "ATP", Definition: "Energy currency of the cell."},
		{Term: "Ribosome", Definition: "Site of protein synthesis."},
	}}
	raw, err := json.Marshal(cards)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	provider := llm.NewMockProvider(llm.MockResponse{Content: raw})
	speech := llm.NewMockSpeechProvider(
		llm.MockSpeechResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("tts down")}},
	)
	h := newTestHandler(t, provider, speech)

	rec := doJSON(t, h, http.MethodPost, "/api/audio/flashcards", content.FlashcardRequest{
		Topic: "Cell Biology", NumCards: 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var res audio.FlashcardAudioResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(res.Cards))
	}
	if res.AudioDataURI != "" {
		t.Fatal("audio should be absent after failed synthesis")
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	h := newTestHandler(t, llm.NewMockProvider(), llm.NewMockSpeechProvider())

	// The manager's cache is empty and every generation fails, so the
	// quiz slot never becomes ready: reads still work, while quiz
	// operations are rejected with a conflict.
	rec := doJSON(t, h, http.MethodPost, "/api/sessions", study.CreateRequest{Topic: "Cell Biology"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body)
	}
	var snap study.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.ID == "" {
		t.Fatal("expected a session ID")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/sessions/"+snap.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/sessions/"+snap.ID+"/submit", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("submit status = %d, want 409", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/sessions/"+snap.ID+"/answer",
		map[string]any{"question": 0, "answer": "Mitochondrion"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("answer status = %d, want 409", rec.Code)
	}
}

func TestUnknownSessionMapsTo404(t *testing.T) {
	h := newTestHandler(t, llm.NewMockProvider(), llm.NewMockSpeechProvider())

	rec := doJSON(t, h, http.MethodGet, "/api/sessions/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleFact_Passthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "6 is a perfect number.", "number": 6, "found": true, "type": "trivia"}`))
	}))
	defer upstream.Close()

	logger := zap.NewNop()
	svc := content.NewService(llm.NewMockProvider(), logger, content.DefaultConfig())
	manager := study.NewManager(svc, cache.NewMemory(), logger)
	defer manager.Close()
	h := New(
		svc,
		audio.NewPipeline(svc, llm.NewMockSpeechProvider(), logger),
		manager,
		trivia.NewClient(trivia.Keys{}, logger,
			trivia.WithBaseURLs(upstream.URL, upstream.URL, upstream.URL, upstream.URL)),
		logger,
	)

	rec := doJSON(t, h, http.MethodGet, "/api/fact", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var fact trivia.NumberFact
	if err := json.Unmarshal(rec.Body.Bytes(), &fact); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fact.Number != 6 {
		t.Fatalf("unexpected fact: %+v", fact)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, llm.NewMockProvider(), llm.NewMockSpeechProvider())
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMissingTriviaKeyMapsTo502(t *testing.T) {
	h := newTestHandler(t, llm.NewMockProvider(), llm.NewMockSpeechProvider())

	rec := doJSON(t, h, http.MethodGet, "/api/news?q=science", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
