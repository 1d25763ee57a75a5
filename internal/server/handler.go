// Package server exposes the HTTP API: generation flows, audio
// pipelines, study sessions, and the trivia passthroughs.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/audio"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/content"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/study"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/trivia"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	content  *content.Service
	audio    *audio.Pipeline
	sessions *study.Manager
	trivia   *trivia.Client
	logger   *zap.Logger
}

// New creates a Handler with its dependencies.
func New(contentSvc *content.Service, pipeline *audio.Pipeline, sessions *study.Manager, triviaClient *trivia.Client, logger *zap.Logger) *Handler {
	return &Handler{
		content:  contentSvc,
		audio:    pipeline,
		sessions: sessions,
		trivia:   triviaClient,
		logger:   logger,
	}
}

// Router builds the chi router with all routes registered.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Post("/notes", h.handleNotes)
		api.Post("/quiz", h.handleQuiz)
		api.Post("/flashcards", h.handleFlashcards)
		api.Post("/chat", h.handleChat)

		api.Post("/audio/discussion", h.handleDiscussionAudio)
		api.Post("/audio/flashcards", h.handleFlashcardAudio)

		api.Post("/sessions", h.handleCreateSession)
		api.Get("/sessions/{id}", h.handleGetSession)
		api.Post("/sessions/{id}/answer", h.handleAnswer)
		api.Post("/sessions/{id}/navigate", h.handleNavigate)
		api.Post("/sessions/{id}/submit", h.handleSubmit)
		api.Post("/sessions/{id}/refresh", h.handleRefresh)

		api.Get("/news", h.handleNews)
		api.Get("/books", h.handleBooks)
		api.Get("/videos", h.handleVideos)
		api.Get("/fact", h.handleFact)
	})

	return r
}

// logRequests logs one line per request after it completes.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleNotes(w http.ResponseWriter, r *http.Request) {
	var req content.NotesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	notes, err := h.content.GenerateNotes(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, notes)
}

func (h *Handler) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var req content.QuizRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	quiz, err := h.content.GenerateQuiz(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, quiz)
}

func (h *Handler) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	var req content.FlashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	set, err := h.content.GenerateFlashcards(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, set)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req content.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	reply, err := h.content.Chat(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleDiscussionAudio(w http.ResponseWriter, r *http.Request) {
	var req content.ScriptRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.audio.Discussion(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, res)
}

func (h *Handler) handleFlashcardAudio(w http.ResponseWriter, r *http.Request) {
	var req content.FlashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.audio.FlashcardAudio(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, res)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req study.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	snap, err := h.sessions.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, snap)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question int    `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	snap, err := h.sessions.Answer(chi.URLParam(r, "id"), req.Question, req.Answer)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question int `json:"question"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	snap, err := h.sessions.Navigate(chi.URLParam(r, "id"), req.Question)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Submit(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Refresh(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.trivia.News(r.Context(), trivia.NewsRequest{
		Query:    q.Get("q"),
		Country:  q.Get("country"),
		Category: q.Get("category"),
		Page:     q.Get("page"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, page)
}

func (h *Handler) handleBooks(w http.ResponseWriter, r *http.Request) {
	list, err := h.trivia.Books(r.Context(), r.URL.Query().Get("q"), queryInt(r, "max"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleVideos(w http.ResponseWriter, r *http.Request) {
	list, err := h.trivia.Videos(r.Context(), r.URL.Query().Get("q"), queryInt(r, "max"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleFact(w http.ResponseWriter, r *http.Request) {
	fact, err := h.trivia.RandomFact(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, fact)
}

func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}
