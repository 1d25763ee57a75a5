package study

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/cache"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/content"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("study: session not found")

// ErrQuizNotReady is returned for answer, navigate, and submit calls
// while the session's quiz slot is still pending or has failed.
var ErrQuizNotReady = errors.New("study: quiz not ready")

// CreateRequest configures a new study session.
type CreateRequest struct {
	Topic        string             `json:"topic"`
	NumQuestions int                `json:"numQuestions,omitempty"`
	NumCards     int                `json:"numFlashcards,omitempty"`
	Difficulty   content.Difficulty `json:"difficulty,omitempty"`

	// TimerMinutes > 0 makes the quiz a timed test.
	TimerMinutes int `json:"timerMinutes,omitempty"`
}

const (
	defaultNumQuestions = 10
	defaultNumCards     = 10

	// defaultMaxSessions caps resident sessions; creating past the cap
	// evicts the oldest session first.
	defaultMaxSessions = 1024
)

// Manager owns study sessions. It fans the three generation requests
// out concurrently, seeds from the cache before touching the network,
// writes results back through the cache, and collapses duplicate
// in-flight generations for the same content key.
type Manager struct {
	content *content.Service
	store   cache.Store
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	inflight map[string]chan struct{}

	maxSessions int
	tick        time.Duration
}

// NewManager creates a Manager backed by the given content service and
// cache store.
func NewManager(contentSvc *content.Service, store cache.Store, logger *zap.Logger) *Manager {
	return &Manager{
		content:     contentSvc,
		store:       store,
		logger:      logger,
		sessions:    make(map[string]*Session),
		inflight:    make(map[string]chan struct{}),
		maxSessions: defaultMaxSessions,
		tick:        time.Second,
	}
}

// Create starts a new session for a topic and kicks off generation of
// all three content kinds. The returned snapshot usually has every
// slot still pending; cache hits may already be ready.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	if req.NumQuestions == 0 {
		req.NumQuestions = defaultNumQuestions
	}
	if req.NumCards == 0 {
		req.NumCards = defaultNumCards
	}
	if err := content.CheckRequest(content.QuizRequest{
		Topic:        req.Topic,
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
	}); err != nil {
		return nil, err
	}
	if err := content.CheckRequest(content.FlashcardRequest{
		Topic:      req.Topic,
		NumCards:   req.NumCards,
		Difficulty: req.Difficulty,
	}); err != nil {
		return nil, err
	}

	s := &Session{
		ID:             uuid.NewString(),
		Topic:          req.Topic,
		Created:        time.Now().UTC(),
		NotesSlot:      Slot{State: SlotPending},
		QuizSlot:       Slot{State: SlotPending},
		FlashcardsSlot: Slot{State: SlotPending},
		numQuestions:   req.NumQuestions,
		numCards:       req.NumCards,
		difficulty:     req.Difficulty,
		timerSeconds:   req.TimerMinutes * 60,
		epochs:         make(map[cache.Kind]uint64),
		stopTimer:      make(chan struct{}),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.evictLocked()
	m.mu.Unlock()

	m.generateAll(ctx, s)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// Get returns a snapshot of the session, or ErrSessionNotFound.
func (m *Manager) Get(id string) (*Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// Answer records an answer for question i of the session's quiz.
func (m *Manager) Answer(id string, i int, value string) (*Snapshot, error) {
	return m.withQuiz(id, func(q *QuizState) { q.Answer(i, value) })
}

// Navigate moves the session's quiz cursor, clamped to valid indices.
func (m *Manager) Navigate(id string, i int) (*Snapshot, error) {
	return m.withQuiz(id, func(q *QuizState) { q.Navigate(i) })
}

// Submit finalizes the session's quiz score. Idempotent.
func (m *Manager) Submit(id string) (*Snapshot, error) {
	return m.withQuiz(id, func(q *QuizState) { q.Submit() })
}

func (m *Manager) withQuiz(id string, fn func(*QuizState)) (*Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Quiz == nil {
		return nil, ErrQuizNotReady
	}
	fn(s.Quiz)
	return s.snapshotLocked(), nil
}

// Refresh regenerates all three content kinds for the session. The
// cache entries are deleted first so the rebuild cannot be served from
// stale data, and the session's epochs advance so responses from the
// superseded generation round are discarded on arrival.
func (m *Manager) Refresh(ctx context.Context, id string) (*Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	for _, kind := range []cache.Kind{cache.KindNotes, cache.KindQuiz, cache.KindFlashcards} {
		key := cache.Key(kind, s.Topic)
		if derr := m.store.Delete(ctx, key); derr != nil {
			m.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(derr))
		}
	}

	s.mu.Lock()
	s.NotesSlot = Slot{State: SlotPending}
	s.QuizSlot = Slot{State: SlotPending}
	s.FlashcardsSlot = Slot{State: SlotPending}
	s.Notes = nil
	s.Quiz = nil
	s.Flashcards = nil
	s.mu.Unlock()

	m.generateAll(ctx, s)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// Close stops every session's timer goroutine.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.timerOnce.Do(func() { close(s.stopTimer) })
	}
}

// evictLocked drops the oldest sessions until the cap holds. Caller
// holds m.mu. Created is immutable after construction, so reading it
// without the session lock is safe.
func (m *Manager) evictLocked() {
	for len(m.sessions) > m.maxSessions {
		var oldest *Session
		for _, s := range m.sessions {
			if oldest == nil || s.Created.Before(oldest.Created) {
				oldest = s
			}
		}
		oldest.timerOnce.Do(func() { close(oldest.stopTimer) })
		delete(m.sessions, oldest.ID)
		m.logger.Debug("session evicted",
			zap.String("session", oldest.ID), zap.String("topic", oldest.Topic))
	}
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// generateAll fills the three content slots. Cache hits commit in line
// with the caller; misses spawn one goroutine per kind. Generation is
// detached from the request context so an early client disconnect does
// not abandon the session.
func (m *Manager) generateAll(ctx context.Context, s *Session) {
	bg := context.WithoutCancel(ctx)

	for _, kind := range []cache.Kind{cache.KindNotes, cache.KindQuiz, cache.KindFlashcards} {
		s.mu.Lock()
		s.epochs[kind]++
		epoch := s.epochs[kind]
		s.mu.Unlock()

		if m.seedFromCache(ctx, s, kind, epoch) {
			continue
		}
		go m.generate(bg, s, kind, epoch)
	}
}

// seedFromCache tries to fill a slot from the cache. Returns true when
// the slot was committed.
func (m *Manager) seedFromCache(ctx context.Context, s *Session, kind cache.Kind, epoch uint64) bool {
	key := cache.Key(kind, s.Topic)
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			m.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := m.commit(s, kind, epoch, raw); err != nil {
		m.logger.Warn("cached entry unreadable, regenerating",
			zap.String("key", key), zap.Error(err))
		return false
	}
	m.logger.Debug("slot seeded from cache",
		zap.String("session", s.ID), zap.String("kind", string(kind)))
	return true
}

// generate produces one content kind, writes it through to the cache,
// and commits it to the session. Concurrent generations for the same
// key collapse onto the first one's result.
func (m *Manager) generate(ctx context.Context, s *Session, kind cache.Kind, epoch uint64) {
	key := cache.Key(kind, s.Topic)

	for {
		done, leader := m.claim(key)
		if leader {
			break
		}
		<-done
		// The leader writes through to the cache before releasing, so
		// a hit here is its result. A miss means it failed; take over.
		if m.seedFromCache(ctx, s, kind, epoch) {
			return
		}
	}
	defer m.release(key)

	// Another generation may have filled the cache between our miss
	// and the claim.
	if m.seedFromCache(ctx, s, kind, epoch) {
		return
	}

	raw, err := m.produce(ctx, s, kind)
	if err != nil {
		m.logger.Warn("generation failed",
			zap.String("session", s.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		m.fail(s, kind, epoch, content.UserMessage(err))
		return
	}

	if err := m.store.Put(ctx, key, raw); err != nil {
		// Cache failures never block the session.
		m.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}

	if err := m.commit(s, kind, epoch, raw); err != nil {
		m.fail(s, kind, epoch, "generated content was unreadable")
	}
}

func (m *Manager) produce(ctx context.Context, s *Session, kind cache.Kind) (json.RawMessage, error) {
	s.mu.Lock()
	topic, nq, nc, diff := s.Topic, s.numQuestions, s.numCards, s.difficulty
	s.mu.Unlock()

	var out any
	var err error
	switch kind {
	case cache.KindNotes:
		out, err = m.content.GenerateNotes(ctx, content.NotesRequest{Topic: topic})
	case cache.KindQuiz:
		out, err = m.content.GenerateQuiz(ctx, content.QuizRequest{
			Topic: topic, NumQuestions: nq, Difficulty: diff,
		})
	default:
		out, err = m.content.GenerateFlashcards(ctx, content.FlashcardRequest{
			Topic: topic, NumCards: nc, Difficulty: diff,
		})
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// commit installs a generated payload into the session slot, unless a
// newer epoch has superseded the request.
func (m *Manager) commit(s *Session, kind cache.Kind, epoch uint64, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[kind] != epoch {
		m.logger.Debug("stale generation discarded",
			zap.String("session", s.ID),
			zap.String("kind", string(kind)),
			zap.Uint64("epoch", epoch),
			zap.Uint64("current", s.epochs[kind]))
		return nil
	}

	switch kind {
	case cache.KindNotes:
		var notes content.Notes
		if err := json.Unmarshal(raw, &notes); err != nil {
			return err
		}
		s.Notes = &notes
	case cache.KindQuiz:
		var quiz content.Quiz
		if err := json.Unmarshal(raw, &quiz); err != nil {
			return err
		}
		s.Quiz = newQuizState(quiz.Questions, s.timerSeconds)
		if s.Quiz.Timed {
			go m.runTimer(s, s.Quiz)
		}
	default:
		var set content.FlashcardSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return err
		}
		s.Flashcards = &set
	}

	*s.slot(kind) = Slot{State: SlotReady}
	return nil
}

// fail marks a slot failed, unless a newer epoch owns it.
func (m *Manager) fail(s *Session, kind cache.Kind, epoch uint64, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epochs[kind] != epoch {
		return
	}
	*s.slot(kind) = Slot{State: SlotFailed, Error: reason}
}

// claim registers interest in generating key. The first caller becomes
// the leader; others get the leader's done channel to wait on.
func (m *Manager) claim(key string) (done chan struct{}, leader bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.inflight[key]; ok {
		return ch, false
	}
	ch := make(chan struct{})
	m.inflight[key] = ch
	return ch, true
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.inflight[key]; ok {
		close(ch)
		delete(m.inflight, key)
	}
}

// runTimer drives the countdown for one timed quiz, one tick per
// second. It is bound to the QuizState it was started for: when a
// refresh installs a new quiz, the old goroutine exits at its next
// tick instead of double-ticking the replacement.
func (m *Manager) runTimer(s *Session, q *QuizState) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopTimer:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.Quiz != q { // refresh superseded this quiz
				s.mu.Unlock()
				return
			}
			q.Tick()
			submitted := q.Submitted
			s.mu.Unlock()
			if submitted {
				return
			}
		}
	}
}
