package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/util"

	"go.uber.org/zap"
)

// SessionService runs assessment attempts. Live sessions are held in
// memory behind per-session locks; every mutation is mirrored to the cache
// so an interrupted taker can resume, and terminal sessions are persisted
// as attempts.
type SessionService interface {
	// Start opens an attempt against a quiz by id.
	Start(ctx context.Context, quizID, takerID string) (*dto.SessionResponse, error)

	// StartFromToken opens an anonymous-capable attempt through a share
	// token, snapshotting the resolved document.
	StartFromToken(ctx context.Context, token, takerID string) (*dto.SessionResponse, error)

	Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Answer(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.SessionResponse, error)
	Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Retreat(ctx context.Context, sessionID string) (*dto.SessionResponse, error)

	// Tick advances the countdown by one second. Exposed so tests and the
	// internal ticker share one code path.
	Tick(ctx context.Context, sessionID string) (*dto.SessionResponse, error)

	// Submit closes the attempt and returns its scored result.
	Submit(ctx context.Context, sessionID string) (*dto.SessionResultResponse, error)

	// Abandon drops an in-progress attempt without scoring it.
	Abandon(ctx context.Context, sessionID string) error
}

// liveSession pairs a session with its lock and timer cancellation.
type liveSession struct {
	mu       sync.Mutex
	session  *domain.AssessmentSession
	stopTick chan struct{}
}

// sessionService implements SessionService.
type sessionService struct {
	repo     domain.QuizRepository
	attempts domain.AttemptRepository
	share    ShareService
	store    domain.Cache
	cfg      config.SessionConfig

	mu   sync.RWMutex
	live map[string]*liveSession
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	repo domain.QuizRepository,
	attempts domain.AttemptRepository,
	share ShareService,
	store domain.Cache,
	cfg config.SessionConfig,
) SessionService {
	return &sessionService{
		repo:     repo,
		attempts: attempts,
		share:    share,
		store:    store,
		cfg:      cfg,
		live:     make(map[string]*liveSession),
	}
}

// Start implements SessionService.
func (s *sessionService) Start(ctx context.Context, quizID, takerID string) (*dto.SessionResponse, error) {
	doc, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to load quiz", err)
	}
	if doc == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return s.open(ctx, doc, takerID)
}

// StartFromToken implements SessionService.
func (s *sessionService) StartFromToken(ctx context.Context, token, takerID string) (*dto.SessionResponse, error) {
	doc, err := s.share.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, doc, takerID)
}

func (s *sessionService) open(ctx context.Context, doc *domain.QuizDocument, takerID string) (*dto.SessionResponse, error) {
	sess, err := domain.StartSession(util.NewULID(), doc, takerID)
	if err != nil {
		return nil, err
	}

	ls := &liveSession{session: sess}
	s.mu.Lock()
	s.live[sess.ID] = ls
	s.mu.Unlock()

	s.persistResume(ctx, sess)

	if s.cfg.TickerEnabled {
		ls.stopTick = make(chan struct{})
		go s.runTicker(sess.ID, ls.stopTick)
	}

	logger.Get().Info("Assessment session started",
		zap.String("session_id", sess.ID),
		zap.String("quiz_id", doc.ID),
		zap.String("taker_id", sess.TakerID))
	return dto.ToSessionResponse(sess), nil
}

// runTicker drives the countdown at wall-clock speed until the session
// leaves the in-progress state or is abandoned.
func (s *sessionService) runTicker(sessionID string, stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			resp, err := s.Tick(context.Background(), sessionID)
			if err != nil || domain.SessionStatus(resp.Status).IsTerminal() {
				return
			}
		}
	}
}

// Get implements SessionService. It falls back to the cache when the
// process no longer holds the session in memory, rehydrating it so the
// taker can resume after a restart.
func (s *sessionService) Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	ls, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return dto.ToSessionResponse(ls.session), nil
}

// Answer implements SessionService.
func (s *sessionService) Answer(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.SessionResponse, error) {
	return s.withSession(ctx, sessionID, func(sess *domain.AssessmentSession) error {
		return sess.Answer(req.QuestionID, req.Value)
	})
}

// Advance implements SessionService.
func (s *sessionService) Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	return s.withSession(ctx, sessionID, func(sess *domain.AssessmentSession) error {
		return sess.Advance()
	})
}

// Retreat implements SessionService.
func (s *sessionService) Retreat(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	return s.withSession(ctx, sessionID, func(sess *domain.AssessmentSession) error {
		return sess.Retreat()
	})
}

// Tick implements SessionService.
func (s *sessionService) Tick(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	ls, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	wasActive := ls.session.Status == domain.SessionInProgress
	ls.session.Tick()
	if wasActive && ls.session.Status == domain.SessionExpired {
		s.settle(ctx, ls)
	}
	return dto.ToSessionResponse(ls.session), nil
}

// Submit implements SessionService.
func (s *sessionService) Submit(ctx context.Context, sessionID string) (*dto.SessionResultResponse, error) {
	ls, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	result, err := ls.session.Submit()
	if err != nil {
		return nil, err
	}
	s.settle(ctx, ls)
	return &dto.SessionResultResponse{
		TotalScore:     result.TotalScore,
		PossiblePoints: result.PossiblePoints,
		ScorePercent:   result.ScorePercent,
		Passed:         result.Passed,
	}, nil
}

// Abandon implements SessionService. The attempt is discarded unscored.
func (s *sessionService) Abandon(ctx context.Context, sessionID string) error {
	ls, err := s.lookup(ctx, sessionID)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	if ls.session.Status.IsTerminal() {
		ls.mu.Unlock()
		return domain.NewError(domain.CodeSessionAlreadyTerminal,
			"session "+sessionID+" is already finished", nil)
	}
	s.stopTicker(ls)
	ls.mu.Unlock()

	s.mu.Lock()
	delete(s.live, sessionID)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Delete(ctx, cache.SessionKey(sessionID)); err != nil {
			logger.Get().Warn("Failed to drop resume state", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	logger.Get().Info("Assessment session abandoned", zap.String("session_id", sessionID))
	return nil
}

// withSession applies a mutation under the session lock and mirrors the new
// state to the resume cache.
func (s *sessionService) withSession(ctx context.Context, sessionID string, fn func(*domain.AssessmentSession) error) (*dto.SessionResponse, error) {
	ls, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := fn(ls.session); err != nil {
		return nil, err
	}
	s.persistResume(ctx, ls.session)
	return dto.ToSessionResponse(ls.session), nil
}

// lookup finds a live session, rehydrating from the resume cache when the
// in-memory entry is gone.
func (s *sessionService) lookup(ctx context.Context, sessionID string) (*liveSession, error) {
	s.mu.RLock()
	ls, ok := s.live[sessionID]
	s.mu.RUnlock()
	if ok {
		return ls, nil
	}

	sess, err := s.loadResume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	ls = &liveSession{session: sess}
	s.mu.Lock()
	// Another request may have rehydrated the same session concurrently.
	if existing, ok := s.live[sessionID]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	s.live[sessionID] = ls
	if s.cfg.TickerEnabled && sess.Status == domain.SessionInProgress {
		ls.stopTick = make(chan struct{})
		go s.runTicker(sessionID, ls.stopTick)
	}
	s.mu.Unlock()
	logger.Get().Info("Assessment session rehydrated", zap.String("session_id", sessionID))
	return ls, nil
}

// settle runs after a session turns terminal while its lock is held: it
// stops the ticker, persists the attempt, and drops the resume entry.
func (s *sessionService) settle(ctx context.Context, ls *liveSession) {
	sess := ls.session
	s.stopTicker(ls)

	attempt := &domain.Attempt{
		ID:           sess.ID,
		QuizID:       sess.Snapshot.ID,
		TakerID:      sess.TakerID,
		Status:       sess.Status,
		Answers:      sess.Answers,
		TotalScore:   sess.Result.TotalScore,
		ScorePercent: sess.Result.ScorePercent,
		Passed:       sess.Result.Passed,
		StartedAt:    sess.StartedAt,
		FinishedAt:   sess.FinishedAt,
	}
	if err := s.attempts.SaveAttempt(ctx, attempt); err != nil {
		logger.Get().Error("Failed to persist attempt",
			zap.String("session_id", sess.ID), zap.Error(err))
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, cache.SessionKey(sess.ID)); err != nil {
			logger.Get().Warn("Failed to drop resume state", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}

	logger.Get().Info("Assessment session finished",
		zap.String("session_id", sess.ID),
		zap.String("status", string(sess.Status)),
		zap.Int("score_percent", sess.Result.ScorePercent),
		zap.Bool("passed", sess.Result.Passed))
}

func (s *sessionService) stopTicker(ls *liveSession) {
	if ls.stopTick != nil {
		close(ls.stopTick)
		ls.stopTick = nil
	}
}

// persistResume mirrors an in-progress session to the cache. Failures are
// logged and swallowed: the in-memory session stays authoritative.
func (s *sessionService) persistResume(ctx context.Context, sess *domain.AssessmentSession) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(sess)
	if err != nil {
		logger.Get().Warn("Failed to serialize session", zap.String("session_id", sess.ID), zap.Error(err))
		return
	}
	ttl := time.Duration(sess.RemainingSeconds)*time.Second + s.cfg.ResumeTTLSlack
	if err := s.store.Set(ctx, cache.SessionKey(sess.ID), string(data), ttl); err != nil {
		logger.Get().Warn("Failed to write resume state", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

func (s *sessionService) loadResume(ctx context.Context, sessionID string) (*domain.AssessmentSession, error) {
	if s.store == nil {
		return nil, nil
	}
	raw, err := s.store.Get(ctx, cache.SessionKey(sessionID))
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, nil
		}
		return nil, domain.NewInternalError("failed to read resume state", err)
	}
	var sess domain.AssessmentSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, domain.NewInternalError("corrupt resume state", err)
	}
	return &sess, nil
}
