package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/util"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ShareService issues and resolves public access tokens for quiz
// documents. Tokens are stateless HS256-signed claims binding a token to a
// quiz id; their validity is evaluated against the document's current
// visibility at resolve time. Flipping a quiz private revokes every
// outstanding link immediately, and flipping it public again revalidates
// them (reuse policy: no reissue is required).
type ShareService interface {
	// Issue produces a share token for a public quiz document.
	Issue(ctx context.Context, quizID string) (string, error)

	// Resolve validates a token and returns a frozen snapshot of the bound
	// document.
	Resolve(ctx context.Context, token string) (*domain.QuizDocument, error)
}

// ShareClaims is the JWT payload of a share token.
type ShareClaims struct {
	QuizID string `json:"quiz_id"`
	jwt.RegisteredClaims
}

// shareService implements ShareService.
type shareService struct {
	repo        domain.QuizRepository
	docCache    domain.Cache
	secret      []byte
	snapshotTTL time.Duration
	sfGroup     singleflight.Group
}

// NewShareService creates a new instance of shareService.
func NewShareService(repo domain.QuizRepository, docCache domain.Cache, cfg *config.Config) (ShareService, error) {
	if cfg.Share.Secret == "" {
		return nil, fmt.Errorf("share secret is not configured")
	}
	return &shareService{
		repo:        repo,
		docCache:    docCache,
		secret:      []byte(cfg.Share.Secret),
		snapshotTTL: cfg.Session.SnapshotCacheTTL,
	}, nil
}

// Issue implements ShareService.
func (s *shareService) Issue(ctx context.Context, quizID string) (string, error) {
	doc, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return "", domain.NewPersistenceError("failed to load quiz", err)
	}
	if doc == nil {
		return "", domain.NewQuizNotFoundError(quizID)
	}
	if doc.Settings.Visibility != domain.VisibilityPublic {
		return "", domain.NewError(domain.CodeDocumentNotPublic,
			fmt.Sprintf("quiz %s is not public", quizID), nil)
	}
	if len(doc.Questions) == 0 {
		return "", domain.NewError(domain.CodeEmptyQuiz,
			fmt.Sprintf("quiz %s has no questions", quizID), nil)
	}

	claims := ShareClaims{
		QuizID: quizID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       util.NewULID(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign share token", err)
	}

	logger.Get().Info("Share token issued", zap.String("quiz_id", quizID), zap.String("jti", claims.ID))
	return token, nil
}

// Resolve implements ShareService.
func (s *shareService) Resolve(ctx context.Context, token string) (*domain.QuizDocument, error) {
	quizID, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	doc, err := s.loadSnapshot(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		// The bound document was deleted; the link is dead, not revoked.
		return nil, domain.NewTokenInvalidError(nil)
	}
	if doc.Settings.Visibility != domain.VisibilityPublic {
		return nil, domain.NewTokenRevokedError()
	}
	return doc, nil
}

// parse verifies the token signature and shape and extracts the bound quiz
// id.
func (s *shareService) parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &ShareClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", domain.NewTokenInvalidError(err)
	}
	claims, ok := parsed.Claims.(*ShareClaims)
	if !ok || claims.QuizID == "" {
		return "", domain.NewTokenInvalidError(errors.New("missing quiz binding"))
	}
	return claims.QuizID, nil
}

// loadSnapshot serves the publicly resolvable document through the cache,
// deduplicating concurrent loads for the same quiz with singleflight. The
// cached entry is evicted by the editor on every save. Returns (nil, nil)
// when the document does not exist.
func (s *shareService) loadSnapshot(ctx context.Context, quizID string) (*domain.QuizDocument, error) {
	if s.docCache != nil {
		cached, err := s.docCache.Get(ctx, cache.SnapshotKey(quizID))
		if err == nil {
			var doc domain.QuizDocument
			if err := json.Unmarshal([]byte(cached), &doc); err == nil {
				return &doc, nil
			}
			logger.Get().Warn("Discarding corrupt snapshot cache entry", zap.String("quiz_id", quizID))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Snapshot cache read failed", zap.String("quiz_id", quizID), zap.Error(err))
		}
	}

	res, err, _ := s.sfGroup.Do(quizID, func() (interface{}, error) {
		doc, err := s.repo.GetQuizByID(ctx, quizID)
		if err != nil {
			return nil, domain.NewPersistenceError("failed to load quiz", err)
		}
		if doc == nil {
			return (*domain.QuizDocument)(nil), nil
		}

		if s.docCache != nil {
			if data, errMarshal := json.Marshal(doc); errMarshal == nil {
				if errSet := s.docCache.Set(ctx, cache.SnapshotKey(quizID), string(data), s.snapshotTTL); errSet != nil {
					logger.Get().Warn("Snapshot cache write failed", zap.String("quiz_id", quizID), zap.Error(errSet))
				}
			}
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.QuizDocument), nil
}
