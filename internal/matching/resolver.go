// Package matching turns like and pass decisions into durable rows and canonical matches.
package matching

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/metrics"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/utils/pagination"
)

// LikeStore persists likes. InsertLike must enforce uniqueness of the like tuple atomically.
type LikeStore interface {
	InsertLike(ctx context.Context, like *db.Like) (repository.InsertOutcome, error)
	HasLikedUser(ctx context.Context, fromID, toID string) (bool, error)
	GetIncoming(ctx context.Context, recipientID string, token *string, limit int) ([]db.Like, *string, error)
	GetOutgoing(ctx context.Context, actorID string, token *string, limit int) ([]db.Like, *string, error)
	CountIncoming(ctx context.Context, recipientID string) (int64, error)
}

// MatchStore persists matches. InsertMatch must enforce uniqueness of the normalized pair atomically.
type MatchStore interface {
	InsertMatch(ctx context.Context, match *db.Match) (repository.InsertOutcome, error)
	FindByPair(ctx context.Context, userLow, userHigh string) (*db.Match, error)
	ListForUser(ctx context.Context, userID string) ([]db.Match, error)
}

type PassStore interface {
	UpsertPass(ctx context.Context, actorID, targetID string) error
}

// CountCache is the cache-first store for incoming like counts.
type CountCache interface {
	GetLikeCount(ctx context.Context, userID string) (int64, bool, error)
	LikeCountVersion(ctx context.Context, userID string) (int64, error)
	UpdateLikeCount(ctx context.Context, userID string, count, version int64) error
	InvalidateLikeCount(ctx context.Context, userID string) error
}

type NameResolver interface {
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

// LikeRequest is what the actor liked. Message is optional.
type LikeRequest struct {
	ToUserID   string        `validate:"required,max=64"`
	TargetType db.TargetType `validate:"required,oneof=prompt profile"`
	TargetID   string        `validate:"required,max=64"`
	Message    *string
}

// LikeOutcome reports whether the like completed a mutual match.
type LikeOutcome struct {
	Like    *db.Like
	Matched bool
	MatchID string
}

// Resolver records likes and passes and resolves mutual likes into a single match per pair.
type Resolver struct {
	likes    LikeStore
	matches  MatchStore
	passes   PassStore
	counts   CountCache
	names    NameResolver
	validate *validator.Validate
	log      *slog.Logger

	messageMax int
	pageSize   int
}

func NewResolver(
	cfg *config.Config,
	likes LikeStore,
	matches MatchStore,
	passes PassStore,
	counts CountCache,
	names NameResolver,
	log *slog.Logger,
) *Resolver {
	messageMax := cfg.Likes.MessageMaxLen
	if messageMax <= 0 {
		messageMax = 200
	}
	pageSize := cfg.Likes.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Resolver{
		likes:      likes,
		matches:    matches,
		passes:     passes,
		counts:     counts,
		names:      names,
		validate:   validator.New(),
		log:        log,
		messageMax: messageMax,
		pageSize:   pageSize,
	}
}

// NormalizePair orders two user ids so that low < high.
func NormalizePair(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}

// SubmitLike persists actor's like and, when the target already liked actor, resolves the pair's match.
//
// Behavior:
//   - Rejects anonymous actors, self-likes, oversized messages and malformed requests before any write.
//   - A repeated (from, to, targetType, targetId) tuple fails with DuplicateLike and does nothing else.
//   - Reciprocity is any like from the target to actor, whatever content it pointed at.
//   - When the pair's match already exists (a concurrent reciprocal like won), the existing match id
//     is returned, so both sides observe the same matchId.
//
// Example:
//
//	res, err := r.SubmitLike(ctx, "a1", matching.LikeRequest{ToUserID: "b2", TargetType: db.TargetPrompt, TargetID: "p1"})
func (r *Resolver) SubmitLike(ctx context.Context, actor string, req LikeRequest) (*LikeOutcome, error) {
	log := logger.FromContext(ctx, r.log).With("actor", actor, "to", req.ToUserID)
	log.Debug("SubmitLike called", "target_type", req.TargetType, "target_id", req.TargetID)

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	if actor == req.ToUserID {
		metrics.LikesTotal.WithLabelValues("self_rejected").Inc()
		return nil, svcErr.SelfLikeRejected()
	}
	message, err := r.checkLike(req)
	if err != nil {
		metrics.LikesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	like := &db.Like{
		FromUserID: actor,
		ToUserID:   req.ToUserID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Message:    message,
	}
	outcome, err := r.likes.InsertLike(ctx, like)
	if err != nil {
		log.Error("InsertLike failed", "err", err)
		metrics.LikesTotal.WithLabelValues("error").Inc()
		return nil, svcErr.Persistence("insert like", err)
	}
	if outcome == repository.AlreadyExists {
		metrics.LikesTotal.WithLabelValues("duplicate").Inc()
		return nil, svcErr.DuplicateLike()
	}
	r.invalidateCount(ctx, log, req.ToUserID)

	reciprocal, err := r.likes.HasLikedUser(ctx, req.ToUserID, actor)
	if err != nil {
		log.Error("HasLikedUser failed", "err", err)
		metrics.LikesTotal.WithLabelValues("error").Inc()
		return nil, svcErr.Persistence("find reciprocal like", err)
	}
	if !reciprocal {
		metrics.LikesTotal.WithLabelValues("liked").Inc()
		return &LikeOutcome{Like: like}, nil
	}

	match, err := r.resolveMatch(ctx, log, actor, req.ToUserID)
	if err != nil {
		metrics.LikesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.LikesTotal.WithLabelValues("matched").Inc()
	log.Info("mutual like", "match_id", match.ID)
	return &LikeOutcome{Like: like, Matched: true, MatchID: match.ID}, nil
}

// resolveMatch inserts the canonical match for the pair or recovers the one a concurrent call created.
func (r *Resolver) resolveMatch(ctx context.Context, log *slog.Logger, a, b string) (*db.Match, error) {
	low, high := NormalizePair(a, b)
	match := &db.Match{UserLow: low, UserHigh: high}

	outcome, err := r.matches.InsertMatch(ctx, match)
	if err != nil {
		log.Error("InsertMatch failed", "err", err)
		return nil, svcErr.Persistence("insert match", err)
	}
	if outcome == repository.Inserted {
		metrics.MatchesCreatedTotal.Inc()
		return match, nil
	}

	existing, err := r.matches.FindByPair(ctx, low, high)
	if err != nil {
		log.Error("FindByPair failed after conflict", "err", err)
		return nil, svcErr.Persistence("find match", err)
	}
	metrics.MatchConflictsRecoveredTotal.Inc()
	log.Debug("match already existed", "match_id", existing.ID)
	return existing, nil
}

func (r *Resolver) checkLike(req LikeRequest) (*string, error) {
	var message *string
	if req.Message != nil {
		trimmed := strings.TrimSpace(*req.Message)
		if utf8.RuneCountInString(trimmed) > r.messageMax {
			return nil, svcErr.MessageTooLong(r.messageMax)
		}
		if trimmed != "" {
			message = &trimmed
		}
	}

	if err := r.validate.Struct(req); err != nil {
		return nil, svcErr.FromValidation(err)
	}
	return message, nil
}

// Pass records that actor is not interested in target. It never creates a like and never matches.
func (r *Resolver) Pass(ctx context.Context, actor, target string) error {
	log := logger.FromContext(ctx, r.log).With("actor", actor, "target", target)
	log.Debug("Pass called")

	if actor == "" {
		return svcErr.Unauthenticated()
	}
	if target == "" {
		return svcErr.Invalid("target user is required")
	}
	if actor == target {
		return svcErr.Invalid("cannot pass yourself")
	}

	if err := r.passes.UpsertPass(ctx, actor, target); err != nil {
		log.Error("UpsertPass failed", "err", err)
		return svcErr.Persistence("upsert pass", err)
	}
	metrics.PassesTotal.Inc()

	// the actor's incoming count excludes passed likers
	r.invalidateCount(ctx, log, actor)
	return nil
}

func (r *Resolver) invalidateCount(ctx context.Context, log *slog.Logger, userID string) {
	if r.counts == nil {
		return
	}
	if err := r.counts.InvalidateLikeCount(ctx, userID); err != nil {
		log.Warn("like count invalidation failed", "user", userID, "err", err)
	}
}

// storeErr classifies a store failure: bad pagination tokens are the caller's fault.
func storeErr(op string, err error) error {
	if errors.Is(err, pagination.ErrInvalidToken) {
		return svcErr.Invalid("invalid pagination token")
	}
	return svcErr.Persistence(op, err)
}
