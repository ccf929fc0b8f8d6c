// Package feed serves discovery cards: people the actor has not decided on yet.
package feed

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/profile"
	"github.com/oggyb/pawmatch/internal/utils/pagination"
)

type CandidateStore interface {
	FeedCandidates(ctx context.Context, actorID string, token *string, limit int) ([]db.Profile, *string, error)
}

type CardBuilder interface {
	Cards(ctx context.Context, profiles []db.Profile) ([]profile.Card, error)
}

type Page struct {
	Cards     []profile.Card
	NextToken *string
}

type Service struct {
	candidates CandidateStore
	cards      CardBuilder
	log        *slog.Logger
	pageSize   int
}

func NewService(cfg *config.Config, candidates CandidateStore, cards CardBuilder, log *slog.Logger) *Service {
	size := cfg.Feed.PageSize
	if size <= 0 {
		size = 10
	}
	return &Service{candidates: candidates, cards: cards, log: log, pageSize: size}
}

// NextCards returns the next page of profiles for actor.
//
// Behavior:
//   - Excludes actor, anyone actor liked or passed, and anyone already matched with actor.
//   - limit <= 0 or above the configured page size falls back to the page size.
//   - Newest profiles first, cursor-paginated.
func (s *Service) NextCards(ctx context.Context, actor string, token *string, limit int) (*Page, error) {
	log := logger.FromContext(ctx, s.log)
	log.Debug("NextCards called", "actor", actor, "limit", limit)

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	profiles, next, err := s.candidates.FeedCandidates(ctx, actor, token, limit)
	if errors.Is(err, pagination.ErrInvalidToken) {
		return nil, svcErr.Invalid("invalid pagination token")
	}
	if err != nil {
		log.Error("FeedCandidates failed", "err", err)
		return nil, svcErr.Persistence("feed candidates", err)
	}

	cards, err := s.cards.Cards(ctx, profiles)
	if err != nil {
		return nil, err
	}
	return &Page{Cards: cards, NextToken: next}, nil
}
