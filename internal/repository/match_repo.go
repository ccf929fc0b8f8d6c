package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/pawmatch/internal/db"
)

// ErrNotFound is returned by single-row lookups that find nothing.
var ErrNotFound = errors.New("repository: not found")

// MatchRepository provides data access for matches and their conversations.
type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// InsertMatch creates the canonical match row for a normalized pair together with its conversation.
//
// Behavior:
//   - match.UserLow < match.UserHigh must already hold; the check constraint rejects anything else.
//   - Unique (user_low, user_high): a concurrent insert for the same pair yields AlreadyExists
//     and no conversation is written by this call.
//   - The conversation shares the match id and is created in the same transaction.
func (r *MatchRepository) InsertMatch(ctx context.Context, match *db.Match) (InsertOutcome, error) {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}

	var outcome InsertOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		outcome, err = insertUnique(tx, match, "user_low", "user_high")
		if err != nil || outcome == AlreadyExists {
			return err
		}
		_, err = insertUnique(tx, conversationFor(match), "id")
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("insert match: %w", err)
	}
	return outcome, nil
}

// FindByPair looks up the match for an already-normalized pair.
func (r *MatchRepository) FindByPair(ctx context.Context, userLow, userHigh string) (*db.Match, error) {
	var m db.Match
	err := r.db.WithContext(ctx).
		Where("user_low = ? AND user_high = ?", userLow, userHigh).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find match by pair: %w", err)
	}
	return &m, nil
}

// FindByID looks up a match by id.
func (r *MatchRepository) FindByID(ctx context.Context, id string) (*db.Match, error) {
	var m db.Match
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find match: %w", err)
	}
	return &m, nil
}

// ListForUser returns every match that includes userID, newest first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID string) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user_low = ? OR user_high = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// CountForPair returns how many match rows exist for a normalized pair. Always 0 or 1.
func (r *MatchRepository) CountForPair(ctx context.Context, userLow, userHigh string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_low = ? AND user_high = ?", userLow, userHigh).
		Count(&n).Error
	return n, err
}

func conversationFor(m *db.Match) *db.Conversation {
	created := m.CreatedAt
	if created.IsZero() {
		created = db.Now()
	}
	return &db.Conversation{
		ID:             m.ID,
		UserLow:        m.UserLow,
		UserHigh:       m.UserHigh,
		MatchCreatedAt: created,
		LastActivityAt: created,
	}
}
