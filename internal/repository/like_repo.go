package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/utils/pagination"
)

// LikeRepository provides data access methods for the Like model.
// It encapsulates all queries related to likes between users.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// InsertLike persists a like exactly once per (from, to, target_type, target_id).
//
// Behavior:
//   - Assigns a UUID when like.ID is empty.
//   - Returns AlreadyExists (and leaves the stored row untouched) on a repeated tuple.
//
// Example:
//
//	repo.InsertLike(ctx, &db.Like{FromUserID: "a1", ToUserID: "b2", TargetType: db.TargetPrompt, TargetID: "p1"})
func (r *LikeRepository) InsertLike(ctx context.Context, like *db.Like) (InsertOutcome, error) {
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	outcome, err := insertUnique(r.db.WithContext(ctx), like,
		"from_user_id", "to_user_id", "target_type", "target_id")
	if err != nil {
		return 0, fmt.Errorf("insert like: %w", err)
	}
	return outcome, nil
}

// HasLikedUser reports whether fromID has liked any content of toID.
// Reciprocity is keyed on the user pair only, never on the liked target.
func (r *LikeRepository) HasLikedUser(ctx context.Context, fromID, toID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("find reciprocal like: %w", err)
	}
	return count > 0, nil
}

// GetIncoming returns likes received by recipientID.
//
// Behavior:
//   - Excludes likers the recipient explicitly passed.
//   - Ordered by created_at DESC, id DESC.
//   - Supports cursor-based pagination via paginationToken.
func (r *LikeRepository) GetIncoming(
	ctx context.Context,
	recipientID string,
	paginationToken *string,
	limit int,
) ([]db.Like, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Table("likes l").
		Where("l.to_user_id = ?", recipientID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM passes p
				WHERE p.actor_id = ?
				  AND p.target_id = l.from_user_id
			)`, recipientID)

	return r.page(query, cursor, limit)
}

// GetOutgoing returns likes sent by actorID, newest first.
func (r *LikeRepository) GetOutgoing(
	ctx context.Context,
	actorID string,
	paginationToken *string,
	limit int,
) ([]db.Like, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Table("likes l").
		Where("l.from_user_id = ?", actorID)

	return r.page(query, cursor, limit)
}

// CountIncoming returns how many likes recipientID has received from users it did not pass.
// Used in conjunction with Redis cache (DB is fallback).
func (r *LikeRepository) CountIncoming(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("likes l").
		Where("l.to_user_id = ?", recipientID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM passes p
				WHERE p.actor_id = ?
				  AND p.target_id = l.from_user_id
			)`, recipientID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count incoming likes: %w", err)
	}
	return count, nil
}

func (r *LikeRepository) page(query *gorm.DB, cursor pagination.Cursor, limit int) ([]db.Like, *string, error) {
	if !cursor.IsZero() {
		ts := cursor.Time()
		query = query.Where(
			"(l.created_at < ? OR (l.created_at = ? AND l.id < ?))",
			ts, ts, cursor.ID,
		)
	}

	var likes []db.Like
	if err := query.Order("l.created_at DESC, l.id DESC").Limit(limit + 1).Find(&likes).Error; err != nil {
		return nil, nil, fmt.Errorf("list likes: %w", err)
	}

	likes, next := pagination.Page(likes, limit, func(l db.Like) pagination.Cursor {
		return pagination.After(l.ID, l.CreatedAt)
	})
	return likes, next, nil
}
