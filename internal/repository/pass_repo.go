package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/pawmatch/internal/db"
)

// PassRepository stores "not interested" decisions.
type PassRepository struct {
	db *gorm.DB
}

func NewPassRepository(database *gorm.DB) *PassRepository {
	return &PassRepository{db: database}
}

// UpsertPass records that actor passed on target.
//
// Behavior:
//   - If (actor_id, target_id) exists → only updated_at is refreshed.
//   - If it doesn’t exist → a new row is inserted.
//   - Never touches likes or matches.
func (r *PassRepository) UpsertPass(ctx context.Context, actorID, targetID string) error {
	pass := db.Pass{
		ActorID:  actorID,
		TargetID: targetID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(&pass).Error
	if err != nil {
		return fmt.Errorf("upsert pass: %w", err)
	}
	return nil
}

// HasPassed reports whether actor passed on target.
func (r *PassRepository) HasPassed(ctx context.Context, actorID, targetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Pass{}).
		Where("actor_id = ? AND target_id = ?", actorID, targetID).
		Count(&count).Error
	return count > 0, err
}
