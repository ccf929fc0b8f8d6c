package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertOutcome is the tagged result of a uniqueness-guarded insert.
// A conflicting row is an expected outcome, not an error.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota + 1
	AlreadyExists
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "already_exists"
	}
	return "unknown"
}

// insertUnique inserts row unless a row with the same unique key exists.
//
// Behavior:
//   - Uses ON CONFLICT DO NOTHING (ON DUPLICATE KEY UPDATE pk=pk on MySQL), so the
//     database enforces uniqueness atomically and never overwrites.
//   - RowsAffected == 0 means the key was taken → AlreadyExists.
//   - A translated duplicate-key error is folded into AlreadyExists as well.
func insertUnique(tx *gorm.DB, row any, uniqueKey ...string) (InsertOutcome, error) {
	cols := make([]clause.Column, 0, len(uniqueKey))
	for _, k := range uniqueKey {
		cols = append(cols, clause.Column{Name: k})
	}

	res := tx.Clauses(clause.OnConflict{Columns: cols, DoNothing: true}).Create(row)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return AlreadyExists, nil
		}
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return AlreadyExists, nil
	}
	return Inserted, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
