package repository

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/utils/pagination"
)

const previewMaxRunes = 120

// ConversationSummary is a conversation row plus the unread count for one reader.
type ConversationSummary struct {
	db.Conversation
	Unread int64
}

// ConversationRepository provides data access for conversations and their messages.
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(database *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: database}
}

// Find returns the conversation with the given id.
func (r *ConversationRepository) Find(ctx context.Context, id string) (*db.Conversation, error) {
	var c db.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return &c, nil
}

// EnsureForMatch creates the conversation of a match if it is missing.
func (r *ConversationRepository) EnsureForMatch(ctx context.Context, match *db.Match) (*db.Conversation, error) {
	conv := conversationFor(match)
	if _, err := insertUnique(r.db.WithContext(ctx), conv, "id"); err != nil {
		return nil, fmt.Errorf("ensure conversation: %w", err)
	}
	return r.Find(ctx, match.ID)
}

// ListForUser returns every conversation userID takes part in with userID's unread count.
//
// Behavior:
//   - Ordered by last_activity_at DESC, id DESC.
//   - Unread = messages addressed to userID with is_read = false.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]ConversationSummary, error) {
	var convs []db.Conversation
	err := r.db.WithContext(ctx).
		Where("user_low = ? OR user_high = ?", userID, userID).
		Order("last_activity_at DESC, id DESC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	var counts []struct {
		ConversationID string
		N              int64
	}
	err = r.db.WithContext(ctx).
		Model(&db.Message{}).
		Select("conversation_id, COUNT(*) AS n").
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Group("conversation_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}

	unread := make(map[string]int64, len(counts))
	for _, c := range counts {
		unread[c.ConversationID] = c.N
	}

	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		out = append(out, ConversationSummary{Conversation: c, Unread: unread[c.ID]})
	}
	return out, nil
}

// InsertMessage persists msg and bumps the conversation's activity and preview in one transaction.
//
// The conversation row is written first, so concurrent inserts into one conversation queue on its
// row lock until commit. announce, when set, runs inside the transaction after the insert: callers
// observe messages of a conversation in insertion order.
func (r *ConversationRepository) InsertMessage(ctx context.Context, msg *db.Message, announce func(*db.Message)) error {
	if msg.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("message id: %w", err)
		}
		msg.ID = id.String()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&db.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_sender_id", msg.SenderID).Error
		if err != nil {
			return fmt.Errorf("lock conversation: %w", err)
		}

		// stamped under the lock so created_at follows insertion order
		now := tx.NowFunc()
		msg.CreatedAt, msg.UpdatedAt = now, now
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		err = tx.Model(&db.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Updates(map[string]any{
				"last_activity_at":     msg.CreatedAt,
				"last_message_preview": truncateRunes(msg.Content, previewMaxRunes),
			}).Error
		if err != nil {
			return fmt.Errorf("touch conversation: %w", err)
		}

		if announce != nil {
			announce(msg)
		}
		return nil
	})
}

// ListMessages returns messages of a conversation in ascending (created_at, id) order.
// The pagination token continues after the last returned message.
func (r *ConversationRepository) ListMessages(
	ctx context.Context,
	conversationID string,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID)
	if !cursor.IsZero() {
		ts := cursor.Time()
		query = query.Where(
			"(created_at > ? OR (created_at = ? AND id > ?))",
			ts, ts, cursor.ID,
		)
	}

	var msgs []db.Message
	if err := query.Order("created_at ASC, id ASC").Limit(limit + 1).Find(&msgs).Error; err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}

	msgs, next := pagination.Page(msgs, limit, func(m db.Message) pagination.Cursor {
		return pagination.After(m.ID, m.CreatedAt)
	})
	return msgs, next, nil
}

// MarkRead flips is_read on every unread message addressed to recipientID. Returns rows changed.
func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&db.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND is_read = ?", conversationID, recipientID, false).
		Updates(map[string]any{"is_read": true, "updated_at": db.Now()})
	if res.Error != nil {
		return 0, fmt.Errorf("mark read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
