package db

import (
	"time"
)

// TargetType is what a like points at on the recipient's profile.
type TargetType string

const (
	TargetPrompt  TargetType = "prompt"
	TargetProfile TargetType = "profile"
)

// OwnerType distinguishes the human profile from the pet profile.
type OwnerType string

const (
	OwnerHuman OwnerType = "human"
	OwnerPet   OwnerType = "pet"
)

// Profile is the human side of an account. ID is the opaque user id carried in tokens.
type Profile struct {
	ID           string `gorm:"primaryKey;size:64"`
	DisplayName  string `gorm:"size:128;not null"`
	Age          *int
	Height       *string `gorm:"size:32"`
	Sexuality    *string `gorm:"size:64"`
	Bio          *string `gorm:"size:1024"`
	Email        *string `gorm:"uniqueIndex;size:128"`
	PasswordHash string  `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Pet belongs to exactly one profile.
type Pet struct {
	ID        string  `gorm:"primaryKey;size:36"`
	UserID    string  `gorm:"size:64;not null;index"`
	Name      string  `gorm:"size:128;not null"`
	Age       *int
	Weight    *string `gorm:"size:32"`
	Breed     *string `gorm:"size:128"`
	Bio       *string `gorm:"size:1024"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Prompt is a catalog question that humans or pets can answer.
type Prompt struct {
	ID        string    `gorm:"primaryKey;size:36"`
	OwnerType OwnerType `gorm:"size:16;not null;index"`
	Text      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// PromptAnswer is the likeable content on a profile card.
//
// Unique (owner_type, owner_id, prompt_id): one answer per prompt per owner.
type PromptAnswer struct {
	ID         string    `gorm:"primaryKey;size:36"`
	OwnerType  OwnerType `gorm:"size:16;not null;uniqueIndex:ux_prompt_answers_owner_prompt,priority:1"`
	OwnerID    string    `gorm:"size:64;not null;uniqueIndex:ux_prompt_answers_owner_prompt,priority:2"`
	PromptID   string    `gorm:"size:36;not null;uniqueIndex:ux_prompt_answers_owner_prompt,priority:3"`
	AnswerText string    `gorm:"size:1024;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Like is a directed, immutable edge from one user to another's content.
//
// Indexes:
//   - ux_likes_tuple(from_user_id, to_user_id, target_type, target_id)
//     Rejects duplicate submissions of the same like at insert time.
//   - idx_likes_to_created(to_user_id, created_at DESC)
//     Serves the "who liked me" inbox.
type Like struct {
	ID         string     `gorm:"primaryKey;size:36"`
	FromUserID string     `gorm:"size:64;not null;uniqueIndex:ux_likes_tuple,priority:1"`
	ToUserID   string     `gorm:"size:64;not null;uniqueIndex:ux_likes_tuple,priority:2;index:idx_likes_to_created,priority:1"`
	TargetType TargetType `gorm:"size:16;not null;uniqueIndex:ux_likes_tuple,priority:3"`
	TargetID   string     `gorm:"size:64;not null;uniqueIndex:ux_likes_tuple,priority:4"`
	Message    *string    `gorm:"size:1024"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index:idx_likes_to_created,priority:2,sort:desc"`
}

// Pass records a "not interested" decision so the feed stops showing the target.
// Composite PK (actor_id, target_id) makes it an upsert.
type Pass struct {
	ActorID   string    `gorm:"primaryKey;size:64"`
	TargetID  string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Match is an undirected edge stored once per pair with UserLow < UserHigh.
type Match struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserLow   string    `gorm:"size:64;not null;uniqueIndex:ux_matches_pair,priority:1;check:chk_matches_order,user_low < user_high"`
	UserHigh  string    `gorm:"size:64;not null;uniqueIndex:ux_matches_pair,priority:2;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// HasUser reports whether userID is one of the two matched users.
func (m *Match) HasUser(userID string) bool {
	return m.UserLow == userID || m.UserHigh == userID
}

// Other returns the counterpart of userID.
func (m *Match) Other(userID string) (string, bool) {
	switch userID {
	case m.UserLow:
		return m.UserHigh, true
	case m.UserHigh:
		return m.UserLow, true
	}
	return "", false
}

// Conversation shares its id with the owning match.
type Conversation struct {
	ID                 string    `gorm:"primaryKey;size:36"`
	UserLow            string    `gorm:"size:64;not null;index"`
	UserHigh           string    `gorm:"size:64;not null;index"`
	MatchCreatedAt     time.Time `gorm:"not null"`
	LastActivityAt     time.Time `gorm:"not null;index"`
	LastMessagePreview *string   `gorm:"size:255"`
	LastSenderID       *string   `gorm:"size:64"`
}

// Message ids are UUIDv7 so (created_at, id) follows insertion order.
//
// Indexes:
//   - idx_messages_conv_created(conversation_id, created_at, id): history reads.
//   - idx_messages_recipient_unread(recipient_id, is_read, conversation_id): unread counts and markRead.
type Message struct {
	ID             string    `gorm:"primaryKey;size:36;index:idx_messages_conv_created,priority:3"`
	ConversationID string    `gorm:"size:36;not null;index:idx_messages_conv_created,priority:1;index:idx_messages_recipient_unread,priority:3"`
	SenderID       string    `gorm:"size:64;not null"`
	RecipientID    string    `gorm:"size:64;not null;index:idx_messages_recipient_unread,priority:1"`
	Content        string    `gorm:"type:text;not null"`
	IsRead         bool      `gorm:"not null;default:false;index:idx_messages_recipient_unread,priority:2"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_messages_conv_created,priority:2"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Profile{}, &Pet{}, &Prompt{}, &PromptAnswer{},
		&Like{}, &Pass{}, &Match{}, &Conversation{}, &Message{},
	}
}
