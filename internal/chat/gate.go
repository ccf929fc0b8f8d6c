// Package chat lets the two users of a match talk, and nobody else.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/metrics"
	"github.com/oggyb/pawmatch/internal/realtime"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/utils/pagination"
)

type ConversationStore interface {
	Find(ctx context.Context, id string) (*db.Conversation, error)
	EnsureForMatch(ctx context.Context, match *db.Match) (*db.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]repository.ConversationSummary, error)
	InsertMessage(ctx context.Context, msg *db.Message, announce func(*db.Message)) error
	ListMessages(ctx context.Context, conversationID string, token *string, limit int) ([]db.Message, *string, error)
	MarkRead(ctx context.Context, conversationID, recipientID string) (int64, error)
}

type MatchFinder interface {
	FindByID(ctx context.Context, id string) (*db.Match, error)
}

type NameResolver interface {
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

// Broker delivers inserted messages to live subscribers.
type Broker interface {
	Publish(ctx context.Context, msg *db.Message) error
	Subscribe(ctx context.Context, conversationID string, onMessage func(db.Message)) (*realtime.Subscription, error)
}

// ConversationView is a conversation as listed for one participant.
type ConversationView struct {
	ID                 string
	CounterpartID      string
	CounterpartName    string
	MatchCreatedAt     time.Time
	LastActivityAt     time.Time
	LastMessagePreview *string
	LastSenderID       *string
	Unread             int64
}

type MessagePage struct {
	Messages  []db.Message
	NextToken *string
}

const unknownUser = "Unknown User"

// Gate mediates every read and write of a conversation. A conversation shares its id with its match.
type Gate struct {
	conversations ConversationStore
	matches       MatchFinder
	names         NameResolver
	broker        Broker
	log           *slog.Logger

	contentMax int
	pageSize   int
}

func NewGate(
	cfg *config.Config,
	conversations ConversationStore,
	matches MatchFinder,
	names NameResolver,
	broker Broker,
	log *slog.Logger,
) *Gate {
	contentMax := cfg.Chat.ContentMaxLen
	if contentMax <= 0 {
		contentMax = 2000
	}
	pageSize := cfg.Chat.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Gate{
		conversations: conversations,
		matches:       matches,
		names:         names,
		broker:        broker,
		log:           log,
		contentMax:    contentMax,
		pageSize:      pageSize,
	}
}

// authorize returns the match behind conversationID when actor is one of its two users.
// Unknown conversations are reported as Forbidden so ids cannot be guessed.
func (g *Gate) authorize(ctx context.Context, actor, conversationID string) (*db.Match, error) {
	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	if conversationID == "" {
		return nil, svcErr.Invalid("conversation id is required")
	}

	match, err := g.matches.FindByID(ctx, conversationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, svcErr.Forbidden("not a participant of this conversation")
	}
	if err != nil {
		return nil, svcErr.Persistence("find match", err)
	}
	if !match.HasUser(actor) {
		return nil, svcErr.Forbidden("not a participant of this conversation")
	}
	return match, nil
}

// ListConversations returns actor's conversations, most recently active first.
func (g *Gate) ListConversations(ctx context.Context, actor string) ([]ConversationView, error) {
	log := logger.FromContext(ctx, g.log)
	log.Debug("ListConversations called", "actor", actor)

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}

	summaries, err := g.conversations.ListForUser(ctx, actor)
	if err != nil {
		log.Error("ListForUser failed", "err", err)
		return nil, svcErr.Persistence("list conversations", err)
	}

	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, counterpart(&s.Conversation, actor))
	}
	names, err := g.names.DisplayNames(ctx, ids)
	if err != nil {
		log.Error("DisplayNames failed", "err", err)
		return nil, svcErr.Persistence("display names", err)
	}

	out := make([]ConversationView, 0, len(summaries))
	for _, s := range summaries {
		other := counterpart(&s.Conversation, actor)
		name := names[other]
		if name == "" {
			name = unknownUser
		}
		out = append(out, ConversationView{
			ID:                 s.ID,
			CounterpartID:      other,
			CounterpartName:    name,
			MatchCreatedAt:     s.MatchCreatedAt,
			LastActivityAt:     s.LastActivityAt,
			LastMessagePreview: s.LastMessagePreview,
			LastSenderID:       s.LastSenderID,
			Unread:             s.Unread,
		})
	}
	return out, nil
}

// ListMessages returns a page of history, oldest first.
func (g *Gate) ListMessages(ctx context.Context, actor, conversationID string, token *string) (*MessagePage, error) {
	log := logger.FromContext(ctx, g.log).With("actor", actor, "conversation", conversationID)
	log.Debug("ListMessages called")

	if _, err := g.authorize(ctx, actor, conversationID); err != nil {
		return nil, err
	}

	msgs, next, err := g.conversations.ListMessages(ctx, conversationID, token, g.pageSize)
	if errors.Is(err, pagination.ErrInvalidToken) {
		return nil, svcErr.Invalid("invalid pagination token")
	}
	if err != nil {
		log.Error("ListMessages failed", "err", err)
		return nil, svcErr.Persistence("list messages", err)
	}
	return &MessagePage{Messages: msgs, NextToken: next}, nil
}

// SendMessage stores a message from actor to the other participant and announces it to subscribers.
//
// Behavior:
//   - Non-participants get Forbidden and nothing is written.
//   - Content is trimmed; empty content is EmptyMessage.
//   - The conversation is recreated from the match if it went missing.
//   - Returns the stored message with its server-assigned id and timestamps.
//   - Publishing happens before the insert commits, in the conversation's insertion order.
//   - A failed realtime publish is logged; the message stays stored.
func (g *Gate) SendMessage(ctx context.Context, actor, conversationID, content string) (*db.Message, error) {
	log := logger.FromContext(ctx, g.log).With("actor", actor, "conversation", conversationID)
	log.Debug("SendMessage called")

	match, err := g.authorize(ctx, actor, conversationID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, svcErr.EmptyMessage()
	}
	if utf8.RuneCountInString(content) > g.contentMax {
		return nil, svcErr.Invalid("message content is too long")
	}

	if _, err := g.conversations.Find(ctx, conversationID); errors.Is(err, repository.ErrNotFound) {
		if _, err := g.conversations.EnsureForMatch(ctx, match); err != nil {
			log.Error("EnsureForMatch failed", "err", err)
			return nil, svcErr.Persistence("ensure conversation", err)
		}
	} else if err != nil {
		log.Error("Find conversation failed", "err", err)
		return nil, svcErr.Persistence("find conversation", err)
	}

	recipient, _ := match.Other(actor)
	msg := &db.Message{
		ConversationID: conversationID,
		SenderID:       actor,
		RecipientID:    recipient,
		Content:        content,
	}
	var announce func(*db.Message)
	if g.broker != nil {
		announce = func(m *db.Message) {
			if err := g.broker.Publish(ctx, m); err != nil {
				log.Warn("publish failed", "message", m.ID, "err", err)
			}
		}
	}
	if err := g.conversations.InsertMessage(ctx, msg, announce); err != nil {
		log.Error("InsertMessage failed", "err", err)
		return nil, svcErr.Persistence("insert message", err)
	}
	metrics.MessagesSentTotal.Inc()
	return msg, nil
}

// MarkRead marks every message addressed to actor in the conversation as read. Idempotent.
// Returns how many messages changed state.
func (g *Gate) MarkRead(ctx context.Context, actor, conversationID string) (int64, error) {
	log := logger.FromContext(ctx, g.log).With("actor", actor, "conversation", conversationID)
	log.Debug("MarkRead called")

	if _, err := g.authorize(ctx, actor, conversationID); err != nil {
		return 0, err
	}

	n, err := g.conversations.MarkRead(ctx, conversationID, actor)
	if err != nil {
		log.Error("MarkRead failed", "err", err)
		return 0, svcErr.Persistence("mark read", err)
	}
	metrics.MessagesReadTotal.Add(float64(n))
	return n, nil
}

// Subscribe delivers every message inserted into the conversation after it returns, in insertion order,
// until the subscription is cancelled or ctx ends. The caller must Cancel it.
func (g *Gate) Subscribe(
	ctx context.Context,
	actor, conversationID string,
	onMessage func(db.Message),
) (*realtime.Subscription, error) {
	log := logger.FromContext(ctx, g.log).With("actor", actor, "conversation", conversationID)
	log.Debug("Subscribe called")

	if _, err := g.authorize(ctx, actor, conversationID); err != nil {
		return nil, err
	}
	if g.broker == nil {
		return nil, svcErr.New(svcErr.CodePersistence, "realtime delivery unavailable")
	}

	sub, err := g.broker.Subscribe(ctx, conversationID, onMessage)
	if err != nil {
		log.Error("Subscribe failed", "err", err)
		return nil, svcErr.Persistence("subscribe", err)
	}

	metrics.ActiveSubscriptions.Inc()
	go func() {
		<-sub.Done()
		metrics.ActiveSubscriptions.Dec()
	}()
	return sub, nil
}

func counterpart(c *db.Conversation, actor string) string {
	if c.UserLow == actor {
		return c.UserHigh
	}
	return c.UserLow
}
