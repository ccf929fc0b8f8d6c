package matching

import (
	"context"

	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/logger"
)

// LikeView is a like annotated with the display name of the other side.
type LikeView struct {
	db.Like
	CounterpartName string
}

type LikePage struct {
	Likes     []LikeView
	NextToken *string
}

// MatchView is a match seen from one participant.
type MatchView struct {
	db.Match
	OtherUserID string
	OtherName   string
}

const unknownUser = "Unknown User"

// ListIncomingLikes returns likes received by actor, newest first.
// Likers actor has passed are excluded.
func (r *Resolver) ListIncomingLikes(ctx context.Context, actor string, token *string) (*LikePage, error) {
	log := logger.FromContext(ctx, r.log)
	log.Debug("ListIncomingLikes called", "actor", actor)

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	likes, next, err := r.likes.GetIncoming(ctx, actor, token, r.pageSize)
	if err != nil {
		log.Error("GetIncoming failed", "err", err)
		return nil, storeErr("list incoming likes", err)
	}
	return r.likePage(ctx, likes, next, func(l db.Like) string { return l.FromUserID })
}

// ListOutgoingLikes returns likes sent by actor, newest first.
func (r *Resolver) ListOutgoingLikes(ctx context.Context, actor string, token *string) (*LikePage, error) {
	log := logger.FromContext(ctx, r.log)
	log.Debug("ListOutgoingLikes called", "actor", actor)

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	likes, next, err := r.likes.GetOutgoing(ctx, actor, token, r.pageSize)
	if err != nil {
		log.Error("GetOutgoing failed", "err", err)
		return nil, storeErr("list outgoing likes", err)
	}
	return r.likePage(ctx, likes, next, func(l db.Like) string { return l.ToUserID })
}

func (r *Resolver) likePage(ctx context.Context, likes []db.Like, next *string, other func(db.Like) string) (*LikePage, error) {
	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, other(l))
	}
	names, err := r.names.DisplayNames(ctx, ids)
	if err != nil {
		return nil, svcErr.Persistence("display names", err)
	}

	page := &LikePage{Likes: make([]LikeView, 0, len(likes)), NextToken: next}
	for _, l := range likes {
		page.Likes = append(page.Likes, LikeView{Like: l, CounterpartName: nameOr(names, other(l))})
	}
	return page, nil
}

// CountIncomingLikes returns how many non-passed users liked actor.
// Cache-first strategy:
//  1. Attempts to read from Redis (likes:count:<user>), refreshing the TTL on a hit.
//  2. On a miss or a cache failure, counts in the DB.
//  3. On DB fetch, stores the count in Redis unless a new like invalidated it meanwhile.
func (r *Resolver) CountIncomingLikes(ctx context.Context, actor string) (int64, error) {
	log := logger.FromContext(ctx, r.log)
	log.Debug("CountIncomingLikes called", "actor", actor)

	if actor == "" {
		return 0, svcErr.Unauthenticated()
	}

	cacheable := false
	var version int64
	if r.counts != nil {
		n, ok, err := r.counts.GetLikeCount(ctx, actor)
		if err != nil {
			log.Warn("like count cache read failed", "err", err)
		} else if ok {
			return n, nil
		}
		// read the version before counting
		if err == nil {
			version, err = r.counts.LikeCountVersion(ctx, actor)
			cacheable = err == nil
		}
	}

	n, err := r.likes.CountIncoming(ctx, actor)
	if err != nil {
		log.Error("CountIncoming failed", "err", err)
		return 0, svcErr.Persistence("count incoming likes", err)
	}

	if cacheable {
		if err := r.counts.UpdateLikeCount(ctx, actor, n, version); err != nil {
			log.Warn("like count cache write failed", "err", err)
		}
	}
	return n, nil
}

// ListMatches returns actor's matches, newest first.
func (r *Resolver) ListMatches(ctx context.Context, actor string) ([]MatchView, error) {
	log := logger.FromContext(ctx, r.log)
	log.Debug("ListMatches called", "actor", actor)

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	matches, err := r.matches.ListForUser(ctx, actor)
	if err != nil {
		log.Error("ListForUser failed", "err", err)
		return nil, svcErr.Persistence("list matches", err)
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		other, _ := m.Other(actor)
		ids = append(ids, other)
	}
	names, err := r.names.DisplayNames(ctx, ids)
	if err != nil {
		return nil, svcErr.Persistence("display names", err)
	}

	out := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		other, _ := m.Other(actor)
		out = append(out, MatchView{Match: m, OtherUserID: other, OtherName: nameOr(names, other)})
	}
	return out, nil
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return unknownUser
}
