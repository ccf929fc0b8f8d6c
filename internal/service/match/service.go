package match

import (
	"context"

	"github.com/oggyb/pawmatch/internal/app"
	"github.com/oggyb/pawmatch/internal/auth"
	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/matching"
	pb "github.com/oggyb/pawmatch/internal/proto/pawmatch"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/service"
)

// Service implements the MatchService gRPC API on top of the matching Resolver.
// Each method reads the actor from the authenticated context; failures are reported
// in the response Status, never as transport errors.
type Service struct {
	appCtx   *app.AppContext
	resolver *matching.Resolver

	pb.UnimplementedMatchServiceServer
}

// NewMatchService creates a new Match service with dependencies from AppContext.
// Dependencies include:
//   - DB connection (via Like, Match, Pass and Profile repositories)
//   - RedisCache for incoming like counters
func NewMatchService(appCtx *app.AppContext) *Service {
	profiles := repository.NewProfileRepository(appCtx.DB)
	resolver := matching.NewResolver(
		appCtx.Config,
		repository.NewLikeRepository(appCtx.DB),
		repository.NewMatchRepository(appCtx.DB),
		repository.NewPassRepository(appCtx.DB),
		appCtx.RedisCache,
		profiles,
		appCtx.Logger,
	)
	return &Service{appCtx: appCtx, resolver: resolver}
}

// SubmitLike records a like and reports whether it completed a match.
//
// Example:
//
//	svc.SubmitLike(ctx, &pb.SubmitLikeRequest{ToUserId: "b2", TargetType: "prompt", TargetId: "p1"})
func (s *Service) SubmitLike(ctx context.Context, req *pb.SubmitLikeRequest) (*pb.SubmitLikeResponse, error) {
	res, err := s.resolver.SubmitLike(ctx, auth.ActorFrom(ctx), matching.LikeRequest{
		ToUserID:   req.ToUserId,
		TargetType: db.TargetType(req.TargetType),
		TargetID:   req.TargetId,
		Message:    req.Message,
	})
	if err != nil {
		return &pb.SubmitLikeResponse{Status: service.Fail(err)}, nil
	}
	return &pb.SubmitLikeResponse{
		Status:  service.OK(),
		LikeId:  res.Like.ID,
		Matched: res.Matched,
		MatchId: res.MatchID,
	}, nil
}

// Pass records a "not interested" decision.
func (s *Service) Pass(ctx context.Context, req *pb.PassRequest) (*pb.PassResponse, error) {
	if err := s.resolver.Pass(ctx, auth.ActorFrom(ctx), req.TargetUserId); err != nil {
		return &pb.PassResponse{Status: service.Fail(err)}, nil
	}
	return &pb.PassResponse{Status: service.OK()}, nil
}

// ListIncomingLikes returns users who liked the caller, excluding users the caller passed.
func (s *Service) ListIncomingLikes(ctx context.Context, req *pb.ListLikesRequest) (*pb.ListLikesResponse, error) {
	page, err := s.resolver.ListIncomingLikes(ctx, auth.ActorFrom(ctx), req.PaginationToken)
	if err != nil {
		return &pb.ListLikesResponse{Status: service.Fail(err)}, nil
	}
	return likesResponse(page), nil
}

// ListOutgoingLikes returns likes the caller sent.
func (s *Service) ListOutgoingLikes(ctx context.Context, req *pb.ListLikesRequest) (*pb.ListLikesResponse, error) {
	page, err := s.resolver.ListOutgoingLikes(ctx, auth.ActorFrom(ctx), req.PaginationToken)
	if err != nil {
		return &pb.ListLikesResponse{Status: service.Fail(err)}, nil
	}
	return likesResponse(page), nil
}

// CountIncomingLikes returns how many users liked the caller. Served from Redis when cached.
func (s *Service) CountIncomingLikes(ctx context.Context, _ *pb.CountIncomingLikesRequest) (*pb.CountIncomingLikesResponse, error) {
	n, err := s.resolver.CountIncomingLikes(ctx, auth.ActorFrom(ctx))
	if err != nil {
		return &pb.CountIncomingLikesResponse{Status: service.Fail(err)}, nil
	}
	return &pb.CountIncomingLikesResponse{Status: service.OK(), Count: uint64(n)}, nil
}

// ListMatches returns the caller's matches, newest first.
func (s *Service) ListMatches(ctx context.Context, _ *pb.ListMatchesRequest) (*pb.ListMatchesResponse, error) {
	matches, err := s.resolver.ListMatches(ctx, auth.ActorFrom(ctx))
	if err != nil {
		return &pb.ListMatchesResponse{Status: service.Fail(err)}, nil
	}

	resp := &pb.ListMatchesResponse{Status: service.OK(), Matches: make([]*pb.Match, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, &pb.Match{
			Id:            m.ID,
			OtherUserId:   m.OtherUserID,
			OtherName:     m.OtherName,
			UnixTimestamp: service.Unix(m.CreatedAt),
		})
	}
	return resp, nil
}

func likesResponse(page *matching.LikePage) *pb.ListLikesResponse {
	resp := &pb.ListLikesResponse{
		Status:              service.OK(),
		Likes:               make([]*pb.Like, 0, len(page.Likes)),
		NextPaginationToken: page.NextToken,
	}
	for _, l := range page.Likes {
		resp.Likes = append(resp.Likes, &pb.Like{
			Id:              l.ID,
			FromUserId:      l.FromUserID,
			ToUserId:        l.ToUserID,
			CounterpartName: l.CounterpartName,
			TargetType:      string(l.TargetType),
			TargetId:        l.TargetID,
			Message:         l.Message,
			UnixTimestamp:   service.Unix(l.CreatedAt),
		})
	}
	return resp
}
