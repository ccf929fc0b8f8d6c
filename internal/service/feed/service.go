package feed

import (
	"context"

	"github.com/oggyb/pawmatch/internal/app"
	"github.com/oggyb/pawmatch/internal/auth"
	domain "github.com/oggyb/pawmatch/internal/feed"
	"github.com/oggyb/pawmatch/internal/profile"
	pb "github.com/oggyb/pawmatch/internal/proto/pawmatch"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/service"
)

// Service implements the FeedService gRPC API.
type Service struct {
	appCtx *app.AppContext
	feed   *domain.Service

	pb.UnimplementedFeedServiceServer
}

// NewFeedService creates a new Feed service. Candidates and their cards come from the profile repository.
func NewFeedService(appCtx *app.AppContext) *Service {
	profiles := repository.NewProfileRepository(appCtx.DB)
	cards := profile.NewService(profiles, appCtx.Logger)
	return &Service{
		appCtx: appCtx,
		feed:   domain.NewService(appCtx.Config, profiles, cards, appCtx.Logger),
	}
}

// NextCards returns the next profiles the caller has not decided on yet.
//
// Example:
//
//	svc.NextCards(ctx, &pb.NextCardsRequest{Limit: 5})
func (s *Service) NextCards(ctx context.Context, req *pb.NextCardsRequest) (*pb.NextCardsResponse, error) {
	page, err := s.feed.NextCards(ctx, auth.ActorFrom(ctx), req.PaginationToken, int(req.Limit))
	if err != nil {
		return &pb.NextCardsResponse{Status: service.Fail(err)}, nil
	}

	resp := &pb.NextCardsResponse{
		Status:              service.OK(),
		Cards:               make([]*pb.ProfileCard, 0, len(page.Cards)),
		NextPaginationToken: page.NextToken,
	}
	for i := range page.Cards {
		resp.Cards = append(resp.Cards, service.Card(&page.Cards[i]))
	}
	return resp, nil
}
