package chat

import (
	"context"

	"github.com/oggyb/pawmatch/internal/app"
	"github.com/oggyb/pawmatch/internal/auth"
	domain "github.com/oggyb/pawmatch/internal/chat"
	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/logger"
	pb "github.com/oggyb/pawmatch/internal/proto/pawmatch"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/service"
)

// Service implements the ChatService gRPC API on top of the conversation Gate.
type Service struct {
	appCtx *app.AppContext
	gate   *domain.Gate

	pb.UnimplementedChatServiceServer
}

// NewChatService creates a new Chat service with dependencies from AppContext.
// Dependencies include:
//   - DB connection (via Conversation, Match and Profile repositories)
//   - Broker for live message delivery
func NewChatService(appCtx *app.AppContext) *Service {
	gate := domain.NewGate(
		appCtx.Config,
		repository.NewConversationRepository(appCtx.DB),
		repository.NewMatchRepository(appCtx.DB),
		repository.NewProfileRepository(appCtx.DB),
		appCtx.Broker,
		appCtx.Logger,
	)
	return &Service{appCtx: appCtx, gate: gate}
}

// ListConversations returns the caller's conversations, most recent activity first.
func (s *Service) ListConversations(ctx context.Context, _ *pb.ListConversationsRequest) (*pb.ListConversationsResponse, error) {
	views, err := s.gate.ListConversations(ctx, auth.ActorFrom(ctx))
	if err != nil {
		return &pb.ListConversationsResponse{Status: service.Fail(err)}, nil
	}

	resp := &pb.ListConversationsResponse{Status: service.OK(), Conversations: make([]*pb.Conversation, 0, len(views))}
	for _, v := range views {
		resp.Conversations = append(resp.Conversations, &pb.Conversation{
			Id:                 v.ID,
			CounterpartId:      v.CounterpartID,
			CounterpartName:    v.CounterpartName,
			MatchCreatedUnix:   service.Unix(v.MatchCreatedAt),
			LastActivityUnix:   service.Unix(v.LastActivityAt),
			LastMessagePreview: v.LastMessagePreview,
			LastSenderId:       v.LastSenderID,
			UnreadCount:        uint64(v.Unread),
		})
	}
	return resp, nil
}

// ListMessages returns one page of a conversation's history in chronological order.
func (s *Service) ListMessages(ctx context.Context, req *pb.ListMessagesRequest) (*pb.ListMessagesResponse, error) {
	page, err := s.gate.ListMessages(ctx, auth.ActorFrom(ctx), req.ConversationId, req.PaginationToken)
	if err != nil {
		return &pb.ListMessagesResponse{Status: service.Fail(err)}, nil
	}

	resp := &pb.ListMessagesResponse{
		Status:              service.OK(),
		Messages:            make([]*pb.Message, 0, len(page.Messages)),
		NextPaginationToken: page.NextToken,
	}
	for i := range page.Messages {
		resp.Messages = append(resp.Messages, toMessage(&page.Messages[i]))
	}
	return resp, nil
}

// SendMessage stores a message from the caller and announces it to live subscribers.
func (s *Service) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.SendMessageResponse, error) {
	msg, err := s.gate.SendMessage(ctx, auth.ActorFrom(ctx), req.ConversationId, req.Content)
	if err != nil {
		return &pb.SendMessageResponse{Status: service.Fail(err)}, nil
	}
	return &pb.SendMessageResponse{Status: service.OK(), Message: toMessage(msg)}, nil
}

// MarkRead flips every unread message addressed to the caller in the conversation.
func (s *Service) MarkRead(ctx context.Context, req *pb.MarkReadRequest) (*pb.MarkReadResponse, error) {
	n, err := s.gate.MarkRead(ctx, auth.ActorFrom(ctx), req.ConversationId)
	if err != nil {
		return &pb.MarkReadResponse{Status: service.Fail(err)}, nil
	}
	return &pb.MarkReadResponse{Status: service.OK(), Updated: uint64(n)}, nil
}

// Subscribe streams new messages of one conversation until the client goes away.
// The first event is always Ready: anything sent after the client sees it is delivered.
func (s *Service) Subscribe(req *pb.SubscribeRequest, stream pb.ChatService_SubscribeServer) error {
	ctx := stream.Context()
	log := logger.FromContext(ctx, s.appCtx.Logger).With("conversation", req.ConversationId)

	events := make(chan db.Message, 16)
	quit := make(chan struct{})
	sub, err := s.gate.Subscribe(ctx, auth.ActorFrom(ctx), req.ConversationId, func(m db.Message) {
		select {
		case events <- m:
		case <-ctx.Done():
		case <-quit:
		}
	})
	if err != nil {
		return svcErr.Map(err)
	}
	// quit unblocks a pending delivery so Cancel can return
	defer func() {
		close(quit)
		sub.Cancel()
	}()

	if err := stream.Send(&pb.SubscribeEvent{Ready: true}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug("subscriber left")
			return nil
		case <-sub.Done():
			if ctx.Err() != nil {
				return nil
			}
			return svcErr.Map(svcErr.New(svcErr.CodePersistence, "subscription closed"))
		case m := <-events:
			if err := stream.Send(&pb.SubscribeEvent{Message: toMessage(&m)}); err != nil {
				log.Warn("send to subscriber failed", "err", err)
				return err
			}
		}
	}
}

func toMessage(m *db.Message) *pb.Message {
	return &pb.Message{
		Id:             m.ID,
		ConversationId: m.ConversationID,
		SenderId:       m.SenderID,
		RecipientId:    m.RecipientID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedUnix:    service.Unix(m.CreatedAt),
		UpdatedUnix:    service.Unix(m.UpdatedAt),
	}
}
