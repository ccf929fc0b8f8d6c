package pawmatch

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const FeedService_NextCards_FullMethodName = "/pawmatch.v1.FeedService/NextCards"

type FeedServiceClient interface {
	NextCards(ctx context.Context, in *NextCardsRequest, opts ...grpc.CallOption) (*NextCardsResponse, error)
}

type feedServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFeedServiceClient(cc grpc.ClientConnInterface) FeedServiceClient {
	return &feedServiceClient{cc}
}

func (c *feedServiceClient) NextCards(ctx context.Context, in *NextCardsRequest, opts ...grpc.CallOption) (*NextCardsResponse, error) {
	return invoke[NextCardsResponse](ctx, c.cc, FeedService_NextCards_FullMethodName, in, opts)
}

// FeedServiceServer is the server API for FeedService.
type FeedServiceServer interface {
	NextCards(context.Context, *NextCardsRequest) (*NextCardsResponse, error)
}

// UnimplementedFeedServiceServer can be embedded to keep servers compiling as methods are added.
type UnimplementedFeedServiceServer struct{}

func (UnimplementedFeedServiceServer) NextCards(context.Context, *NextCardsRequest) (*NextCardsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method NextCards not implemented")
}

func RegisterFeedServiceServer(s grpc.ServiceRegistrar, srv FeedServiceServer) {
	s.RegisterService(&FeedService_ServiceDesc, srv)
}

var FeedService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pawmatch.v1.FeedService",
	HandlerType: (*FeedServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NextCards",
			Handler:    unary(FeedService_NextCards_FullMethodName, FeedServiceServer.NextCards),
		},
	},
	Streams:  []grpc.StreamDesc{},
}
