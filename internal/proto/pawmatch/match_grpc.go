package pawmatch

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	MatchService_SubmitLike_FullMethodName         = "/pawmatch.v1.MatchService/SubmitLike"
	MatchService_Pass_FullMethodName               = "/pawmatch.v1.MatchService/Pass"
	MatchService_ListIncomingLikes_FullMethodName  = "/pawmatch.v1.MatchService/ListIncomingLikes"
	MatchService_ListOutgoingLikes_FullMethodName  = "/pawmatch.v1.MatchService/ListOutgoingLikes"
	MatchService_CountIncomingLikes_FullMethodName = "/pawmatch.v1.MatchService/CountIncomingLikes"
	MatchService_ListMatches_FullMethodName        = "/pawmatch.v1.MatchService/ListMatches"
)

type MatchServiceClient interface {
	SubmitLike(ctx context.Context, in *SubmitLikeRequest, opts ...grpc.CallOption) (*SubmitLikeResponse, error)
	Pass(ctx context.Context, in *PassRequest, opts ...grpc.CallOption) (*PassResponse, error)
	ListIncomingLikes(ctx context.Context, in *ListLikesRequest, opts ...grpc.CallOption) (*ListLikesResponse, error)
	ListOutgoingLikes(ctx context.Context, in *ListLikesRequest, opts ...grpc.CallOption) (*ListLikesResponse, error)
	CountIncomingLikes(ctx context.Context, in *CountIncomingLikesRequest, opts ...grpc.CallOption) (*CountIncomingLikesResponse, error)
	ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error)
}

type matchServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchServiceClient(cc grpc.ClientConnInterface) MatchServiceClient {
	return &matchServiceClient{cc}
}

func (c *matchServiceClient) SubmitLike(ctx context.Context, in *SubmitLikeRequest, opts ...grpc.CallOption) (*SubmitLikeResponse, error) {
	return invoke[SubmitLikeResponse](ctx, c.cc, MatchService_SubmitLike_FullMethodName, in, opts)
}

func (c *matchServiceClient) Pass(ctx context.Context, in *PassRequest, opts ...grpc.CallOption) (*PassResponse, error) {
	return invoke[PassResponse](ctx, c.cc, MatchService_Pass_FullMethodName, in, opts)
}

func (c *matchServiceClient) ListIncomingLikes(ctx context.Context, in *ListLikesRequest, opts ...grpc.CallOption) (*ListLikesResponse, error) {
	return invoke[ListLikesResponse](ctx, c.cc, MatchService_ListIncomingLikes_FullMethodName, in, opts)
}

func (c *matchServiceClient) ListOutgoingLikes(ctx context.Context, in *ListLikesRequest, opts ...grpc.CallOption) (*ListLikesResponse, error) {
	return invoke[ListLikesResponse](ctx, c.cc, MatchService_ListOutgoingLikes_FullMethodName, in, opts)
}

func (c *matchServiceClient) CountIncomingLikes(ctx context.Context, in *CountIncomingLikesRequest, opts ...grpc.CallOption) (*CountIncomingLikesResponse, error) {
	return invoke[CountIncomingLikesResponse](ctx, c.cc, MatchService_CountIncomingLikes_FullMethodName, in, opts)
}

func (c *matchServiceClient) ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	return invoke[ListMatchesResponse](ctx, c.cc, MatchService_ListMatches_FullMethodName, in, opts)
}

// MatchServiceServer is the server API for MatchService.
type MatchServiceServer interface {
	SubmitLike(context.Context, *SubmitLikeRequest) (*SubmitLikeResponse, error)
	Pass(context.Context, *PassRequest) (*PassResponse, error)
	ListIncomingLikes(context.Context, *ListLikesRequest) (*ListLikesResponse, error)
	ListOutgoingLikes(context.Context, *ListLikesRequest) (*ListLikesResponse, error)
	CountIncomingLikes(context.Context, *CountIncomingLikesRequest) (*CountIncomingLikesResponse, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error)
}

// UnimplementedMatchServiceServer can be embedded to keep servers compiling as methods are added.
type UnimplementedMatchServiceServer struct{}

func (UnimplementedMatchServiceServer) SubmitLike(context.Context, *SubmitLikeRequest) (*SubmitLikeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitLike not implemented")
}
func (UnimplementedMatchServiceServer) Pass(context.Context, *PassRequest) (*PassResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Pass not implemented")
}
func (UnimplementedMatchServiceServer) ListIncomingLikes(context.Context, *ListLikesRequest) (*ListLikesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListIncomingLikes not implemented")
}
func (UnimplementedMatchServiceServer) ListOutgoingLikes(context.Context, *ListLikesRequest) (*ListLikesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOutgoingLikes not implemented")
}
func (UnimplementedMatchServiceServer) CountIncomingLikes(context.Context, *CountIncomingLikesRequest) (*CountIncomingLikesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CountIncomingLikes not implemented")
}
func (UnimplementedMatchServiceServer) ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMatches not implemented")
}

func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&MatchService_ServiceDesc, srv)
}

var MatchService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pawmatch.v1.MatchService",
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitLike",
			Handler:    unary(MatchService_SubmitLike_FullMethodName, MatchServiceServer.SubmitLike),
		},
		{
			MethodName: "Pass",
			Handler:    unary(MatchService_Pass_FullMethodName, MatchServiceServer.Pass),
		},
		{
			MethodName: "ListIncomingLikes",
			Handler:    unary(MatchService_ListIncomingLikes_FullMethodName, MatchServiceServer.ListIncomingLikes),
		},
		{
			MethodName: "ListOutgoingLikes",
			Handler:    unary(MatchService_ListOutgoingLikes_FullMethodName, MatchServiceServer.ListOutgoingLikes),
		},
		{
			MethodName: "CountIncomingLikes",
			Handler:    unary(MatchService_CountIncomingLikes_FullMethodName, MatchServiceServer.CountIncomingLikes),
		},
		{
			MethodName: "ListMatches",
			Handler:    unary(MatchService_ListMatches_FullMethodName, MatchServiceServer.ListMatches),
		},
	},
	Streams:  []grpc.StreamDesc{},
}
