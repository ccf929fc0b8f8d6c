package pawmatch

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ProfileService_GetProfile_FullMethodName       = "/pawmatch.v1.ProfileService/GetProfile"
	ProfileService_UpsertProfile_FullMethodName    = "/pawmatch.v1.ProfileService/UpsertProfile"
	ProfileService_ListPets_FullMethodName         = "/pawmatch.v1.ProfileService/ListPets"
	ProfileService_SavePet_FullMethodName          = "/pawmatch.v1.ProfileService/SavePet"
	ProfileService_DeletePet_FullMethodName        = "/pawmatch.v1.ProfileService/DeletePet"
	ProfileService_ListPrompts_FullMethodName      = "/pawmatch.v1.ProfileService/ListPrompts"
	ProfileService_SavePromptAnswer_FullMethodName = "/pawmatch.v1.ProfileService/SavePromptAnswer"
)

type ProfileServiceClient interface {
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*UpsertProfileResponse, error)
	ListPets(ctx context.Context, in *ListPetsRequest, opts ...grpc.CallOption) (*ListPetsResponse, error)
	SavePet(ctx context.Context, in *SavePetRequest, opts ...grpc.CallOption) (*SavePetResponse, error)
	DeletePet(ctx context.Context, in *DeletePetRequest, opts ...grpc.CallOption) (*DeletePetResponse, error)
	ListPrompts(ctx context.Context, in *ListPromptsRequest, opts ...grpc.CallOption) (*ListPromptsResponse, error)
	SavePromptAnswer(ctx context.Context, in *SavePromptAnswerRequest, opts ...grpc.CallOption) (*SavePromptAnswerResponse, error)
}

type profileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProfileServiceClient(cc grpc.ClientConnInterface) ProfileServiceClient {
	return &profileServiceClient{cc}
}

func (c *profileServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, ProfileService_GetProfile_FullMethodName, in, opts)
}

func (c *profileServiceClient) UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*UpsertProfileResponse, error) {
	return invoke[UpsertProfileResponse](ctx, c.cc, ProfileService_UpsertProfile_FullMethodName, in, opts)
}

func (c *profileServiceClient) ListPets(ctx context.Context, in *ListPetsRequest, opts ...grpc.CallOption) (*ListPetsResponse, error) {
	return invoke[ListPetsResponse](ctx, c.cc, ProfileService_ListPets_FullMethodName, in, opts)
}

func (c *profileServiceClient) SavePet(ctx context.Context, in *SavePetRequest, opts ...grpc.CallOption) (*SavePetResponse, error) {
	return invoke[SavePetResponse](ctx, c.cc, ProfileService_SavePet_FullMethodName, in, opts)
}

func (c *profileServiceClient) DeletePet(ctx context.Context, in *DeletePetRequest, opts ...grpc.CallOption) (*DeletePetResponse, error) {
	return invoke[DeletePetResponse](ctx, c.cc, ProfileService_DeletePet_FullMethodName, in, opts)
}

func (c *profileServiceClient) ListPrompts(ctx context.Context, in *ListPromptsRequest, opts ...grpc.CallOption) (*ListPromptsResponse, error) {
	return invoke[ListPromptsResponse](ctx, c.cc, ProfileService_ListPrompts_FullMethodName, in, opts)
}

func (c *profileServiceClient) SavePromptAnswer(ctx context.Context, in *SavePromptAnswerRequest, opts ...grpc.CallOption) (*SavePromptAnswerResponse, error) {
	return invoke[SavePromptAnswerResponse](ctx, c.cc, ProfileService_SavePromptAnswer_FullMethodName, in, opts)
}

// ProfileServiceServer is the server API for ProfileService.
type ProfileServiceServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpsertProfile(context.Context, *UpsertProfileRequest) (*UpsertProfileResponse, error)
	ListPets(context.Context, *ListPetsRequest) (*ListPetsResponse, error)
	SavePet(context.Context, *SavePetRequest) (*SavePetResponse, error)
	DeletePet(context.Context, *DeletePetRequest) (*DeletePetResponse, error)
	ListPrompts(context.Context, *ListPromptsRequest) (*ListPromptsResponse, error)
	SavePromptAnswer(context.Context, *SavePromptAnswerRequest) (*SavePromptAnswerResponse, error)
}

// UnimplementedProfileServiceServer can be embedded to keep servers compiling as methods are added.
type UnimplementedProfileServiceServer struct{}

func (UnimplementedProfileServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedProfileServiceServer) UpsertProfile(context.Context, *UpsertProfileRequest) (*UpsertProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpsertProfile not implemented")
}
func (UnimplementedProfileServiceServer) ListPets(context.Context, *ListPetsRequest) (*ListPetsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPets not implemented")
}
func (UnimplementedProfileServiceServer) SavePet(context.Context, *SavePetRequest) (*SavePetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SavePet not implemented")
}
func (UnimplementedProfileServiceServer) DeletePet(context.Context, *DeletePetRequest) (*DeletePetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeletePet not implemented")
}
func (UnimplementedProfileServiceServer) ListPrompts(context.Context, *ListPromptsRequest) (*ListPromptsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPrompts not implemented")
}
func (UnimplementedProfileServiceServer) SavePromptAnswer(context.Context, *SavePromptAnswerRequest) (*SavePromptAnswerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SavePromptAnswer not implemented")
}

func RegisterProfileServiceServer(s grpc.ServiceRegistrar, srv ProfileServiceServer) {
	s.RegisterService(&ProfileService_ServiceDesc, srv)
}

var ProfileService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pawmatch.v1.ProfileService",
	HandlerType: (*ProfileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProfile",
			Handler:    unary(ProfileService_GetProfile_FullMethodName, ProfileServiceServer.GetProfile),
		},
		{
			MethodName: "UpsertProfile",
			Handler:    unary(ProfileService_UpsertProfile_FullMethodName, ProfileServiceServer.UpsertProfile),
		},
		{
			MethodName: "ListPets",
			Handler:    unary(ProfileService_ListPets_FullMethodName, ProfileServiceServer.ListPets),
		},
		{
			MethodName: "SavePet",
			Handler:    unary(ProfileService_SavePet_FullMethodName, ProfileServiceServer.SavePet),
		},
		{
			MethodName: "DeletePet",
			Handler:    unary(ProfileService_DeletePet_FullMethodName, ProfileServiceServer.DeletePet),
		},
		{
			MethodName: "ListPrompts",
			Handler:    unary(ProfileService_ListPrompts_FullMethodName, ProfileServiceServer.ListPrompts),
		},
		{
			MethodName: "SavePromptAnswer",
			Handler:    unary(ProfileService_SavePromptAnswer_FullMethodName, ProfileServiceServer.SavePromptAnswer),
		},
	},
	Streams:  []grpc.StreamDesc{},
}
