package profile

import (
	"context"

	"github.com/oggyb/pawmatch/internal/app"
	"github.com/oggyb/pawmatch/internal/auth"
	"github.com/oggyb/pawmatch/internal/db"
	domain "github.com/oggyb/pawmatch/internal/profile"
	pb "github.com/oggyb/pawmatch/internal/proto/pawmatch"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/service"
)

// Service implements the ProfileService gRPC API.
type Service struct {
	appCtx   *app.AppContext
	profiles *domain.Service

	pb.UnimplementedProfileServiceServer
}

// NewProfileService creates a new Profile service backed by the profile repository.
func NewProfileService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		profiles: domain.NewService(repository.NewProfileRepository(appCtx.DB), appCtx.Logger),
	}
}

// GetProfile returns any user's card. An empty user id means the caller.
func (s *Service) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.GetProfileResponse, error) {
	userID := req.UserId
	if userID == "" {
		userID = auth.ActorFrom(ctx)
	}
	card, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return &pb.GetProfileResponse{Status: service.Fail(err)}, nil
	}
	return &pb.GetProfileResponse{Status: service.OK(), Profile: service.Card(card)}, nil
}

// UpsertProfile creates or edits the caller's profile.
func (s *Service) UpsertProfile(ctx context.Context, req *pb.UpsertProfileRequest) (*pb.UpsertProfileResponse, error) {
	actor := auth.ActorFrom(ctx)
	if _, err := s.profiles.UpsertProfile(ctx, actor, domain.ProfileInput{
		DisplayName: req.DisplayName,
		Age:         service.Int(req.Age),
		Height:      req.Height,
		Sexuality:   req.Sexuality,
		Bio:         req.Bio,
	}); err != nil {
		return &pb.UpsertProfileResponse{Status: service.Fail(err)}, nil
	}

	card, err := s.profiles.GetProfile(ctx, actor)
	if err != nil {
		return &pb.UpsertProfileResponse{Status: service.Fail(err)}, nil
	}
	return &pb.UpsertProfileResponse{Status: service.OK(), Profile: service.Card(card)}, nil
}

// ListPets returns a user's pets. An empty user id means the caller.
func (s *Service) ListPets(ctx context.Context, req *pb.ListPetsRequest) (*pb.ListPetsResponse, error) {
	userID := req.UserId
	if userID == "" {
		userID = auth.ActorFrom(ctx)
	}
	pets, err := s.profiles.ListPets(ctx, userID)
	if err != nil {
		return &pb.ListPetsResponse{Status: service.Fail(err)}, nil
	}

	resp := &pb.ListPetsResponse{Status: service.OK(), Pets: make([]*pb.Pet, 0, len(pets))}
	for i := range pets {
		resp.Pets = append(resp.Pets, service.Pet(&pets[i]))
	}
	return resp, nil
}

// SavePet creates a pet for the caller, or edits one the caller owns.
func (s *Service) SavePet(ctx context.Context, req *pb.SavePetRequest) (*pb.SavePetResponse, error) {
	pet, err := s.profiles.SavePet(ctx, auth.ActorFrom(ctx), domain.PetInput{
		ID:     req.Id,
		Name:   req.Name,
		Age:    service.Int(req.Age),
		Weight: req.Weight,
		Breed:  req.Breed,
		Bio:    req.Bio,
	})
	if err != nil {
		return &pb.SavePetResponse{Status: service.Fail(err)}, nil
	}
	return &pb.SavePetResponse{Status: service.OK(), Pet: service.Pet(pet)}, nil
}

func (s *Service) DeletePet(ctx context.Context, req *pb.DeletePetRequest) (*pb.DeletePetResponse, error) {
	if err := s.profiles.DeletePet(ctx, auth.ActorFrom(ctx), req.PetId); err != nil {
		return &pb.DeletePetResponse{Status: service.Fail(err)}, nil
	}
	return &pb.DeletePetResponse{Status: service.OK()}, nil
}

// ListPrompts returns the active prompts for humans or pets.
func (s *Service) ListPrompts(ctx context.Context, req *pb.ListPromptsRequest) (*pb.ListPromptsResponse, error) {
	prompts, err := s.profiles.ListPrompts(ctx, db.OwnerType(req.OwnerType))
	if err != nil {
		return &pb.ListPromptsResponse{Status: service.Fail(err)}, nil
	}

	resp := &pb.ListPromptsResponse{Status: service.OK(), Prompts: make([]*pb.Prompt, 0, len(prompts))}
	for _, p := range prompts {
		resp.Prompts = append(resp.Prompts, &pb.Prompt{Id: p.ID, OwnerType: string(p.OwnerType), Text: p.Text})
	}
	return resp, nil
}

// SavePromptAnswer answers a prompt for the caller or one of the caller's pets.
func (s *Service) SavePromptAnswer(ctx context.Context, req *pb.SavePromptAnswerRequest) (*pb.SavePromptAnswerResponse, error) {
	answer, err := s.profiles.SavePromptAnswer(ctx, auth.ActorFrom(ctx), domain.AnswerInput{
		OwnerType:  db.OwnerType(req.OwnerType),
		OwnerID:    req.OwnerId,
		PromptID:   req.PromptId,
		AnswerText: req.AnswerText,
	})
	if err != nil {
		return &pb.SavePromptAnswerResponse{Status: service.Fail(err)}, nil
	}
	return &pb.SavePromptAnswerResponse{Status: service.OK(), Answer: service.Answer(answer)}, nil
}
