// Package profile manages the human profile, its pets, and their prompt answers.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/repository"
)

// Store is the persistence the profile service needs.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*db.Profile, error)
	CreateProfile(ctx context.Context, p *db.Profile) error
	UpdateProfile(ctx context.Context, p *db.Profile) error
	ListPets(ctx context.Context, userID string) ([]db.Pet, error)
	GetPet(ctx context.Context, petID string) (*db.Pet, error)
	SavePet(ctx context.Context, pet *db.Pet) error
	DeletePet(ctx context.Context, userID, petID string) error
	ListPrompts(ctx context.Context, ownerType db.OwnerType) ([]db.Prompt, error)
	GetPrompt(ctx context.Context, promptID string) (*db.Prompt, error)
	SavePromptAnswer(ctx context.Context, a *db.PromptAnswer) error
	AnswersFor(ctx context.Context, ownerType db.OwnerType, ownerIDs []string) ([]db.PromptAnswer, error)
	PetsFor(ctx context.Context, userIDs []string) (map[string][]db.Pet, error)
}

type ProfileInput struct {
	DisplayName string  `validate:"required,max=128"`
	Age         *int    `validate:"omitempty,gte=18,lte=120"`
	Height      *string `validate:"omitempty,max=32"`
	Sexuality   *string `validate:"omitempty,max=64"`
	Bio         *string `validate:"omitempty,max=1024"`
}

// PetInput creates a pet when ID is empty and edits it otherwise.
type PetInput struct {
	ID     string
	Name   string  `validate:"required,max=128"`
	Age    *int    `validate:"omitempty,gte=0,lte=40"`
	Weight *string `validate:"omitempty,max=32"`
	Breed  *string `validate:"omitempty,max=128"`
	Bio    *string `validate:"omitempty,max=1024"`
}

type AnswerInput struct {
	OwnerType  db.OwnerType `validate:"required,oneof=human pet"`
	OwnerID    string       `validate:"required,max=64"`
	PromptID   string       `validate:"required,max=36"`
	AnswerText string       `validate:"required,max=1024"`
}

// PetCard is a pet with its prompt answers.
type PetCard struct {
	db.Pet
	Answers []db.PromptAnswer
}

// Card is everything shown for one user: the profile, its answers, and its pets.
type Card struct {
	db.Profile
	Answers []db.PromptAnswer
	Pets    []PetCard
}

type Service struct {
	store    Store
	validate *validator.Validate
	log      *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, validate: validator.New(), log: log}
}

// GetProfile returns userID's card.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Card, error) {
	log := logger.FromContext(ctx, s.log)
	log.Debug("GetProfile called", "user", userID)

	if userID == "" {
		return nil, svcErr.Invalid("user id is required")
	}
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, svcErr.NotFound("profile not found")
	}
	if err != nil {
		log.Error("GetProfile failed", "err", err)
		return nil, svcErr.Persistence("get profile", err)
	}

	cards, err := s.Cards(ctx, []db.Profile{*p})
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// UpsertProfile creates actor's profile on first call and edits it afterwards.
func (s *Service) UpsertProfile(ctx context.Context, actor string, in ProfileInput) (*db.Profile, error) {
	log := logger.FromContext(ctx, s.log).With("actor", actor)
	log.Debug("UpsertProfile called")

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := s.validate.Struct(in); err != nil {
		return nil, svcErr.FromValidation(err)
	}

	p := &db.Profile{
		ID:          actor,
		DisplayName: in.DisplayName,
		Age:         in.Age,
		Height:      in.Height,
		Sexuality:   in.Sexuality,
		Bio:         in.Bio,
	}
	err := s.store.UpdateProfile(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		err = s.store.CreateProfile(ctx, p)
	}
	if err != nil {
		log.Error("UpsertProfile failed", "err", err)
		return nil, svcErr.Persistence("upsert profile", err)
	}

	stored, err := s.store.GetProfile(ctx, actor)
	if err != nil {
		return nil, svcErr.Persistence("reload profile", err)
	}
	return stored, nil
}

// ListPets returns userID's pets.
func (s *Service) ListPets(ctx context.Context, userID string) ([]db.Pet, error) {
	if userID == "" {
		return nil, svcErr.Invalid("user id is required")
	}
	pets, err := s.store.ListPets(ctx, userID)
	if err != nil {
		logger.FromContext(ctx, s.log).Error("ListPets failed", "err", err)
		return nil, svcErr.Persistence("list pets", err)
	}
	return pets, nil
}

// SavePet creates or edits one of actor's pets. Editing someone else's pet is Forbidden.
func (s *Service) SavePet(ctx context.Context, actor string, in PetInput) (*db.Pet, error) {
	log := logger.FromContext(ctx, s.log).With("actor", actor, "pet", in.ID)
	log.Debug("SavePet called")

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return nil, svcErr.FromValidation(err)
	}
	if in.ID != "" {
		if err := s.ownPet(ctx, actor, in.ID); err != nil {
			return nil, err
		}
	}

	pet := &db.Pet{
		ID:     in.ID,
		UserID: actor,
		Name:   in.Name,
		Age:    in.Age,
		Weight: in.Weight,
		Breed:  in.Breed,
		Bio:    in.Bio,
	}
	if err := s.store.SavePet(ctx, pet); err != nil {
		log.Error("SavePet failed", "err", err)
		return nil, svcErr.Persistence("save pet", err)
	}

	stored, err := s.store.GetPet(ctx, pet.ID)
	if err != nil {
		return nil, svcErr.Persistence("reload pet", err)
	}
	return stored, nil
}

// DeletePet removes one of actor's pets and its answers.
func (s *Service) DeletePet(ctx context.Context, actor, petID string) error {
	log := logger.FromContext(ctx, s.log).With("actor", actor, "pet", petID)
	log.Debug("DeletePet called")

	if actor == "" {
		return svcErr.Unauthenticated()
	}
	if petID == "" {
		return svcErr.Invalid("pet id is required")
	}
	if err := s.ownPet(ctx, actor, petID); err != nil {
		return err
	}
	if err := s.store.DeletePet(ctx, actor, petID); err != nil {
		log.Error("DeletePet failed", "err", err)
		return svcErr.Persistence("delete pet", err)
	}
	return nil
}

// ListPrompts returns the active catalog for humans or pets.
func (s *Service) ListPrompts(ctx context.Context, ownerType db.OwnerType) ([]db.Prompt, error) {
	if ownerType != db.OwnerHuman && ownerType != db.OwnerPet {
		return nil, svcErr.Invalid("owner type must be one of [human pet]")
	}
	prompts, err := s.store.ListPrompts(ctx, ownerType)
	if err != nil {
		logger.FromContext(ctx, s.log).Error("ListPrompts failed", "err", err)
		return nil, svcErr.Persistence("list prompts", err)
	}
	return prompts, nil
}

// SavePromptAnswer answers a prompt for actor or one of actor's pets.
//
// Behavior:
//   - The owner must be actor (human) or a pet of actor; anything else is Forbidden.
//   - The prompt must exist, be active, and belong to the owner's catalog.
//   - Answering the same prompt again replaces the text.
func (s *Service) SavePromptAnswer(ctx context.Context, actor string, in AnswerInput) (*db.PromptAnswer, error) {
	log := logger.FromContext(ctx, s.log).With("actor", actor, "prompt", in.PromptID)
	log.Debug("SavePromptAnswer called")

	if actor == "" {
		return nil, svcErr.Unauthenticated()
	}
	in.AnswerText = strings.TrimSpace(in.AnswerText)
	if err := s.validate.Struct(in); err != nil {
		return nil, svcErr.FromValidation(err)
	}

	switch in.OwnerType {
	case db.OwnerHuman:
		if in.OwnerID != actor {
			return nil, svcErr.Forbidden("cannot answer for another user")
		}
	case db.OwnerPet:
		if err := s.ownPet(ctx, actor, in.OwnerID); err != nil {
			return nil, err
		}
	}

	prompt, err := s.store.GetPrompt(ctx, in.PromptID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, svcErr.NotFound("prompt not found")
	}
	if err != nil {
		return nil, svcErr.Persistence("get prompt", err)
	}
	if !prompt.IsActive || prompt.OwnerType != in.OwnerType {
		return nil, svcErr.Invalid("prompt does not apply to this owner")
	}

	answer := &db.PromptAnswer{
		OwnerType:  in.OwnerType,
		OwnerID:    in.OwnerID,
		PromptID:   in.PromptID,
		AnswerText: in.AnswerText,
	}
	if err := s.store.SavePromptAnswer(ctx, answer); err != nil {
		log.Error("SavePromptAnswer failed", "err", err)
		return nil, svcErr.Persistence("save prompt answer", err)
	}
	return answer, nil
}

// Cards assembles profiles with their answers and pets, keeping the input order.
func (s *Service) Cards(ctx context.Context, profiles []db.Profile) ([]Card, error) {
	userIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.ID)
	}

	pets, err := s.store.PetsFor(ctx, userIDs)
	if err != nil {
		return nil, svcErr.Persistence("load pets", err)
	}
	humanAnswers, err := s.store.AnswersFor(ctx, db.OwnerHuman, userIDs)
	if err != nil {
		return nil, svcErr.Persistence("load answers", err)
	}

	var petIDs []string
	for _, list := range pets {
		for _, p := range list {
			petIDs = append(petIDs, p.ID)
		}
	}
	petAnswers, err := s.store.AnswersFor(ctx, db.OwnerPet, petIDs)
	if err != nil {
		return nil, svcErr.Persistence("load pet answers", err)
	}

	byOwner := func(answers []db.PromptAnswer) map[string][]db.PromptAnswer {
		m := make(map[string][]db.PromptAnswer)
		for _, a := range answers {
			m[a.OwnerID] = append(m[a.OwnerID], a)
		}
		return m
	}
	humans, animals := byOwner(humanAnswers), byOwner(petAnswers)

	cards := make([]Card, 0, len(profiles))
	for _, p := range profiles {
		card := Card{Profile: p, Answers: humans[p.ID]}
		for _, pet := range pets[p.ID] {
			card.Pets = append(card.Pets, PetCard{Pet: pet, Answers: animals[pet.ID]})
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *Service) ownPet(ctx context.Context, actor, petID string) error {
	pet, err := s.store.GetPet(ctx, petID)
	if errors.Is(err, repository.ErrNotFound) {
		return svcErr.NotFound("pet not found")
	}
	if err != nil {
		return svcErr.Persistence("get pet", err)
	}
	if pet.UserID != actor {
		return svcErr.Forbidden("pet belongs to another user")
	}
	return nil
}
