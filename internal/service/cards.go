package service

import (
	"github.com/oggyb/pawmatch/internal/db"
	pb "github.com/oggyb/pawmatch/internal/proto/pawmatch"
	"github.com/oggyb/pawmatch/internal/profile"
)

// Card renders a profile card. Credentials never leave the server.
func Card(c *profile.Card) *pb.ProfileCard {
	out := &pb.ProfileCard{
		UserId:      c.ID,
		DisplayName: c.DisplayName,
		Age:         Int32(c.Age),
		Height:      c.Height,
		Sexuality:   c.Sexuality,
		Bio:         c.Bio,
		Answers:     Answers(c.Answers),
	}
	for i := range c.Pets {
		pet := Pet(&c.Pets[i].Pet)
		pet.Answers = Answers(c.Pets[i].Answers)
		out.Pets = append(out.Pets, pet)
	}
	return out
}

func Pet(p *db.Pet) *pb.Pet {
	return &pb.Pet{
		Id:     p.ID,
		UserId: p.UserID,
		Name:   p.Name,
		Age:    Int32(p.Age),
		Weight: p.Weight,
		Breed:  p.Breed,
		Bio:    p.Bio,
	}
}

func Answer(a *db.PromptAnswer) *pb.PromptAnswer {
	return &pb.PromptAnswer{
		Id:         a.ID,
		OwnerType:  string(a.OwnerType),
		OwnerId:    a.OwnerID,
		PromptId:   a.PromptID,
		AnswerText: a.AnswerText,
	}
}

func Answers(in []db.PromptAnswer) []*pb.PromptAnswer {
	if len(in) == 0 {
		return nil
	}
	out := make([]*pb.PromptAnswer, 0, len(in))
	for i := range in {
		out = append(out, Answer(&in[i]))
	}
	return out
}

// Int32 narrows an optional age for the wire.
func Int32(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

// Int widens an optional age from the wire.
func Int(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
