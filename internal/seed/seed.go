// Package seed resets the database and fills it with demo profiles, pets, prompts and likes.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/pawmatch/internal/auth"
	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/matching"
)

// Password is shared by every seeded account.
const Password = "password"

// Options controls the size and randomness of the demo dataset.
type Options struct {
	Users int
	Seed  int64
}

// Summary counts what was written.
type Summary struct {
	Profiles int
	Pets     int
	Answers  int
	Likes    int
	Passes   int
	Matches  int
}

var (
	humanPrompts = []string{
		"My ideal Sunday",
		"The way to win me over is",
		"I geek out on",
	}
	petPrompts = []string{
		"My favourite toy",
		"I will steal your",
		"Best trick I know",
	}
	breeds = []string{"Beagle", "Tabby", "Corgi", "Maine Coon", "Labrador", "Siamese"}
)

// UserID is the id of the i-th seeded profile, starting at 1.
func UserID(i int) string { return fmt.Sprintf("user%02d", i) }

// Email is the login of the i-th seeded profile.
func Email(i int) string { return fmt.Sprintf("user%d@example.com", i) }

// Run resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears every table.
//  2. Creates opts.Users profiles (login user<N>@example.com / "password"), one pet each,
//     the prompt catalog, and an answer per profile and pet.
//  3. Each user likes or passes ~a third of the others. Every 3rd like is answered by a reciprocal
//     like, so matches and conversations come out of the Resolver like they would in production.
//
// Compatible with MySQL, Postgres and SQLite.
func Run(ctx context.Context, database *gorm.DB, resolver *matching.Resolver, log *slog.Logger, opts Options) (*Summary, error) {
	if opts.Users < 2 {
		opts.Users = 20
	}
	r := rand.New(rand.NewSource(opts.Seed))
	sum := &Summary{}

	// --- Fresh start ---
	if err := reset(ctx, database); err != nil {
		return nil, err
	}
	log.Info("cleared existing data")

	// --- Prompt catalog ---
	humanIDs, err := createPrompts(ctx, database, db.OwnerHuman, humanPrompts)
	if err != nil {
		return nil, err
	}
	petIDs, err := createPrompts(ctx, database, db.OwnerPet, petPrompts)
	if err != nil {
		return nil, err
	}

	// --- Profiles, pets, answers ---
	hash, err := auth.HashPassword(Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	answerOf := make(map[string]string, opts.Users)
	for i := 1; i <= opts.Users; i++ {
		id := UserID(i)
		email := Email(i)
		age := 21 + r.Intn(20)
		bio := fmt.Sprintf("Hi, I am user %d.", i)

		if err := database.WithContext(ctx).Create(&db.Profile{
			ID:           id,
			DisplayName:  fmt.Sprintf("User %d", i),
			Age:          &age,
			Bio:          &bio,
			Email:        &email,
			PasswordHash: hash,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to seed profile: %w", err)
		}
		sum.Profiles++

		petAge := 1 + r.Intn(12)
		breed := breeds[r.Intn(len(breeds))]
		pet := db.Pet{ID: uuid.NewString(), UserID: id, Name: fmt.Sprintf("Pet %d", i), Age: &petAge, Breed: &breed}
		if err := database.WithContext(ctx).Create(&pet).Error; err != nil {
			return nil, fmt.Errorf("failed to seed pet: %w", err)
		}
		sum.Pets++

		human := db.PromptAnswer{
			ID: uuid.NewString(), OwnerType: db.OwnerHuman, OwnerID: id,
			PromptID: humanIDs[r.Intn(len(humanIDs))], AnswerText: "Long walks with my pet",
		}
		animal := db.PromptAnswer{
			ID: uuid.NewString(), OwnerType: db.OwnerPet, OwnerID: pet.ID,
			PromptID: petIDs[r.Intn(len(petIDs))], AnswerText: "Your left sock",
		}
		if err := database.WithContext(ctx).Create([]*db.PromptAnswer{&human, &animal}).Error; err != nil {
			return nil, fmt.Errorf("failed to seed answers: %w", err)
		}
		sum.Answers += 2
		answerOf[id] = human.ID
	}
	log.Info("seeded profiles", "count", sum.Profiles)

	// --- Decisions ---
	counter := 0
	for a := 1; a <= opts.Users; a++ {
		actor := UserID(a)
		for j := 0; j < opts.Users/3; j++ {
			other := r.Intn(opts.Users) + 1
			if other == a {
				continue
			}
			target := UserID(other)

			// pass probability 25%
			if r.Intn(100) < 25 {
				if err := resolver.Pass(ctx, actor, target); err != nil {
					return nil, fmt.Errorf("failed to seed pass: %w", err)
				}
				sum.Passes++
				continue
			}

			// like the target's prompt answer half the time, the profile otherwise
			req := matching.LikeRequest{ToUserID: target, TargetType: db.TargetProfile, TargetID: target}
			if r.Intn(2) == 0 {
				req = matching.LikeRequest{ToUserID: target, TargetType: db.TargetPrompt, TargetID: answerOf[target]}
			}
			if err := like(ctx, resolver, actor, req, sum); err != nil {
				return nil, err
			}

			// guarantee mutual likes every 3rd pair
			if counter%3 == 0 {
				back := matching.LikeRequest{ToUserID: actor, TargetType: db.TargetProfile, TargetID: actor}
				if err := like(ctx, resolver, target, back, sum); err != nil {
					return nil, err
				}
			}
			counter++
		}
	}

	var matches int64
	if err := database.WithContext(ctx).Model(&db.Match{}).Count(&matches).Error; err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	sum.Matches = int(matches)

	log.Info("seeded decisions", "likes", sum.Likes, "passes", sum.Passes, "matches", sum.Matches)
	return sum, nil
}

// like submits through the Resolver. Repeats of an earlier like are skipped.
func like(ctx context.Context, resolver *matching.Resolver, actor string, req matching.LikeRequest, sum *Summary) error {
	res, err := resolver.SubmitLike(ctx, actor, req)
	if svcErr.CodeOf(err) == svcErr.CodeDuplicateLike {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed like: %w", err)
	}
	sum.Likes++
	if res.Matched {
		log := logger.FromContext(ctx, nil)
		log.Debug("seeded match", "actor", actor, "to", req.ToUserID, "match", res.MatchID)
	}
	return nil
}

func reset(ctx context.Context, database *gorm.DB) error {
	models := db.All()
	tx := database.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for i := len(models) - 1; i >= 0; i-- {
		if err := tx.Delete(models[i]).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", models[i], err)
		}
	}
	return nil
}

func createPrompts(ctx context.Context, database *gorm.DB, owner db.OwnerType, texts []string) ([]string, error) {
	ids := make([]string, 0, len(texts))
	for _, text := range texts {
		p := db.Prompt{ID: uuid.NewString(), OwnerType: owner, Text: text, IsActive: true}
		if err := database.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, fmt.Errorf("failed to seed prompt: %w", err)
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
