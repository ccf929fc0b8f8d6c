package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/utils/pagination"
)

// ProfileRepository provides data access for profiles, pets, prompts and prompt answers.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// GetProfile returns a profile by user id.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*db.Profile, error) {
	var p db.Profile
	err := r.db.WithContext(ctx).Where("id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// GetProfileByEmail is used by the dev login.
func (r *ProfileRepository) GetProfileByEmail(ctx context.Context, email string) (*db.Profile, error) {
	var p db.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts a new profile row.
func (r *ProfileRepository) CreateProfile(ctx context.Context, p *db.Profile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// UpdateProfile overwrites the editable attributes of an existing profile.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, p *db.Profile) error {
	res := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"display_name": p.DisplayName,
			"age":          p.Age,
			"height":       p.Height,
			"sexuality":    p.Sexuality,
			"bio":          p.Bio,
		})
	if res.Error != nil {
		return fmt.Errorf("update profile: %w", res.Error)
	}
	// MySQL reports unchanged rows as unaffected
	if res.RowsAffected == 0 {
		return r.mustExist(ctx, &db.Profile{}, "id = ?", p.ID)
	}
	return nil
}

// DisplayNames resolves display names for a set of user ids. Unknown ids are absent from the map.
func (r *ProfileRepository) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}

	var rows []struct {
		ID          string
		DisplayName string
	}
	err := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Select("id, display_name").
		Where("id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("display names: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.DisplayName
	}
	return names, nil
}

// ListPets returns the pets of userID, oldest first.
func (r *ProfileRepository) ListPets(ctx context.Context, userID string) ([]db.Pet, error) {
	return r.listPets(ctx, []string{userID})
}

func (r *ProfileRepository) listPets(ctx context.Context, userIDs []string) ([]db.Pet, error) {
	var pets []db.Pet
	if len(userIDs) == 0 {
		return pets, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at ASC, id ASC").
		Find(&pets).Error
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

// GetPet returns a pet by id.
func (r *ProfileRepository) GetPet(ctx context.Context, petID string) (*db.Pet, error) {
	var p db.Pet
	err := r.db.WithContext(ctx).Where("id = ?", petID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pet: %w", err)
	}
	return &p, nil
}

// SavePet creates the pet when pet.ID is empty and updates it otherwise.
func (r *ProfileRepository) SavePet(ctx context.Context, pet *db.Pet) error {
	if pet.ID == "" {
		pet.ID = uuid.NewString()
		if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
			return fmt.Errorf("create pet: %w", err)
		}
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&db.Pet{}).
		Where("id = ? AND user_id = ?", pet.ID, pet.UserID).
		Updates(map[string]any{
			"name":   pet.Name,
			"age":    pet.Age,
			"weight": pet.Weight,
			"breed":  pet.Breed,
			"bio":    pet.Bio,
		})
	if res.Error != nil {
		return fmt.Errorf("update pet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.mustExist(ctx, &db.Pet{}, "id = ? AND user_id = ?", pet.ID, pet.UserID)
	}
	return nil
}

// DeletePet removes a pet owned by userID together with its prompt answers.
func (r *ProfileRepository) DeletePet(ctx context.Context, userID, petID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", petID, userID).Delete(&db.Pet{})
		if res.Error != nil {
			return fmt.Errorf("delete pet: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		err := tx.Where("owner_type = ? AND owner_id = ?", db.OwnerPet, petID).
			Delete(&db.PromptAnswer{}).Error
		if err != nil {
			return fmt.Errorf("delete pet answers: %w", err)
		}
		return nil
	})
}

// ListPrompts returns the active prompt catalog for an owner type.
func (r *ProfileRepository) ListPrompts(ctx context.Context, ownerType db.OwnerType) ([]db.Prompt, error) {
	var prompts []db.Prompt
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND is_active = ?", ownerType, true).
		Order("created_at ASC, id ASC").
		Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return prompts, nil
}

// GetPrompt returns a prompt by id.
func (r *ProfileRepository) GetPrompt(ctx context.Context, promptID string) (*db.Prompt, error) {
	var p db.Prompt
	err := r.db.WithContext(ctx).Where("id = ?", promptID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get prompt: %w", err)
	}
	return &p, nil
}

// SavePromptAnswer upserts the answer of an owner to a prompt.
// Re-answering the same prompt replaces the text and keeps the original id.
func (r *ProfileRepository) SavePromptAnswer(ctx context.Context, a *db.PromptAnswer) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_type"}, {Name: "owner_id"}, {Name: "prompt_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"answer_text", "updated_at"}),
		}).
		Create(a).Error
	if err != nil {
		return fmt.Errorf("save prompt answer: %w", err)
	}

	var stored db.PromptAnswer
	err = r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ? AND prompt_id = ?", a.OwnerType, a.OwnerID, a.PromptID).
		Take(&stored).Error
	if err != nil {
		return fmt.Errorf("reload prompt answer: %w", err)
	}
	*a = stored
	return nil
}

// AnswersFor returns prompt answers for the given owners.
func (r *ProfileRepository) AnswersFor(ctx context.Context, ownerType db.OwnerType, ownerIDs []string) ([]db.PromptAnswer, error) {
	var answers []db.PromptAnswer
	if len(ownerIDs) == 0 {
		return answers, nil
	}
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Order("created_at ASC, id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("list prompt answers: %w", err)
	}
	return answers, nil
}

// PetsFor returns pets grouped by owner.
func (r *ProfileRepository) PetsFor(ctx context.Context, userIDs []string) (map[string][]db.Pet, error) {
	pets, err := r.listPets(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]db.Pet, len(userIDs))
	for _, p := range pets {
		out[p.UserID] = append(out[p.UserID], p)
	}
	return out, nil
}

// FeedCandidates returns profiles actorID has not seen yet.
//
// Behavior:
//   - Excludes actorID, users actorID liked or passed, and users already matched with actorID.
//   - Ordered by created_at DESC, id DESC.
//   - Supports cursor-based pagination via paginationToken.
func (r *ProfileRepository) FeedCandidates(
	ctx context.Context,
	actorID string,
	paginationToken *string,
	limit int,
) ([]db.Profile, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Table("profiles u").
		Where("u.id <> ?", actorID).
		Where("NOT EXISTS (SELECT 1 FROM likes l WHERE l.from_user_id = ? AND l.to_user_id = u.id)", actorID).
		Where("NOT EXISTS (SELECT 1 FROM passes p WHERE p.actor_id = ? AND p.target_id = u.id)", actorID).
		Where(`NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE (m.user_low = ? AND m.user_high = u.id)
			   OR (m.user_high = ? AND m.user_low = u.id)
		)`, actorID, actorID)

	if !cursor.IsZero() {
		ts := cursor.Time()
		query = query.Where(
			"(u.created_at < ? OR (u.created_at = ? AND u.id < ?))",
			ts, ts, cursor.ID,
		)
	}

	var profiles []db.Profile
	if err := query.Order("u.created_at DESC, u.id DESC").Limit(limit + 1).Find(&profiles).Error; err != nil {
		return nil, nil, fmt.Errorf("feed candidates: %w", err)
	}

	profiles, next := pagination.Page(profiles, limit, func(p db.Profile) pagination.Cursor {
		return pagination.After(p.ID, p.CreatedAt)
	})
	return profiles, next, nil
}

func (r *ProfileRepository) mustExist(ctx context.Context, model any, query string, args ...any) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return fmt.Errorf("check existence: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
