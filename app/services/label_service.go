package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/recipebox/app/filters"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/repositories"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/validate"
)

// LabelInput is the writable payload of a tag or ingredient.
type LabelInput struct {
	Name *string `json:"name" validate:"required,max=255"`
}

// LabelService implements the tag and ingredient endpoints, which differ
// only in table.
type LabelService[T models.Labeled] struct {
	repo     *repositories.LabelRepository[T]
	newLabel func(ownerID uint, name string) T
}

func NewLabelService[T models.Labeled](repo *repositories.LabelRepository[T], newLabel func(uint, string) T) *LabelService[T] {
	return &LabelService[T]{repo: repo, newLabel: newLabel}
}

func NewTagService(repo *repositories.LabelRepository[models.Tag]) *LabelService[models.Tag] {
	return NewLabelService(repo, models.NewTag)
}

func NewIngredientService(repo *repositories.LabelRepository[models.Ingredient]) *LabelService[models.Ingredient] {
	return NewLabelService(repo, models.NewIngredient)
}

func (s *LabelService[T]) List(ctx context.Context, req filters.Request) ([]T, error) {
	return s.repo.List(ctx, req)
}

func (s *LabelService[T]) Get(ctx context.Context, ownerID, id uint) (T, error) {
	return s.repo.Find(ctx, ownerID, id)
}

// Create stores a label owned by ownerID.
func (s *LabelService[T]) Create(ctx context.Context, ownerID uint, in LabelInput) (T, error) {
	var zero T
	if err := validate.Check(in); err != nil {
		return zero, err
	}

	item := s.newLabel(ownerID, strings.TrimSpace(*in.Name))
	if err := s.repo.Create(ctx, &item); err != nil {
		return zero, err
	}
	return item, nil
}

// Update renames a label. A partial update without a name is a no-op.
func (s *LabelService[T]) Update(ctx context.Context, ownerID, id uint, in LabelInput, partial bool) (T, error) {
	if partial && in.Name == nil {
		return s.repo.Find(ctx, ownerID, id)
	}

	var zero T
	if err := validate.Check(in); err != nil {
		return zero, err
	}
	if _, err := s.repo.Find(ctx, ownerID, id); err != nil {
		return zero, err
	}
	return s.repo.Rename(ctx, ownerID, id, strings.TrimSpace(*in.Name))
}

func (s *LabelService[T]) Delete(ctx context.Context, ownerID, id uint) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// resolve loads ownerID's labels for ids and fails when any ID is unknown or
// belongs to someone else.
func resolve[T models.Labeled](ctx context.Context, repo *repositories.LabelRepository[T], field string, ownerID uint, ids []uint) ([]T, error) {
	items, err := repo.FindOwned(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[uint]T, len(items))
	for _, it := range items {
		found[it.Base().ID] = it
	}

	out := make([]T, 0, len(found))
	seen := make(map[uint]bool, len(ids))
	errs := apperr.Fields{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		it, ok := found[id]
		if !ok {
			errs.Add(field, invalidPK(id))
			continue
		}
		out = append(out, it)
	}
	if validate.HasErrors(errs) {
		return nil, apperr.Validation(errs)
	}
	return out, nil
}
