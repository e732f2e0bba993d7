package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/recipebox/app/filters"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/repositories"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/logger"
	"github.com/shashiranjanraj/recipebox/pkg/storage"
	"github.com/shashiranjanraj/recipebox/pkg/validate"
)

var maxPrice = decimal.NewFromInt(1000)

// RecipeInput is the writable payload of a recipe. Nil fields were not sent.
type RecipeInput struct {
	Title       *string          `json:"title" validate:"nullable,max=255"`
	Price       *decimal.Decimal `json:"price"`
	Tags        *[]uint          `json:"tags"`
	Ingredients *[]uint          `json:"ingredients"`
}

type RecipeService struct {
	recipes     *repositories.RecipeRepository
	tags        *repositories.LabelRepository[models.Tag]
	ingredients *repositories.LabelRepository[models.Ingredient]
	files       storage.Disk
}

// NewRecipeService wires the recipe service. files may be nil, in which case
// images of deleted recipes are left in place.
func NewRecipeService(
	recipes *repositories.RecipeRepository,
	tags *repositories.LabelRepository[models.Tag],
	ingredients *repositories.LabelRepository[models.Ingredient],
	files storage.Disk,
) *RecipeService {
	return &RecipeService{recipes: recipes, tags: tags, ingredients: ingredients, files: files}
}

func (s *RecipeService) List(ctx context.Context, req filters.Request) ([]models.Recipe, error) {
	return s.recipes.List(ctx, req)
}

func (s *RecipeService) Get(ctx context.Context, ownerID, id uint) (*models.Recipe, error) {
	return s.recipes.Find(ctx, ownerID, id)
}

// Create stores a recipe owned by ownerID. Title and price are required.
func (s *RecipeService) Create(ctx context.Context, ownerID uint, in RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{OwnerID: ownerID}
	if _, err := s.apply(ctx, ownerID, recipe, in, false); err != nil {
		return nil, err
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return s.recipes.Find(ctx, ownerID, recipe.ID)
}

// Update changes one of ownerID's recipes. With partial false (PUT) title and
// price are required and omitted tags or ingredients are cleared; with
// partial true (PATCH) only supplied fields change.
func (s *RecipeService) Update(ctx context.Context, ownerID, id uint, in RecipeInput, partial bool) (*models.Recipe, error) {
	recipe, err := s.recipes.Find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	links, err := s.apply(ctx, ownerID, recipe, in, partial)
	if err != nil {
		return nil, err
	}
	if err := s.recipes.Update(ctx, recipe, links); err != nil {
		return nil, err
	}
	return s.recipes.Find(ctx, ownerID, id)
}

// apply validates in and copies it onto recipe, returning which link sets changed.
func (s *RecipeService) apply(ctx context.Context, ownerID uint, recipe *models.Recipe, in RecipeInput, partial bool) (repositories.Links, error) {
	errs := validate.Struct(in)

	if in.Title != nil || !partial {
		if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
			errs.Add("title", "The title field is required.")
		}
	}
	if in.Price != nil || !partial {
		if msg := checkPrice(in.Price); msg != "" {
			errs.Add("price", msg)
		}
	}

	links := repositories.Links{Tags: !partial || in.Tags != nil, Ingredients: !partial || in.Ingredients != nil}

	var tags []models.Tag
	if in.Tags != nil {
		found, err := resolve(ctx, s.tags, "tags", ownerID, *in.Tags)
		if err != nil {
			if e, ok := apperr.As(err); ok && e.Kind == apperr.KindValidation {
				errs.Merge(e.Fields)
			} else {
				return links, err
			}
		}
		tags = found
	}

	var ings []models.Ingredient
	if in.Ingredients != nil {
		found, err := resolve(ctx, s.ingredients, "ingredients", ownerID, *in.Ingredients)
		if err != nil {
			if e, ok := apperr.As(err); ok && e.Kind == apperr.KindValidation {
				errs.Merge(e.Fields)
			} else {
				return links, err
			}
		}
		ings = found
	}

	if validate.HasErrors(errs) {
		return links, apperr.Validation(errs)
	}

	if in.Title != nil {
		recipe.Title = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		recipe.Price = *in.Price
	}
	if links.Tags {
		recipe.Tags = tags
	}
	if links.Ingredients {
		recipe.Ingredients = ings
	}
	return links, nil
}

// Delete removes one of ownerID's recipes and, best effort, its image.
func (s *RecipeService) Delete(ctx context.Context, ownerID, id uint) error {
	image, err := s.recipes.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if image != "" && s.files != nil {
		if err := s.files.Delete(ctx, image); err != nil {
			logger.WithCtx(ctx).Warn("recipe image not removed", "recipe_id", id, "path", image, "error", err.Error())
		}
	}
	return nil
}

// checkPrice enforces decimal(5,2): at most two decimal places and three
// integer digits.
func checkPrice(p *decimal.Decimal) string {
	switch {
	case p == nil:
		return "The price field is required."
	case !p.Equal(p.Round(2)):
		return "Ensure that there are no more than 2 decimal places."
	case p.Abs().GreaterThanOrEqual(maxPrice):
		return "Ensure that there are no more than 3 digits before the decimal point."
	}
	return ""
}

func invalidPK(id uint) string {
	return fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(id))
}
