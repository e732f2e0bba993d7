package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/recipebox/app/filters"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/orm"
)

// recipeFilters is the list pipeline: ownership, then tag and ingredient
// membership, each narrowing the previous.
var recipeFilters = filters.Pipeline{
	filters.Owned("recipes"),
	filters.CrossRef("tags", "recipe_tags", "tag_id"),
	filters.CrossRef("ingredients", "recipe_ingredients", "ingredient_id"),
}

// RecipeRepository handles database operations for Recipe and its links.
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) withLabels(ctx context.Context) *orm.Query {
	return orm.New(ctx, r.db).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") })
}

// List returns the requester's recipes, newest first.
func (r *RecipeRepository) List(ctx context.Context, req filters.Request) ([]models.Recipe, error) {
	chain, err := recipeFilters.Apply(r.withLabels(ctx).Model(&models.Recipe{}).DB(), req)
	if err != nil {
		return nil, err
	}

	recipes := []models.Recipe{}
	if err := orm.From(chain).Order("recipes.id DESC").Get(&recipes); err != nil {
		return nil, fmt.Errorf("recipes: list: %w", err)
	}
	return recipes, nil
}

// Find returns one of ownerID's recipes with its tags and ingredients.
func (r *RecipeRepository) Find(ctx context.Context, ownerID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.withLabels(ctx).
		Scopes(filters.OwnedBy("recipes", ownerID)).
		Where("recipes.id = ?", id).
		First(&recipe)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create inserts recipe and links its Tags and Ingredients in one transaction.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return fmt.Errorf("recipes: create: %w", err)
		}
		if err := replaceLinks(tx, recipe, "Tags", recipe.Tags); err != nil {
			return err
		}
		return replaceLinks(tx, recipe, "Ingredients", recipe.Ingredients)
	})
}

// Links selects which association sets Update rewrites.
type Links struct {
	Tags        bool
	Ingredients bool
}

// Update writes recipe's title and price and, for each set selected in links,
// replaces the stored links with the ones on recipe. The image column is
// owned by SetImage and never written here.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe, links Links) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(recipe).
			Select("title", "price", "updated_at").
			Updates(recipe).Error
		if err != nil {
			return fmt.Errorf("recipes: update %d: %w", recipe.ID, err)
		}
		if links.Tags {
			if err := replaceLinks(tx, recipe, "Tags", recipe.Tags); err != nil {
				return err
			}
		}
		if links.Ingredients {
			return replaceLinks(tx, recipe, "Ingredients", recipe.Ingredients)
		}
		return nil
	})
}

func replaceLinks[T any](tx *gorm.DB, recipe *models.Recipe, name string, items []T) error {
	assoc := tx.Model(recipe).Association(name)
	var err error
	if len(items) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(items)
	}
	if err != nil {
		return fmt.Errorf("recipes: link %s for %d: %w", name, recipe.ID, err)
	}
	return nil
}

// SetImage stores path as the recipe's image and returns the previous path.
func (r *RecipeRepository) SetImage(ctx context.Context, ownerID, id uint, path string) (string, error) {
	var previous string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		err := orm.From(tx).
			Scopes(filters.OwnedBy("recipes", ownerID)).
			Where("recipes.id = ?", id).
			First(&recipe)
		if err != nil {
			return err
		}
		previous = recipe.Image
		return tx.Model(&recipe).Update("image", path).Error
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}

// Delete removes one of ownerID's recipes with its links and returns the
// image path it referenced.
func (r *RecipeRepository) Delete(ctx context.Context, ownerID, id uint) (string, error) {
	var image string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		err := orm.From(tx).
			Scopes(filters.OwnedBy("recipes", ownerID)).
			Where("recipes.id = ?", id).
			First(&recipe)
		if err != nil {
			return err
		}
		image = recipe.Image

		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		return "", err
	}
	return image, nil
}
