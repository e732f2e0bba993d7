package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by address, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := orm.New(ctx, r.db).Where("email = ?", models.NormalizeEmail(email)).First(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := orm.New(ctx, r.db).Where("id = ?", id).First(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user record. An address already in use yields
// ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("users: create: %w", err)
	}
	return nil
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("users: update %d: %w", user.ID, err)
	}
	return nil
}

// Delete removes a user together with everything they own and returns the
// image paths their recipes referenced, for the caller to clean up.
func (r *UserRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	var images []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return orm.NotFound(gorm.ErrRecordNotFound)
		}

		if err := tx.Model(&models.Recipe{}).
			Where("owner_id = ? AND image <> ''", id).
			Pluck("image", &images).Error; err != nil {
			return err
		}

		recipes := tx.Model(&models.Recipe{}).Select("id").Where("owner_id = ?", id)
		tags := tx.Model(&models.Tag{}).Select("id").Where("owner_id = ?", id)
		ings := tx.Model(&models.Ingredient{}).Select("id").Where("owner_id = ?", id)

		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id IN (?) OR tag_id IN (?)", recipes, tags).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id IN (?) OR ingredient_id IN (?)", recipes, ings).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&models.Recipe{}, &models.Tag{}, &models.Ingredient{}} {
			if err := tx.Where("owner_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("users: delete %d: %w", id, err)
	}
	return images, nil
}
