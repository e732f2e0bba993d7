package seeders

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/models"
)

// Demo account credentials. Seeding is idempotent: an existing demo user
// is left untouched.
const (
	DemoEmail    = "demo@recipebox.local"
	DemoPassword = "demopass"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo creates a demo user with a small catalog: two tags, three
// ingredients and one recipe linking some of them.
func SeedDemo(ctx context.Context, db *gorm.DB) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", DemoEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user, err := models.NewUser(DemoEmail, "Demo Cook", DemoPassword)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		tags := []models.Tag{
			models.NewTag(user.ID, "Vegan"),
			models.NewTag(user.ID, "Dessert"),
		}
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}

		ingredients := []models.Ingredient{
			models.NewIngredient(user.ID, "Cocoa"),
			models.NewIngredient(user.ID, "Oat milk"),
			models.NewIngredient(user.ID, "Sugar"),
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}

		recipe := models.Recipe{
			OwnerID: user.ID,
			Title:   "Vegan hot chocolate",
			Price:   decimal.RequireFromString("4.50"),
		}
		if err := tx.Omit("Tags", "Ingredients").Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Append(&tags[0]); err != nil {
			return err
		}
		return tx.Model(&recipe).Association("Ingredients").Append(&ingredients[0], &ingredients[1])
	})
}
