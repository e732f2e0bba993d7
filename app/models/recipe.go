package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a user's recipe. Image holds a storage path, empty when unset.
type Recipe struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OwnerID     uint            `gorm:"not null;index" json:"-"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	Image       string          `gorm:"size:255" json:"image,omitempty"`
	Tags        []Tag           `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Recipe) TableName() string { return "recipes" }

// TagIDs returns the IDs of the loaded tags.
func (r *Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the IDs of the loaded ingredients.
func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}
