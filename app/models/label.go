package models

// Label is the shape shared by tags and ingredients: a named row owned by a user.
type Label struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID uint   `gorm:"not null;index" json:"-"`
	Name    string `gorm:"size:255;not null" json:"name"`
}

// Base returns the embedded label.
func (l Label) Base() Label { return l }

// Labeled is satisfied by Tag and Ingredient.
type Labeled interface {
	Tag | Ingredient
	Base() Label
	TableName() string
	JoinTable() (table, column string)
}

// Tag is a user-defined label attached to recipes.
type Tag struct {
	Label
}

func NewTag(ownerID uint, name string) Tag {
	return Tag{Label{OwnerID: ownerID, Name: name}}
}

func (Tag) TableName() string { return "tags" }

// JoinTable names the recipe link table and its column for tags.
func (Tag) JoinTable() (string, string) { return "recipe_tags", "tag_id" }

// Ingredient is a user-defined ingredient attached to recipes.
type Ingredient struct {
	Label
}

func NewIngredient(ownerID uint, name string) Ingredient {
	return Ingredient{Label{OwnerID: ownerID, Name: name}}
}

func (Ingredient) TableName() string { return "ingredients" }

func (Ingredient) JoinTable() (string, string) { return "recipe_ingredients", "ingredient_id" }
