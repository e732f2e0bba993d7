package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_tags_table", &CreateTagsTable{})
	migration.Register("20260301000002_create_ingredients_table", &CreateIngredientsTable{})
	migration.Register("20260301000003_create_recipes_table", &CreateRecipesTable{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

type CreateTagsTable struct{}

func (m *CreateTagsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Tag{})
}

func (m *CreateTagsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("tags")
}

type CreateIngredientsTable struct{}

func (m *CreateIngredientsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Ingredient{})
}

func (m *CreateIngredientsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("ingredients")
}

// CreateRecipesTable also creates the recipe_tags and recipe_ingredients link tables.
type CreateRecipesTable struct{}

func (m *CreateRecipesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Recipe{})
}

func (m *CreateRecipesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("recipe_tags", "recipe_ingredients", "recipes")
}
