// Package testkit holds helpers shared by package tests: a migrated SQLite
// database per test and a small JSON client for driving HTTP handlers.
package testkit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/recipebox/database/migrations"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/database"
	"github.com/shashiranjanraj/recipebox/pkg/migration"
)

// DB opens a fresh SQLite file under t.TempDir() and runs every migration.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err)
	return db
}

// User inserts an active user with password "testpass".
func User(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	u, err := models.NewUser(email, "Test name", "testpass")
	require.NoError(t, err)
	require.NoError(t, db.Create(u).Error)
	return u
}

// Tag inserts a tag owned by ownerID.
func Tag(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Tag {
	t.Helper()

	tag := models.NewTag(ownerID, name)
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

// Ingredient inserts an ingredient owned by ownerID.
func Ingredient(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Ingredient {
	t.Helper()

	ing := models.NewIngredient(ownerID, name)
	require.NoError(t, db.Create(&ing).Error)
	return ing
}

// Recipe inserts a recipe owned by ownerID and links the given labels.
func Recipe(t *testing.T, db *gorm.DB, ownerID uint, title string, tags []models.Tag, ings []models.Ingredient) models.Recipe {
	t.Helper()

	r := models.Recipe{OwnerID: ownerID, Title: title, Tags: tags, Ingredients: ings}
	require.NoError(t, db.Create(&r).Error)
	return r
}
