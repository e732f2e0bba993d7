package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/recipebox/app/models"
)

func TestNewUserNormalizesEmail(t *testing.T) {
	u, err := models.NewUser("  Test@LONDONAPPDEV.com ", "Test", "testpass")
	require.NoError(t, err)

	assert.Equal(t, "test@londonappdev.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.NotEqual(t, "testpass", u.Password)
	assert.True(t, u.CheckPassword("testpass"))
}

func TestNewUserRequiresEmailAndName(t *testing.T) {
	_, err := models.NewUser("", "Test", "testpass")
	assert.ErrorIs(t, err, models.ErrEmailRequired)

	_, err = models.NewUser("a@b.com", " ", "testpass")
	assert.ErrorIs(t, err, models.ErrNameRequired)
}

func TestNewSuperuser(t *testing.T) {
	u, err := models.NewSuperuser("admin@example.com", "Admin", "test123")
	require.NoError(t, err)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsSuperuser)
}

func TestSetPasswordRehashes(t *testing.T) {
	u, err := models.NewUser("a@b.com", "A", "first")
	require.NoError(t, err)
	old := u.Password

	require.NoError(t, u.SetPassword("second"))
	assert.NotEqual(t, old, u.Password)
	assert.True(t, u.CheckPassword("second"))
	assert.False(t, u.CheckPassword("first"))
}

func TestLabelConstructors(t *testing.T) {
	tag := models.NewTag(7, "Vegan")
	assert.Equal(t, uint(7), tag.OwnerID)
	assert.Equal(t, "Vegan", tag.Base().Name)
	assert.Equal(t, "tags", tag.TableName())

	table, col := models.Ingredient{}.JoinTable()
	assert.Equal(t, "recipe_ingredients", table)
	assert.Equal(t, "ingredient_id", col)
}

func TestRecipeIDLists(t *testing.T) {
	r := models.Recipe{
		Tags:        []models.Tag{models.NewTag(1, "a"), models.NewTag(1, "b")},
		Ingredients: []models.Ingredient{},
	}
	r.Tags[0].ID, r.Tags[1].ID = 3, 9

	assert.Equal(t, []uint{3, 9}, r.TagIDs())
	assert.Equal(t, []uint{}, r.IngredientIDs())
}
