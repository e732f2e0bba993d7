package orm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/orm"
	"github.com/shashiranjanraj/recipebox/pkg/testkit"
)

func TestFirstMapsNotFound(t *testing.T) {
	db := testkit.DB(t)

	var u models.User
	err := orm.New(context.Background(), db).Where("email = ?", "nobody@example.com").First(&u)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestChainScopesAndOrder(t *testing.T) {
	db := testkit.DB(t)
	u := testkit.User(t, db, "test@example.com")
	other := testkit.User(t, db, "other@example.com")
	testkit.Tag(t, db, u.ID, "A")
	testkit.Tag(t, db, u.ID, "B")
	testkit.Tag(t, db, other.ID, "C")

	mine := func(tx *gorm.DB) *gorm.DB { return tx.Where("owner_id = ?", u.ID) }

	var tags []models.Tag
	require.NoError(t, orm.New(context.Background(), db).Scopes(mine).Order("name DESC").Get(&tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "B", tags[0].Name)
	assert.Equal(t, "A", tags[1].Name)
}

func TestNotFoundPassesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	assert.Equal(t, boom, orm.NotFound(boom))
	assert.NoError(t, orm.NotFound(nil))
	assert.Equal(t, apperr.ErrNotFound, orm.NotFound(gorm.ErrRecordNotFound))
}
