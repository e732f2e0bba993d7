package filters_test

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/filters"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/testkit"
)

var (
	tagPipeline = filters.Pipeline{
		filters.Owned("tags"),
		filters.Assignment("tags", "recipe_tags", "tag_id"),
	}
	recipePipeline = filters.Pipeline{
		filters.Owned("recipes"),
		filters.CrossRef("tags", "recipe_tags", "tag_id"),
		filters.CrossRef("ingredients", "recipe_ingredients", "ingredient_id"),
	}
)

func listTags(t *testing.T, db *gorm.DB, owner uint, q url.Values) []string {
	t.Helper()
	chain, err := tagPipeline.Apply(db.Model(&models.Tag{}), filters.Request{OwnerID: owner, Query: q})
	require.NoError(t, err)

	var tags []models.Tag
	require.NoError(t, chain.Order("name").Find(&tags).Error)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func listRecipes(t *testing.T, db *gorm.DB, owner uint, q url.Values) ([]string, error) {
	t.Helper()
	chain, err := recipePipeline.Apply(db.Model(&models.Recipe{}), filters.Request{OwnerID: owner, Query: q})
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	require.NoError(t, chain.Order("title").Find(&recipes).Error)
	titles := make([]string, 0, len(recipes))
	for _, r := range recipes {
		titles = append(titles, r.Title)
	}
	return titles, nil
}

func TestOwnedIsolatesUsers(t *testing.T) {
	db := testkit.DB(t)
	alice := testkit.User(t, db, "alice@example.com")
	bob := testkit.User(t, db, "bob@example.com")

	testkit.Tag(t, db, alice.ID, "Vegan")
	testkit.Tag(t, db, bob.ID, "Fruity")
	testkit.Tag(t, db, bob.ID, "Comfort food")

	assert.Equal(t, []string{"Vegan"}, listTags(t, db, alice.ID, nil))
	assert.Equal(t, []string{"Comfort food", "Fruity"}, listTags(t, db, bob.ID, nil))
}

func TestOwnedRejectsAnonymous(t *testing.T) {
	db := testkit.DB(t)
	_, err := tagPipeline.Apply(db, filters.Request{})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAssignmentPartition(t *testing.T) {
	db := testkit.DB(t)
	u := testkit.User(t, db, "user@example.com")
	other := testkit.User(t, db, "other@example.com")

	breakfast := testkit.Tag(t, db, u.ID, "Breakfast")
	testkit.Tag(t, db, u.ID, "Lunch")
	testkit.Tag(t, db, other.ID, "Dinner")

	// Two recipes share one tag; the assigned view must still list it once.
	testkit.Recipe(t, db, u.ID, "Coriander eggs on toast", []models.Tag{breakfast}, nil)
	testkit.Recipe(t, db, u.ID, "Porridge", []models.Tag{breakfast}, nil)

	all := listTags(t, db, u.ID, nil)
	assigned := listTags(t, db, u.ID, url.Values{"assigned": {"1"}})
	unassigned := listTags(t, db, u.ID, url.Values{"not_assigned": {"1"}})

	assert.Equal(t, []string{"Breakfast", "Lunch"}, all)
	assert.Equal(t, []string{"Breakfast"}, assigned)
	assert.Equal(t, []string{"Lunch"}, unassigned)
	assert.ElementsMatch(t, all, append(append([]string{}, assigned...), unassigned...))

	both := listTags(t, db, u.ID, url.Values{"assigned": {"1"}, "not_assigned": {"1"}})
	assert.Equal(t, assigned, both)
}

func TestAssignmentOnlyExactOne(t *testing.T) {
	db := testkit.DB(t)
	u := testkit.User(t, db, "user@example.com")
	testkit.Tag(t, db, u.ID, "Lunch")

	for _, v := range []string{"0", "true", "yes", ""} {
		t.Run(fmt.Sprintf("assigned=%q", v), func(t *testing.T) {
			assert.Equal(t, []string{"Lunch"}, listTags(t, db, u.ID, url.Values{"assigned": {v}}))
		})
	}
}

func TestCrossRefNarrowsAndDeduplicates(t *testing.T) {
	db := testkit.DB(t)
	u := testkit.User(t, db, "user@example.com")

	vegan := testkit.Tag(t, db, u.ID, "Vegan")
	veggie := testkit.Tag(t, db, u.ID, "Vegetarian")
	feta := testkit.Ingredient(t, db, u.ID, "Feta cheese")
	chicken := testkit.Ingredient(t, db, u.ID, "Chicken")

	testkit.Recipe(t, db, u.ID, "Thai vegetable curry", []models.Tag{vegan, veggie}, nil)
	testkit.Recipe(t, db, u.ID, "Aubergine with tahini", []models.Tag{veggie}, []models.Ingredient{feta})
	testkit.Recipe(t, db, u.ID, "Fish and chips", nil, []models.Ingredient{chicken})

	tags := fmt.Sprintf("%d,%d", vegan.ID, veggie.ID)
	got, err := listRecipes(t, db, u.ID, url.Values{"tags": {tags}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Aubergine with tahini", "Thai vegetable curry"}, got)

	got, err = listRecipes(t, db, u.ID, url.Values{
		"tags":        {tags},
		"ingredients": {fmt.Sprint(feta.ID)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Aubergine with tahini"}, got)

	got, err = listRecipes(t, db, u.ID, url.Values{"tags": {""}})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCrossRefStaysOwnerScoped(t *testing.T) {
	db := testkit.DB(t)
	u := testkit.User(t, db, "user@example.com")
	other := testkit.User(t, db, "other@example.com")

	vegan := testkit.Tag(t, db, other.ID, "Vegan")
	testkit.Recipe(t, db, other.ID, "Salad", []models.Tag{vegan}, nil)

	got, err := listRecipes(t, db, u.ID, url.Values{"tags": {fmt.Sprint(vegan.ID)}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCrossRefRejectsMalformedIDs(t *testing.T) {
	db := testkit.DB(t)
	u := testkit.User(t, db, "user@example.com")

	for _, raw := range []string{"1,,2", "abc", "1, x", "-1", ","} {
		t.Run(raw, func(t *testing.T) {
			_, err := listRecipes(t, db, u.ID, url.Values{"ingredients": {raw}})
			e, ok := apperr.As(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, apperr.KindValidation, e.Kind)
			assert.Contains(t, e.Fields, "ingredients")
		})
	}
}

func TestParseIDList(t *testing.T) {
	ids, err := filters.ParseIDList(" 1 , 22,3 ")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 22, 3}, ids)

	_, err = filters.ParseIDList("1;2")
	assert.Error(t, err)
}
