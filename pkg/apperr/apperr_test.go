package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/recipebox/pkg/apperr"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("tag repository: %w", apperr.ErrNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
}

func TestCustomNotFoundMatchesSentinel(t *testing.T) {
	err := apperr.NotFound("No recipe matches the given query.")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.False(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestValidationIsNotNotFound(t *testing.T) {
	err := apperr.Field("name", "The name field is required.")
	assert.False(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, []string{"name"}, err.Fields.Names())
}

func TestFieldsMerge(t *testing.T) {
	f := apperr.Fields{}
	f.Add("title", "a")
	f.Merge(apperr.Fields{"title": {"b"}, "price": {"c"}})
	assert.Equal(t, []string{"a", "b"}, f["title"])
	assert.Equal(t, []string{"price", "title"}, f.Names())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "authentication_required", apperr.KindUnauthenticated.String())
	assert.Equal(t, "method_not_allowed", apperr.KindMethodNotAllowed.String())
	assert.Equal(t, "internal_error", apperr.Kind(99).String())
}
