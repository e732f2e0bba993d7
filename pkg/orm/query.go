// Package orm wraps gorm with the conventions the repositories share:
// context on every query and gorm.ErrRecordNotFound mapped to
// apperr.ErrNotFound.
package orm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/pkg/apperr"
)

// Query is a thin chainable wrapper over *gorm.DB.
type Query struct {
	db *gorm.DB
}

// New starts a query bound to ctx.
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

// From wraps an already-built gorm chain.
func From(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Scopes(fns ...func(*gorm.DB) *gorm.DB) *Query {
	return &Query{db: q.db.Scopes(fns...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(query, args...)}
}

// DB exposes the underlying chain.
func (q *Query) DB() *gorm.DB { return q.db }

// Get loads every matching row into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row, returning apperr.ErrNotFound when none match.
func (q *Query) First(dest interface{}) error {
	return NotFound(q.db.First(dest).Error)
}

// NotFound maps gorm.ErrRecordNotFound to apperr.ErrNotFound.
func NotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
