// Package filters turns list-request query parameters into gorm scopes.
//
// Each Filter inspects a Request and returns a Scope, or nil when it has
// nothing to contribute. A Pipeline applies filters in order; the ownership
// filter always comes first so every later predicate narrows an owner-scoped
// set.
package filters

import (
	"net/url"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/pkg/metrics"
)

// Scope is a gorm query modifier.
type Scope func(*gorm.DB) *gorm.DB

// Request is what filters see of an incoming list request.
type Request struct {
	OwnerID uint
	Query   url.Values
}

// Filter derives a scope from a request.
type Filter interface {
	Name() string
	Scope(req Request) (Scope, error)
}

// Pipeline is an ordered list of filters.
type Pipeline []Filter

// Apply chains every contributing filter onto db. The first filter error
// aborts the whole request.
func (p Pipeline) Apply(db *gorm.DB, req Request) (*gorm.DB, error) {
	for _, f := range p {
		s, err := f.Scope(req)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		metrics.FilterApplied.WithLabelValues(f.Name()).Inc()
		db = db.Scopes(s)
	}
	return db, nil
}

// truthy reports whether a query flag is set. Only the exact value "1" counts.
func truthy(q url.Values, key string) bool {
	return q.Get(key) == "1"
}
