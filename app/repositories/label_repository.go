package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/filters"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/orm"
)

// LabelRepository stores tags or ingredients. Both live in their own table
// and link to recipes through their own join table.
type LabelRepository[T models.Labeled] struct {
	db        *gorm.DB
	table     string
	joinTable string
	column    string
	pipeline  filters.Pipeline
}

func NewLabelRepository[T models.Labeled](db *gorm.DB) *LabelRepository[T] {
	var zero T
	join, col := zero.JoinTable()
	return &LabelRepository[T]{
		db:        db,
		table:     zero.TableName(),
		joinTable: join,
		column:    col,
		pipeline: filters.Pipeline{
			filters.Owned(zero.TableName()),
			filters.Assignment(zero.TableName(), join, col),
		},
	}
}

// List returns the requester's labels, narrowed by the assignment flags and
// ordered by name then id, both descending.
func (r *LabelRepository[T]) List(ctx context.Context, req filters.Request) ([]T, error) {
	chain, err := r.pipeline.Apply(r.db.WithContext(ctx).Model(new(T)), req)
	if err != nil {
		return nil, err
	}

	items := []T{}
	err = orm.From(chain).
		Order(fmt.Sprintf("%s.name DESC, %s.id DESC", r.table, r.table)).
		Get(&items)
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", r.table, err)
	}
	return items, nil
}

// Find returns one of ownerID's labels.
func (r *LabelRepository[T]) Find(ctx context.Context, ownerID, id uint) (T, error) {
	var item T
	err := orm.New(ctx, r.db).
		Scopes(filters.OwnedBy(r.table, ownerID)).
		Where(r.table+".id = ?", id).
		First(&item)
	return item, err
}

// FindOwned loads the labels with the given IDs that belong to ownerID, in
// no particular order. Duplicate IDs are collapsed; missing ones are silently
// absent from the result.
func (r *LabelRepository[T]) FindOwned(ctx context.Context, ownerID uint, ids []uint) ([]T, error) {
	items := []T{}
	if len(ids) == 0 {
		return items, nil
	}
	err := orm.New(ctx, r.db).
		Scopes(filters.OwnedBy(r.table, ownerID)).
		Where(r.table+".id IN ?", ids).
		Get(&items)
	if err != nil {
		return nil, fmt.Errorf("%s: find owned: %w", r.table, err)
	}
	return items, nil
}

func (r *LabelRepository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("%s: create: %w", r.table, err)
	}
	return nil
}

// Rename sets the name of one of ownerID's labels and returns the new row.
func (r *LabelRepository[T]) Rename(ctx context.Context, ownerID, id uint, name string) (T, error) {
	res := r.db.WithContext(ctx).Model(new(T)).
		Scopes(filters.OwnedBy(r.table, ownerID)).
		Where(r.table+".id = ?", id).
		Update("name", name)
	if res.Error != nil {
		var zero T
		return zero, fmt.Errorf("%s: rename %d: %w", r.table, id, res.Error)
	}
	return r.Find(ctx, ownerID, id)
}

// Delete removes one of ownerID's labels and its recipe links.
func (r *LabelRepository[T]) Delete(ctx context.Context, ownerID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(filters.OwnedBy(r.table, ownerID)).Where(r.table+".id = ?", id).Delete(new(T))
		if res.Error != nil {
			return fmt.Errorf("%s: delete %d: %w", r.table, id, res.Error)
		}
		if res.RowsAffected == 0 {
			return orm.NotFound(gorm.ErrRecordNotFound)
		}
		err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", r.joinTable, r.column), id).Error
		if err != nil {
			return fmt.Errorf("%s: unlink %d: %w", r.table, id, err)
		}
		return nil
	})
}
