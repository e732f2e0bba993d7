package filters

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/pkg/apperr"
)

type owned struct {
	table string
}

// Owned restricts rows of table to the requesting user.
func Owned(table string) Filter {
	return owned{table: table}
}

func (f owned) Name() string { return "owner" }

func (f owned) Scope(req Request) (Scope, error) {
	if req.OwnerID == 0 {
		return nil, apperr.ErrUnauthorized
	}
	return OwnedBy(f.table, req.OwnerID), nil
}

// OwnedBy is the scope behind Owned, for single-row lookups.
func OwnedBy(table string, ownerID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".owner_id = ?", ownerID)
	}
}
