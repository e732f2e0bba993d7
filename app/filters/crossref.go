package filters

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/pkg/apperr"
)

type crossRef struct {
	param     string
	joinTable string
	column    string
}

// CrossRef keeps recipes linked through joinTable.column to any of the IDs in
// the comma-separated query parameter param. The IN subquery keeps each
// recipe once. An absent or empty parameter is a no-op.
func CrossRef(param, joinTable, column string) Filter {
	return crossRef{param: param, joinTable: joinTable, column: column}
}

func (f crossRef) Name() string { return f.param }

func (f crossRef) Scope(req Request) (Scope, error) {
	raw := req.Query.Get(f.param)
	if raw == "" {
		return nil, nil
	}

	ids, err := ParseIDList(raw)
	if err != nil {
		return nil, apperr.Field(f.param, err.Error())
	}

	sub := fmt.Sprintf("SELECT recipe_id FROM %s WHERE %s IN ?", f.joinTable, f.column)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id IN ("+sub+")", ids)
	}, nil
}

// ParseIDList parses "1,2, 3" into IDs. Tokens are trimmed; an empty or
// non-integer token fails the whole list.
func ParseIDList(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("Empty ID in list %q.", raw)
		}
		n, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid ID.", p)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}
