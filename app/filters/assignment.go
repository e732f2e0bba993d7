package filters

import (
	"fmt"

	"gorm.io/gorm"
)

type assignment struct {
	table     string
	joinTable string
	column    string
}

// Assignment filters a label table by whether its rows are linked to any
// recipe through joinTable.column. "assigned=1" keeps linked rows,
// "not_assigned=1" keeps unlinked ones, and assigned wins when both are set.
// EXISTS keeps each row once however many recipes share it.
func Assignment(table, joinTable, column string) Filter {
	return assignment{table: table, joinTable: joinTable, column: column}
}

func (f assignment) Name() string { return "assignment" }

func (f assignment) Scope(req Request) (Scope, error) {
	sub := fmt.Sprintf("SELECT 1 FROM %s WHERE %s.%s = %s.id", f.joinTable, f.joinTable, f.column, f.table)

	switch {
	case truthy(req.Query, "assigned"):
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("EXISTS (" + sub + ")")
		}, nil
	case truthy(req.Query, "not_assigned"):
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("NOT EXISTS (" + sub + ")")
		}, nil
	}
	return nil, nil
}
