package repositories

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when a user row collides on the email index.
var ErrEmailTaken = errors.New("users: email already registered")

// isDuplicate reports a unique-constraint violation. Dialects with an error
// translator surface gorm.ErrDuplicatedKey; the sqlite driver's translator
// misses value-typed errors, so those are matched on the extended code.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
