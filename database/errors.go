package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when an update or delete matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")

	// ErrMissingReference is returned when a write points at a parent
	// record that does not exist.
	ErrMissingReference = errors.New("referenced record not found")
)

// translateConstraint maps the driver's constraint violations onto the
// store's sentinel errors so callers never inspect sqlite error text.
func translateConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return ErrDuplicate
	case sqlite3.ErrConstraintForeignKey:
		return ErrMissingReference
	}

	return err
}
