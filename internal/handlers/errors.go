package handlers

import (
	"database/sql"
	"errors"
)

// isNotFound reports whether a query error means the row does not exist,
// as opposed to a real database failure that should surface as a 500.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
