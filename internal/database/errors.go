package database

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned by repositories when a row does not exist
var ErrNotFound = errors.New("record not found")

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. The signature service relies on this to translate the losing
// side of a concurrent sign race into the already-signed outcome.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
