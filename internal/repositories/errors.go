package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrCategoryInUse is returned when deleting a category that repair
// requests still reference.
var ErrCategoryInUse = errors.New("category is referenced by repair requests")

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
