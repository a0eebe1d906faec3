package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/MsRupa/vidlook-app/internal/model"
)

// notFound maps pgx.ErrNoRows to model.ErrAccountNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrAccountNotFound
	}
	return err
}
