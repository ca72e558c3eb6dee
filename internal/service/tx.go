package service

import (
	"context"
	"errors"

	"github.com/fermanzolido/autitos/internal/apierror"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or
// calls fn(nil) directly when db is nil (unit test mode with in-memory
// stubs). Every mutating operation runs as exactly one such transaction:
// preconditions are re-validated inside fn against row-locked reads, and
// a returned error discards every pending write.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// errAlmacen surfaces an unexpected store failure as Internal. The
// original error goes to the logs only; the client sees a generic detail.
func errAlmacen(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("store failure")
	return apierror.New(apierror.Internal, "Error interno del servidor")
}

// notFound translates gorm.ErrRecordNotFound into the taxonomy; any
// other error is an unexpected store failure.
func notFound(op, detalle string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.New(apierror.NotFound, detalle)
	}
	return errAlmacen(op, err)
}
