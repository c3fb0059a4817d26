package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

var (
	ErrTableNotFound     = domain.NotFoundf("table not found")
	ErrTableNumberExists = domain.Conflictf("table number already exists")
	ErrGroupNotFound     = domain.NotFoundf("order group not found")
	ErrActiveGroupExists = domain.Conflictf("table already has an active order group")
	ErrOrderNotFound     = domain.NotFoundf("order not found")
	ErrOrderItemNotFound = domain.NotFoundf("order item not found")
	ErrGuestNotFound     = domain.NotFoundf("guest not found")
	ErrAccountNotFound   = domain.NotFoundf("account not found")
	ErrProductNotFound   = domain.NotFoundf("product not found")
)

var errCanvasMissing = errors.New("layout canvas row is missing")

// isUniqueViolation reports whether err was raised by the unique index named constraint.
// An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation &&
			(constraint == "" || pgErr.ConstraintName == constraint)
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
