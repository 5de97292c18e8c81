package usecase

import (
	"context"
	"errors"

	"blood-bank-api/internal/delivery/http/middleware"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrUnauthenticated = errors.New("user not found in context")

// isDuplicateKeyError reports a unique constraint violation from either driver.
// gorm translates sqlite errors to ErrDuplicatedKey; postgres errors are matched by code 23505.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func actorFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}
