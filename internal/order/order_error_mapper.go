package order

import (
	"errors"
	"strings"

	ordererrors "go-cpq/internal/order/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ordererrors.ErrOrderNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_orders_order_number":
			return ordererrors.ErrOrderNumberExists
		case pgErr.Code == "23503":
			return ordererrors.ErrInvalidReference
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_orders_order_number") {
		return ordererrors.ErrOrderNumberExists
	}

	return err
}
