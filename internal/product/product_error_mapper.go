package product

import (
	"errors"
	"strings"

	producterrors "go-cpq/internal/product/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return producterrors.ErrProductNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_products_company_sku":
			return producterrors.ErrSKUAlreadyExists
		case pgErr.Code == "23503":
			return producterrors.ErrProductInUse
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_products_company_sku") {
		return producterrors.ErrSKUAlreadyExists
	}

	return err
}
