package quote

import (
	"errors"
	"strings"

	quoteerrors "go-cpq/internal/quote/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quoteerrors.ErrQuoteNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_quotes_ref_no":
			return quoteerrors.ErrRefNoConflict
		case pgErr.Code == "23503":
			return quoteerrors.ErrInvalidReference
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_quotes_ref_no") {
		return quoteerrors.ErrRefNoConflict
	}

	return err
}
