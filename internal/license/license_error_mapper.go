package license

import (
	"errors"
	"strings"

	licenseerrors "go-cpq/internal/license/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return licenseerrors.ErrLicenseNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_licenses_company_number":
			return licenseerrors.ErrLicenseNumberExists
		case pgErr.Code == "23503":
			return licenseerrors.ErrInvalidReference
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_licenses_company_number") {
		return licenseerrors.ErrLicenseNumberExists
	}

	return err
}
