package counter_test

import (
	"context"
	"errors"
	"testing"

	"go-cpq/internal/shared/counter"
	"go-cpq/internal/shared/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

func TestRepository_GetNextValue(t *testing.T) {
	t.Run("returns incremented value", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := counter.NewRepository(gdb)

		mock.ExpectQuery(`INSERT INTO document_counters`).
			WithArgs(counter.ScopeQuoteRefNo).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

		v, err := repo.GetNextValue(context.Background(), counter.ScopeQuoteRefNo)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs on the context transaction", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := counter.NewRepository(gdb)
		tx := database.NewTxManager(gdb)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO document_counters`).
			WithArgs("order_number:ACME-260101-GLOBEX").
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(1))
		mock.ExpectCommit()

		var got string
		err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
			n, err := counter.NextOrderNumber(ctx, repo, "ACME-260101-GLOBEX")
			got = n
			return err
		})
		assert.NoError(t, err)
		assert.Equal(t, "ACME-260101-GLOBEX-000", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := counter.NewRepository(gdb)

		mock.ExpectQuery(`INSERT INTO document_counters`).
			WillReturnError(errors.New("boom"))

		_, err := repo.GetNextValue(context.Background(), counter.ScopeQuoteRefNo)
		assert.Error(t, err)
	})
}

func TestRepository_RaiseValue(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := counter.NewRepository(gdb)

	mock.ExpectExec(`(?s)INSERT INTO document_counters.*GREATEST`).
		WithArgs("order_number:ACME-261018-BOB", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RaiseValue(context.Background(), "order_number:ACME-261018-BOB", 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
