// Package dbtest opens gorm over go-sqlmock for repository and service tests.
package dbtest

import (
	"testing"

	"go-cpq/internal/shared/database"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

// NewTx returns a real TxManager whose BEGIN/COMMIT/ROLLBACK go to the mock.
func NewTx(t *testing.T) (*database.TxManager, sqlmock.Sqlmock) {
	t.Helper()
	gdb, mock := New(t)
	return database.NewTxManager(gdb), mock
}
