package poc_test

import (
	"context"
	"errors"
	"testing"

	"go-cpq/internal/poc"
	pocerrors "go-cpq/internal/poc/errors"
	mock_poc "go-cpq/internal/poc/mock"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/database/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*mock_poc.MockRepository, sqlmock.Sqlmock, poc.Service) {
	ctrl := gomock.NewController(t)
	tx, sqlMock := dbtest.NewTx(t)
	repo := mock_poc.NewMockRepository(ctrl)
	return repo, sqlMock, poc.NewService(tx, repo, zap.NewNop())
}

func TestPocService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("primary clears the others in the same transaction", func(t *testing.T) {
		repo, sqlMock, svc := setup(t)
		repo.EXPECT().GetCustomerCompany(gomock.Any(), uint(5)).Return("Acme", nil)
		sqlMock.ExpectBegin()
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *poc.Poc) error {
			p.ID = 11
			return nil
		})
		repo.EXPECT().ClearPrimary(gomock.Any(), uint(5), uint(11)).Return(nil)
		sqlMock.ExpectCommit()

		res, err := svc.Create(ctx, "Acme", poc.CreatePocRequest{CustomerID: 5, Name: "Jane", IsPrimary: true})

		assert.NoError(t, err)
		assert.True(t, res.IsPrimary)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("clear failure rolls back", func(t *testing.T) {
		repo, sqlMock, svc := setup(t)
		repo.EXPECT().GetCustomerCompany(gomock.Any(), uint(5)).Return("Acme", nil)
		sqlMock.ExpectBegin()
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().ClearPrimary(gomock.Any(), uint(5), gomock.Any()).Return(errors.New("lock timeout"))
		sqlMock.ExpectRollback()

		_, err := svc.Create(ctx, "Acme", poc.CreatePocRequest{CustomerID: 5, Name: "Jane", IsPrimary: true})

		assert.Error(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("customer of another company", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().GetCustomerCompany(gomock.Any(), uint(5)).Return("Initech", nil)

		_, err := svc.Create(ctx, "Acme", poc.CreatePocRequest{CustomerID: 5, Name: "Jane"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unknown customer", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().GetCustomerCompany(gomock.Any(), uint(5)).Return("", nil)

		_, err := svc.Create(ctx, "Acme", poc.CreatePocRequest{CustomerID: 5, Name: "Jane"})
		assert.ErrorIs(t, err, pocerrors.ErrCustomerNotFound)
	})
}

func TestPocService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("by customer", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().GetCustomerCompany(gomock.Any(), uint(5)).Return("Acme", nil)
		repo.EXPECT().FindByCustomer(gomock.Any(), uint(5)).Return([]poc.Poc{{ID: 1, CustomerID: 5, Name: "Jane"}}, nil)

		res, err := svc.GetAll(ctx, "Acme", 5)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("whole company", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().FindAllByCompany(gomock.Any(), "Acme").Return([]poc.Poc{{ID: 1}, {ID: 2}}, nil)

		res, err := svc.GetAll(ctx, "Acme", 0)
		assert.NoError(t, err)
		assert.Len(t, res, 2)
	})
}

func TestPocService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().FindByID(gomock.Any(), uint(3)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(ctx, "Acme", 3)
		assert.ErrorIs(t, err, pocerrors.ErrPocNotFound)
	})

	t.Run("success", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().FindByID(gomock.Any(), uint(3)).Return(&poc.Poc{ID: 3, CustomerID: 5}, nil)
		repo.EXPECT().GetCustomerCompany(gomock.Any(), uint(5)).Return("Acme", nil)
		repo.EXPECT().Delete(gomock.Any(), uint(3)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, "Acme", 3))
	})
}
