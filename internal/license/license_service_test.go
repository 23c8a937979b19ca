package license_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-cpq/internal/customer"
	"go-cpq/internal/license"
	licenseerrors "go-cpq/internal/license/errors"
	mock_license "go-cpq/internal/license/mock"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/database/dbtest"
	mock_storage "go-cpq/internal/shared/storage/mock"
	"go-cpq/internal/shared/upload"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type deps struct {
	repo  *mock_license.MockRepository
	store *mock_storage.MockStorage
	sql   sqlmock.Sqlmock
	svc   license.Service
}

func setup(t *testing.T) deps {
	ctrl := gomock.NewController(t)
	tx, sqlMock := dbtest.NewTx(t)
	d := deps{
		repo:  mock_license.NewMockRepository(ctrl),
		store: mock_storage.NewMockStorage(ctrl),
		sql:   sqlMock,
	}
	d.svc = license.NewService(tx, d.repo, d.store, "documents", zap.NewNop())
	return d
}

func routerRequest() license.CreateLicenseRequest {
	return license.CreateLicenseRequest{
		CustomerID:    5,
		LicenseNumber: " LIC-2026-01 ",
		LicenseType:   "Radio",
		IssueDate:     "2026-01-10",
		ExpiryDate:    "2027-01-09",
		Devices: []license.DeviceRequest{
			{DeviceName: "Edge Router", SerialNumber: "SN-1", MACAddress: "aa:bb:cc:dd:ee:ff"},
			{DeviceName: "Access Point", Quantity: 4},
		},
	}
}

func pdf(name string) *upload.File {
	return &upload.File{Name: name, ContentType: "application/pdf", Data: []byte("%PDF")}
}

func TestLicenseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores devices and certificates", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(&customer.Customer{ID: 5, CompanyName: "Acme"}, nil)
		d.store.EXPECT().Upload(gomock.Any(), "documents", gomock.Any(), "application/pdf", gomock.Any()).Return("https://blob/eta.pdf", nil)
		d.sql.ExpectBegin()
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *license.License) error {
			l.ID = 3
			return nil
		})
		d.sql.ExpectCommit()

		res, err := d.svc.Create(ctx, "Acme", "u-1", routerRequest(), license.LicenseFiles{ETACertificate: pdf("eta.pdf")})

		assert.NoError(t, err)
		assert.Equal(t, "LIC-2026-01", res.LicenseNumber)
		assert.Equal(t, license.StatusActive, res.Status)
		assert.Equal(t, "2027-01-09", *res.ExpiryDate)
		assert.Equal(t, "https://blob/eta.pdf", *res.ETACertificateURL)
		assert.Nil(t, res.LicenseDocumentURL)
		assert.Len(t, res.Devices, 2)
		assert.Equal(t, "AA:BB:CC:DD:EE:FF", res.Devices[0].MACAddress)
		assert.Equal(t, 1, res.Devices[0].Quantity)
		assert.Equal(t, 4, res.Devices[1].Quantity)
		assert.NoError(t, d.sql.ExpectationsWereMet())
	})

	t.Run("duplicate number removes uploaded files", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(&customer.Customer{ID: 5, CompanyName: "Acme"}, nil)
		d.store.EXPECT().Upload(gomock.Any(), "documents", gomock.Any(), gomock.Any(), gomock.Any()).Return("https://blob/doc.pdf", nil)
		d.sql.ExpectBegin()
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New(`duplicate key value violates unique constraint "uq_licenses_company_number"`))
		d.sql.ExpectRollback()
		d.store.EXPECT().Delete(gomock.Any(), "https://blob/doc.pdf").Return(nil)

		_, err := d.svc.Create(ctx, "Acme", "u-1", routerRequest(), license.LicenseFiles{LicenseDocument: pdf("doc.pdf")})

		assert.ErrorIs(t, err, licenseerrors.ErrLicenseNumberExists)
	})

	t.Run("expiry before issue", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(&customer.Customer{ID: 5, CompanyName: "Acme"}, nil)

		req := routerRequest()
		req.ExpiryDate = "2025-12-31"
		_, err := d.svc.Create(ctx, "Acme", "u-1", req, license.LicenseFiles{})

		assert.ErrorIs(t, err, licenseerrors.ErrInvalidDate)
	})

	t.Run("order of another customer", func(t *testing.T) {
		d := setup(t)
		orderID := uint(11)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(&customer.Customer{ID: 5, CompanyName: "Acme"}, nil)
		d.repo.EXPECT().OrderCustomer(gomock.Any(), orderID).Return(uint(0), nil)

		req := routerRequest()
		req.OrderID = &orderID
		_, err := d.svc.Create(ctx, "Acme", "u-1", req, license.LicenseFiles{})

		assert.ErrorIs(t, err, licenseerrors.ErrOrderMismatch)
	})

	t.Run("customer of another company", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(&customer.Customer{ID: 5, CompanyName: "Initech"}, nil)

		_, err := d.svc.Create(ctx, "Acme", "u-1", routerRequest(), license.LicenseFiles{})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func storedLicense() *license.License {
	doc := "https://blob/doc-old.pdf"
	eta := "https://blob/eta-old.pdf"
	return &license.License{
		ID:                 3,
		CompanyName:        "Acme",
		CustomerID:         5,
		LicenseNumber:      "LIC-2026-01",
		IssueDate:          time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:             license.StatusActive,
		LicenseDocumentURL: &doc,
		ETACertificateURL:  &eta,
		Devices:            []license.LicenseDevice{{ID: 1, LicenseID: 3, DeviceName: "Old", Quantity: 1}},
	}
}

func TestLicenseService_Update(t *testing.T) {
	d := setup(t)
	d.repo.EXPECT().FindByID(gomock.Any(), uint(3)).Return(storedLicense(), nil)
	d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(&customer.Customer{ID: 5, CompanyName: "Acme"}, nil)
	d.store.EXPECT().Upload(gomock.Any(), "documents", gomock.Any(), "application/pdf", gomock.Any()).Return("https://blob/doc-new.pdf", nil)
	d.sql.ExpectBegin()
	d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *license.License) error {
		assert.Nil(t, l.Devices)
		assert.Nil(t, l.ETACertificateURL)
		return nil
	})
	d.repo.EXPECT().ReplaceDevices(gomock.Any(), uint(3), gomock.Len(2)).Return(nil)
	d.sql.ExpectCommit()
	d.store.EXPECT().Delete(gomock.Any(), "https://blob/doc-old.pdf").Return(nil)
	d.store.EXPECT().Delete(gomock.Any(), "https://blob/eta-old.pdf").Return(nil)

	req := license.UpdateLicenseRequest{CreateLicenseRequest: routerRequest(), RemoveETACertificate: true}
	res, err := d.svc.Update(context.Background(), "Acme", 3, req, license.LicenseFiles{LicenseDocument: pdf("doc.pdf")})

	assert.NoError(t, err)
	assert.Equal(t, "https://blob/doc-new.pdf", *res.LicenseDocumentURL)
	assert.Nil(t, res.ETACertificateURL)
	assert.Len(t, res.Devices, 2)
	assert.NoError(t, d.sql.ExpectationsWereMet())
}

func TestLicenseService_GetExpiring(t *testing.T) {
	ctx := context.Background()

	t.Run("default window is thirty days", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindExpiring(gomock.Any(), "Acme", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, from, to time.Time) ([]license.License, error) {
				assert.Equal(t, 30*24*time.Hour, to.Sub(from))
				return []license.License{*storedLicense()}, nil
			})

		res, err := d.svc.GetExpiring(ctx, "Acme", 0)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("out of range", func(t *testing.T) {
		d := setup(t)
		_, err := d.svc.GetExpiring(ctx, "Acme", 400)
		assert.ErrorIs(t, err, licenseerrors.ErrInvalidDays)
	})
}

func TestLicenseService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes certificates", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(3)).Return(storedLicense(), nil)
		d.repo.EXPECT().Delete(gomock.Any(), uint(3)).Return(nil)
		d.store.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		assert.NoError(t, d.svc.Delete(ctx, "Acme", 3))
	})

	t.Run("missing", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(3)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, d.svc.Delete(ctx, "Acme", 3), licenseerrors.ErrLicenseNotFound)
	})
}

func TestLicense_ExpiresWithin(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	at := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name   string
		expiry *time.Time
		want   bool
	}{
		{"no expiry", nil, false},
		{"today", at(2026, 10, 18), true},
		{"last day of window", at(2026, 11, 17), true},
		{"after window", at(2026, 11, 18), false},
		{"already expired", at(2026, 10, 17), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := license.License{ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, l.ExpiresWithin(now, 30))
		})
	}
}
