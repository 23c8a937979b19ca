package license

import (
	"context"
	"errors"
	"strings"
	"time"

	licenseerrors "go-cpq/internal/license/errors"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/shared/storage"
	"go-cpq/internal/shared/upload"
	"go-cpq/internal/tenant"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	blobPrefix = "licenses"
	dateLayout = "2006-01-02"
)

//go:generate mockgen -source=license_service.go -destination=mock/license_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyName string, filter Filter) ([]LicenseResponse, error)
	GetByID(ctx context.Context, companyName string, id uint) (LicenseResponse, error)
	GetExpiring(ctx context.Context, companyName string, days int) ([]LicenseResponse, error)
	Create(ctx context.Context, companyName, userID string, req CreateLicenseRequest, files LicenseFiles) (LicenseResponse, error)
	Update(ctx context.Context, companyName string, id uint, req UpdateLicenseRequest, files LicenseFiles) (LicenseResponse, error)
	Delete(ctx context.Context, companyName string, id uint) error
}

type service struct {
	tx        database.Transactor
	repo      Repository
	store     storage.Storage
	container string
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(tx database.Transactor, repo Repository, store storage.Storage, documentsContainer string, logger ...*zap.Logger) Service {
	l := zap.L().Named("license.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("license.service")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		store:     store,
		container: documentsContainer,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) GetAll(ctx context.Context, companyName string, filter Filter) ([]LicenseResponse, error) {
	licenses, err := s.repo.FindAllByCompany(ctx, companyName, filter)
	if err != nil {
		s.logger.Error("get all licenses failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(licenses), nil
}

func (s *service) GetByID(ctx context.Context, companyName string, id uint) (LicenseResponse, error) {
	l, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return LicenseResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetExpiring(ctx context.Context, companyName string, days int) ([]LicenseResponse, error) {
	if days == 0 {
		days = DefaultExpiringDays
	}
	if days < 1 || days > MaxExpiringDays {
		return nil, licenseerrors.ErrInvalidDays
	}

	from := s.now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, days)

	licenses, err := s.repo.FindExpiring(ctx, companyName, from, to)
	if err != nil {
		s.logger.Error("get expiring licenses failed", zap.Int("days", days), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(licenses), nil
}

func (s *service) Create(ctx context.Context, companyName, userID string, req CreateLicenseRequest, files LicenseFiles) (LicenseResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.checkReferences(ctx, companyName, req.CustomerID, req.OrderID); err != nil {
		return LicenseResponse{}, err
	}

	lic := &License{
		CompanyName: companyName,
		Status:      StatusActive,
		CreatedBy:   userID,
	}
	if err := applyRequest(lic, req); err != nil {
		return LicenseResponse{}, err
	}

	uploaded, err := s.uploadFiles(ctx, lic, files, l)
	if err != nil {
		return LicenseResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, lic)
	})
	if err != nil {
		l.Error("create license failed", zap.String("license_number", lic.LicenseNumber), zap.Error(err))
		storage.Cleanup(ctx, s.store, uploaded, l)
		return LicenseResponse{}, mapRepositoryError(err)
	}

	l.Info("create license success",
		zap.Uint("license_id", lic.ID),
		zap.Int("devices", len(lic.Devices)),
		zap.Int("files", len(uploaded)),
	)
	return mapToResponse(*lic), nil
}

func (s *service) Update(ctx context.Context, companyName string, id uint, req UpdateLicenseRequest, files LicenseFiles) (LicenseResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	lic, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return LicenseResponse{}, err
	}
	if err := s.checkReferences(ctx, companyName, req.CustomerID, req.OrderID); err != nil {
		return LicenseResponse{}, err
	}

	var removed []string
	release := func(current **string, replace bool) {
		if *current != nil && replace {
			removed = append(removed, **current)
			*current = nil
		}
	}
	release(&lic.LicenseDocumentURL, req.RemoveLicenseDocument || files.LicenseDocument != nil)
	release(&lic.ETACertificateURL, req.RemoveETACertificate || files.ETACertificate != nil)
	release(&lic.ImportLicenseURL, req.RemoveImportLicense || files.ImportLicense != nil)

	if err := applyRequest(lic, req.CreateLicenseRequest); err != nil {
		return LicenseResponse{}, err
	}

	uploaded, err := s.uploadFiles(ctx, lic, files, l)
	if err != nil {
		return LicenseResponse{}, err
	}

	devices := lic.Devices
	lic.Devices = nil
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, lic); err != nil {
			return err
		}
		return s.repo.ReplaceDevices(ctx, lic.ID, devices)
	})
	if err != nil {
		l.Error("update license failed", zap.Uint("license_id", id), zap.Error(err))
		storage.Cleanup(ctx, s.store, uploaded, l)
		return LicenseResponse{}, mapRepositoryError(err)
	}
	lic.Devices = devices

	storage.Cleanup(ctx, s.store, removed, l)
	l.Info("update license success",
		zap.Uint("license_id", id),
		zap.Int("devices", len(devices)),
		zap.Int("files_removed", len(removed)),
	)
	return mapToResponse(*lic), nil
}

func (s *service) Delete(ctx context.Context, companyName string, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	lic, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		l.Error("delete license failed", zap.Uint("license_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	storage.Cleanup(ctx, s.store, lic.FileURLs(), l)
	l.Info("delete license success", zap.Uint("license_id", id))
	return nil
}

// uploadFiles stores each provided certificate and points lic at it.
func (s *service) uploadFiles(ctx context.Context, lic *License, files LicenseFiles, l *zap.Logger) ([]string, error) {
	var uploaded []string
	slots := []struct {
		file *upload.File
		dst  **string
	}{
		{files.LicenseDocument, &lic.LicenseDocumentURL},
		{files.ETACertificate, &lic.ETACertificateURL},
		{files.ImportLicense, &lic.ImportLicenseURL},
	}

	for _, slot := range slots {
		if slot.file == nil {
			continue
		}
		urls, err := storage.UploadFiles(ctx, s.store, s.container, blobPrefix, []upload.File{*slot.file}, l)
		if err != nil {
			l.Error("upload license file failed", zap.String("field", slot.file.Field), zap.Error(err))
			storage.Cleanup(ctx, s.store, uploaded, l)
			return nil, apperror.ErrStorage.WithCause(err)
		}
		uploaded = append(uploaded, urls[0])
		*slot.dst = &urls[0]
	}
	return uploaded, nil
}

func (s *service) findOwned(ctx context.Context, companyName string, id uint) (*License, error) {
	lic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, lic.CompanyName); err != nil {
		return nil, err
	}
	return lic, nil
}

func (s *service) checkReferences(ctx context.Context, companyName string, customerID uint, orderID *uint) error {
	c, err := s.repo.FindCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return licenseerrors.ErrCustomerNotFound
		}
		return err
	}
	if err := tenant.Authorize(companyName, c.CompanyName); err != nil {
		return err
	}

	if orderID == nil {
		return nil
	}
	orderCustomer, err := s.repo.OrderCustomer(ctx, *orderID)
	if err != nil {
		return err
	}
	if orderCustomer != customerID {
		return licenseerrors.ErrOrderMismatch
	}
	return nil
}

func applyRequest(lic *License, req CreateLicenseRequest) error {
	issueDate, err := time.Parse(dateLayout, req.IssueDate)
	if err != nil {
		return apperror.InvalidField("issueDate")
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		t, err := time.Parse(dateLayout, req.ExpiryDate)
		if err != nil {
			return apperror.InvalidField("expiryDate")
		}
		if t.Before(issueDate) {
			return licenseerrors.ErrInvalidDate
		}
		expiryDate = &t
	}

	devices := make([]LicenseDevice, len(req.Devices))
	for i, d := range req.Devices {
		qty := d.Quantity
		if qty == 0 {
			qty = 1
		}
		devices[i] = LicenseDevice{
			DeviceName:   strings.TrimSpace(d.DeviceName),
			SerialNumber: strings.TrimSpace(d.SerialNumber),
			MACAddress:   strings.ToUpper(strings.TrimSpace(d.MACAddress)),
			Model:        strings.TrimSpace(d.Model),
			Quantity:     qty,
		}
	}

	lic.CustomerID = req.CustomerID
	lic.OrderID = req.OrderID
	lic.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
	lic.LicenseType = strings.TrimSpace(req.LicenseType)
	lic.IssueDate = issueDate
	lic.ExpiryDate = expiryDate
	lic.Notes = req.Notes
	if req.Status != "" {
		lic.Status = req.Status
	}
	lic.Devices = devices
	return nil
}

func mapToResponse(l License) LicenseResponse {
	devices := make([]DeviceResponse, len(l.Devices))
	for i, d := range l.Devices {
		devices[i] = DeviceResponse{
			ID:           d.ID,
			DeviceName:   d.DeviceName,
			SerialNumber: d.SerialNumber,
			MACAddress:   d.MACAddress,
			Model:        d.Model,
			Quantity:     d.Quantity,
		}
	}

	res := LicenseResponse{
		ID:                 l.ID,
		CompanyName:        l.CompanyName,
		CustomerID:         l.CustomerID,
		OrderID:            l.OrderID,
		LicenseNumber:      l.LicenseNumber,
		LicenseType:        l.LicenseType,
		IssueDate:          l.IssueDate.Format(dateLayout),
		Status:             l.Status,
		Notes:              l.Notes,
		LicenseDocumentURL: l.LicenseDocumentURL,
		ETACertificateURL:  l.ETACertificateURL,
		ImportLicenseURL:   l.ImportLicenseURL,
		CreatedBy:          l.CreatedBy,
		CreatedAt:          l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          l.UpdatedAt.Format(time.RFC3339),
		Devices:            devices,
	}
	if l.ExpiryDate != nil {
		v := l.ExpiryDate.Format(dateLayout)
		res.ExpiryDate = &v
	}
	return res
}

func mapToListResponse(licenses []License) []LicenseResponse {
	res := make([]LicenseResponse, len(licenses))
	for i, l := range licenses {
		res[i] = mapToResponse(l)
	}
	return res
}
