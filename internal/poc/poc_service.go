package poc

import (
	"context"
	"strings"
	"time"

	pocerrors "go-cpq/internal/poc/errors"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/tenant"

	"go.uber.org/zap"
)

//go:generate mockgen -source=poc_service.go -destination=mock/poc_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyName string, customerID uint) ([]PocResponse, error)
	GetByID(ctx context.Context, companyName string, id uint) (PocResponse, error)
	Create(ctx context.Context, companyName string, req CreatePocRequest) (PocResponse, error)
	Update(ctx context.Context, companyName string, id uint, req UpdatePocRequest) (PocResponse, error)
	Delete(ctx context.Context, companyName string, id uint) error
}

type service struct {
	tx     database.Transactor
	repo   Repository
	logger *zap.Logger
}

func NewService(tx database.Transactor, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("poc.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("poc.service")
	}
	return &service{tx: tx, repo: repo, logger: l}
}

// GetAll lists the contacts of one customer, or of every customer of the
// company when customerID is zero.
func (s *service) GetAll(ctx context.Context, companyName string, customerID uint) ([]PocResponse, error) {
	var (
		pocs []Poc
		err  error
	)
	if customerID > 0 {
		if err := s.authorizeCustomer(ctx, companyName, customerID); err != nil {
			return nil, err
		}
		pocs, err = s.repo.FindByCustomer(ctx, customerID)
	} else {
		pocs, err = s.repo.FindAllByCompany(ctx, companyName)
	}
	if err != nil {
		s.logger.Error("get pocs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]PocResponse, len(pocs))
	for i, p := range pocs {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyName string, id uint) (PocResponse, error) {
	p, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return PocResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Create(ctx context.Context, companyName string, req CreatePocRequest) (PocResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authorizeCustomer(ctx, companyName, req.CustomerID); err != nil {
		return PocResponse{}, err
	}

	p := &Poc{
		CustomerID:  req.CustomerID,
		Name:        strings.TrimSpace(req.Name),
		Designation: req.Designation,
		Email:       strings.TrimSpace(req.Email),
		Phone:       req.Phone,
		IsPrimary:   req.IsPrimary,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		if p.IsPrimary {
			return s.repo.ClearPrimary(ctx, p.CustomerID, p.ID)
		}
		return nil
	})
	if err != nil {
		l.Error("create poc failed", zap.Uint("customer_id", req.CustomerID), zap.Error(err))
		return PocResponse{}, mapRepositoryError(err)
	}

	l.Info("create poc success", zap.Uint("poc_id", p.ID))
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, companyName string, id uint, req UpdatePocRequest) (PocResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	p, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return PocResponse{}, err
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Designation = req.Designation
	p.Email = strings.TrimSpace(req.Email)
	p.Phone = req.Phone
	p.IsPrimary = req.IsPrimary

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		if p.IsPrimary {
			return s.repo.ClearPrimary(ctx, p.CustomerID, p.ID)
		}
		return nil
	})
	if err != nil {
		l.Error("update poc failed", zap.Uint("poc_id", id), zap.Error(err))
		return PocResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, companyName string, id uint) error {
	if _, err := s.findOwned(ctx, companyName, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete poc failed", zap.Uint("poc_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, companyName string, id uint) (*Poc, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.authorizeCustomer(ctx, companyName, p.CustomerID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) authorizeCustomer(ctx context.Context, companyName string, customerID uint) error {
	owner, err := s.repo.GetCustomerCompany(ctx, customerID)
	if err != nil {
		return err
	}
	if owner == "" {
		return pocerrors.ErrCustomerNotFound
	}
	return tenant.Authorize(companyName, owner)
}

func mapToResponse(p Poc) PocResponse {
	return PocResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Name:        p.Name,
		Designation: p.Designation,
		Email:       p.Email,
		Phone:       p.Phone,
		IsPrimary:   p.IsPrimary,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
