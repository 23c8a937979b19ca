package customer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	customererrors "go-cpq/internal/customer/errors"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/storage"
	"go-cpq/internal/shared/upload"
	"go-cpq/internal/tenant"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const CustomerOptionsKeyPrefix = "customers:options:"

func GetCustomerOptionsKey(companyName string) string {
	return CustomerOptionsKeyPrefix + strings.ToLower(companyName)
}

//go:generate mockgen -source=customer_service.go -destination=mock/customer_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyName string) ([]CustomerResponse, error)
	GetOptions(ctx context.Context, companyName string) ([]CustomerOption, error)
	GetByID(ctx context.Context, companyName string, id uint) (CustomerResponse, error)
	Create(ctx context.Context, companyName, userID string, req CreateCustomerRequest, documents []upload.File) (CustomerResponse, error)
	Update(ctx context.Context, companyName string, id uint, req UpdateCustomerRequest, documents []upload.File) (CustomerResponse, error)
	Delete(ctx context.Context, companyName string, id uint) error
}

type service struct {
	repo      Repository
	store     storage.Storage
	container string
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(repo Repository, store storage.Storage, documentsContainer string, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{
		repo:      repo,
		store:     store,
		container: documentsContainer,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) GetAll(ctx context.Context, companyName string) ([]CustomerResponse, error) {
	customers, err := s.repo.FindAllByCompany(ctx, companyName)
	if err != nil {
		s.logger.Error("get all customers failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(customers), nil
}

func (s *service) GetOptions(ctx context.Context, companyName string) ([]CustomerOption, error) {
	cacheKey := GetCustomerOptionsKey(companyName)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []CustomerOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		customers, err := s.repo.FindOptionsByCompany(ctx, companyName)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]CustomerOption, len(customers))
		for i, c := range customers {
			resp[i] = CustomerOption{ID: c.ID, DisplayName: c.DisplayName()}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, 30*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]CustomerOption), nil
}

func (s *service) GetByID(ctx context.Context, companyName string, id uint) (CustomerResponse, error) {
	c, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return CustomerResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Create(ctx context.Context, companyName, userID string, req CreateCustomerRequest, documents []upload.File) (CustomerResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	urls, err := storage.UploadFiles(ctx, s.store, s.container, "customers", documents, l)
	if err != nil {
		l.Error("create customer upload documents failed", zap.Error(err))
		return CustomerResponse{}, apperror.ErrStorage.WithCause(err)
	}

	c := &Customer{
		CompanyName:  companyName,
		DocumentURLs: urls,
		CreatedBy:    userID,
	}
	applyRequest(c, req)

	if err := s.repo.Create(ctx, c); err != nil {
		l.Error("create customer persist failed", zap.Error(err))
		storage.Cleanup(ctx, s.store, urls, l)
		return CustomerResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyName)
	l.Info("create customer success", zap.Uint("customer_id", c.ID), zap.Int("documents", len(urls)))
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, companyName string, id uint, req UpdateCustomerRequest, documents []upload.File) (CustomerResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	c, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return CustomerResponse{}, err
	}

	kept, removed, ok := storage.SplitURLs(c.DocumentURLs, req.RemoveDocuments)
	if !ok {
		return CustomerResponse{}, customererrors.ErrUnknownDocument
	}

	added, err := storage.UploadFiles(ctx, s.store, s.container, "customers", documents, l)
	if err != nil {
		l.Error("update customer upload documents failed", zap.Error(err))
		return CustomerResponse{}, apperror.ErrStorage.WithCause(err)
	}

	applyRequest(c, req.CreateCustomerRequest)
	c.DocumentURLs = append(kept, added...)

	if err := s.repo.Update(ctx, c); err != nil {
		l.Error("update customer persist failed", zap.Uint("customer_id", id), zap.Error(err))
		storage.Cleanup(ctx, s.store, added, l)
		return CustomerResponse{}, mapRepositoryError(err)
	}

	storage.Cleanup(ctx, s.store, removed, l)
	s.invalidateOptions(ctx, companyName)
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, companyName string, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	c, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		l.Error("delete customer failed", zap.Uint("customer_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	storage.Cleanup(ctx, s.store, c.DocumentURLs, l)
	s.invalidateOptions(ctx, companyName)
	l.Info("delete customer success", zap.Uint("customer_id", id))
	return nil
}

func (s *service) findOwned(ctx context.Context, companyName string, id uint) (*Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, c.CompanyName); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyName string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetCustomerOptionsKey(companyName)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate customer options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func applyRequest(c *Customer, req CreateCustomerRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.AncillaryName = strings.TrimSpace(req.AncillaryName)
	c.Email = strings.TrimSpace(req.Email)
	c.Phone = req.Phone
	c.Address = req.Address
	c.City = req.City
	c.State = req.State
	c.Country = req.Country
	c.PostalCode = req.PostalCode
	c.TaxNumber = req.TaxNumber
	c.Industry = req.Industry
}

func mapToResponse(c Customer) CustomerResponse {
	docs := []string(c.DocumentURLs)
	if docs == nil {
		docs = []string{}
	}
	return CustomerResponse{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		Name:          c.Name,
		AncillaryName: c.AncillaryName,
		DisplayName:   c.DisplayName(),
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		PostalCode:    c.PostalCode,
		TaxNumber:     c.TaxNumber,
		Industry:      c.Industry,
		DocumentURLs:  docs,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(customers []Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = mapToResponse(c)
	}
	return res
}
