package product

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	producterrors "go-cpq/internal/product/errors"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/storage"
	"go-cpq/internal/shared/upload"
	"go-cpq/internal/tenant"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ProductOptionsKeyPrefix = "products:options:"

func GetProductOptionsKey(companyName string) string {
	return ProductOptionsKeyPrefix + strings.ToLower(companyName)
}

//go:generate mockgen -source=product_service.go -destination=mock/product_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyName string) ([]ProductResponse, error)
	GetOptions(ctx context.Context, companyName string) ([]ProductOption, error)
	GetByID(ctx context.Context, companyName string, id uint) (ProductResponse, error)
	Create(ctx context.Context, companyName, userID string, req CreateProductRequest, images []upload.File) (ProductResponse, error)
	Update(ctx context.Context, companyName string, id uint, req UpdateProductRequest, images []upload.File) (ProductResponse, error)
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

func NewService(repo Repository, store storage.Storage, imagesContainer string, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{
		repo:      repo,
		store:     store,
		container: imagesContainer,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) GetAll(ctx context.Context, companyName string) ([]ProductResponse, error) {
	products, err := s.repo.FindAllByCompany(ctx, companyName)
	if err != nil {
		s.logger.Error("get all products failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetOptions(ctx context.Context, companyName string) ([]ProductOption, error) {
	cacheKey := GetProductOptionsKey(companyName)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ProductOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight: form quote/order dibuka banyak user sekaligus
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		products, err := s.repo.FindOptionsByCompany(ctx, companyName)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]ProductOption, len(products))
		for i, p := range products {
			resp[i] = ProductOption{
				ID:        p.ID,
				Name:      p.Name,
				SKU:       p.SKU,
				UnitPrice: p.UnitPrice,
				TaxRate:   p.TaxRate,
			}
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, 1*time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ProductOption), nil
}

func (s *service) GetByID(ctx context.Context, companyName string, id uint) (ProductResponse, error) {
	p, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return ProductResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Create(ctx context.Context, companyName, userID string, req CreateProductRequest, images []upload.File) (ProductResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := validatePricing(req); err != nil {
		return ProductResponse{}, err
	}
	if len(images) > MaxImages {
		return ProductResponse{}, producterrors.ErrTooManyImages
	}

	urls, err := storage.UploadFiles(ctx, s.store, s.container, "products", images, l)
	if err != nil {
		l.Error("create product upload images failed", zap.Error(err))
		return ProductResponse{}, apperror.ErrStorage.WithCause(err)
	}

	p := &Product{
		CompanyName: companyName,
		ImageURLs:   urls,
		IsActive:    true,
		CreatedBy:   userID,
	}
	applyRequest(p, req)

	if err := s.repo.Create(ctx, p); err != nil {
		l.Error("create product persist failed", zap.Error(err))
		storage.Cleanup(ctx, s.store, urls, l)
		return ProductResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyName)
	l.Info("create product success", zap.Uint("product_id", p.ID))
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, companyName string, id uint, req UpdateProductRequest, images []upload.File) (ProductResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := validatePricing(req.CreateProductRequest); err != nil {
		return ProductResponse{}, err
	}

	p, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return ProductResponse{}, err
	}

	kept, removed, ok := storage.SplitURLs(p.ImageURLs, req.RemoveImages)
	if !ok {
		return ProductResponse{}, producterrors.ErrUnknownImage
	}
	if len(kept)+len(images) > MaxImages {
		return ProductResponse{}, producterrors.ErrTooManyImages
	}

	added, err := storage.UploadFiles(ctx, s.store, s.container, "products", images, l)
	if err != nil {
		l.Error("update product upload images failed", zap.Error(err))
		return ProductResponse{}, apperror.ErrStorage.WithCause(err)
	}

	applyRequest(p, req.CreateProductRequest)
	p.ImageURLs = append(kept, added...)

	if err := s.repo.Update(ctx, p); err != nil {
		l.Error("update product persist failed", zap.Uint("product_id", id), zap.Error(err))
		storage.Cleanup(ctx, s.store, added, l)
		return ProductResponse{}, mapRepositoryError(err)
	}

	storage.Cleanup(ctx, s.store, removed, l)
	s.invalidateOptions(ctx, companyName)
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, companyName string, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	p, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		l.Error("delete product failed", zap.Uint("product_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	storage.Cleanup(ctx, s.store, p.ImageURLs, l)
	s.invalidateOptions(ctx, companyName)
	return nil
}

func (s *service) findOwned(ctx context.Context, companyName string, id uint) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, p.CompanyName); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyName string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetProductOptionsKey(companyName)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate product options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

var hundred = decimal.NewFromInt(100)

func validatePricing(req CreateProductRequest) error {
	if req.UnitPrice.IsNegative() {
		return producterrors.ErrInvalidPrice
	}
	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(hundred) {
		return producterrors.ErrInvalidTaxRate
	}
	return nil
}

func applyRequest(p *Product, req CreateProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.SKU = strings.TrimSpace(req.SKU)
	p.Description = req.Description
	p.Category = req.Category
	p.UnitPrice = req.UnitPrice.Round(2)
	p.TaxRate = req.TaxRate.Round(2)
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

func mapToResponse(p Product) ProductResponse {
	images := []string(p.ImageURLs)
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		CompanyName: p.CompanyName,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Category:    p.Category,
		UnitPrice:   p.UnitPrice,
		TaxRate:     p.TaxRate,
		ImageURLs:   images,
		IsActive:    p.IsActive,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
