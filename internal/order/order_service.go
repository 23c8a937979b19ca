package order

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-cpq/internal/customer"
	"go-cpq/internal/document"
	"go-cpq/internal/events"
	"go-cpq/internal/messaging/kafka"
	ordererrors "go-cpq/internal/order/errors"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/counter"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/shared/storage"
	"go-cpq/internal/shared/upload"
	"go-cpq/internal/tenant"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultCurrency = "USD"
	blobPrefix      = "orders"
	dateLayout      = "2006-01-02"
)

//go:generate mockgen -source=order_service.go -destination=mock/order_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyName string, filter Filter) ([]OrderResponse, error)
	GetByID(ctx context.Context, companyName string, id uint) (OrderResponse, error)
	GetByNumber(ctx context.Context, companyName, orderNumber string) (OrderResponse, error)
	Create(ctx context.Context, companyName, userID string, req CreateOrderRequest, files OrderFiles) (OrderResponse, error)
	Update(ctx context.Context, companyName string, id uint, req UpdateOrderRequest, files OrderFiles) (OrderResponse, error)
	UpdateStatus(ctx context.Context, companyName string, id uint, req UpdateOrderStatusRequest) (OrderResponse, error)
	Delete(ctx context.Context, companyName string, id uint) error
	RenderPDF(ctx context.Context, companyName string, id uint) (PDFFile, error)
}

type service struct {
	tx        database.Transactor
	repo      Repository
	counters  counter.Repository
	outbox    kafka.OutboxRepository
	renderer  document.Renderer
	store     storage.Storage
	container string
	logoURL   string
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	tx database.Transactor,
	repo Repository,
	counters counter.Repository,
	outboxRepo kafka.OutboxRepository,
	renderer document.Renderer,
	store storage.Storage,
	documentsContainer string,
	logoURL string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("order.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("order.service")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		counters:  counters,
		outbox:    outboxRepo,
		renderer:  renderer,
		store:     store,
		container: documentsContainer,
		logoURL:   logoURL,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) GetAll(ctx context.Context, companyName string, filter Filter) ([]OrderResponse, error) {
	orders, err := s.repo.FindAllByCompany(ctx, companyName, filter)
	if err != nil {
		s.logger.Error("get all orders failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]OrderResponse, len(orders))
	for i, o := range orders {
		res[i] = mapToResponse(o)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyName string, id uint) (OrderResponse, error) {
	o, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return OrderResponse{}, err
	}
	return mapToResponse(*o), nil
}

func (s *service) GetByNumber(ctx context.Context, companyName, orderNumber string) (OrderResponse, error) {
	o, err := s.repo.FindByNumber(ctx, strings.TrimSpace(orderNumber))
	if err != nil {
		return OrderResponse{}, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, o.CompanyName); err != nil {
		return OrderResponse{}, err
	}
	return mapToResponse(*o), nil
}

func (s *service) Create(ctx context.Context, companyName, userID string, req CreateOrderRequest, files OrderFiles) (OrderResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	c, err := s.checkReferences(ctx, companyName, req.CustomerID, req.QuoteID, req.PocID)
	if err != nil {
		return OrderResponse{}, err
	}

	o := &Order{
		CompanyName: companyName,
		Status:      StatusPending,
		CreatedBy:   userID,
	}
	if err := s.apply(o, req); err != nil {
		return OrderResponse{}, err
	}

	uploaded, err := s.uploadFiles(ctx, o, files, l)
	if err != nil {
		return OrderResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if o.OrderNumber == "" {
			prefix := counter.OrderNumberPrefix(companyName, c.DisplayName(), o.OrderDate)
			number, err := counter.NextOrderNumber(ctx, s.counters, prefix)
			if err != nil {
				return err
			}
			o.OrderNumber = number
		} else if err := counter.ReserveOrderNumber(ctx, s.counters, o.OrderNumber); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, o); err != nil {
			return err
		}
		return s.enqueueCreated(ctx, o)
	})
	if err != nil {
		l.Error("create order failed", zap.Uint("customer_id", req.CustomerID), zap.Error(err))
		storage.Cleanup(ctx, s.store, uploaded, l)
		return OrderResponse{}, mapRepositoryError(err)
	}

	l.Info("create order success",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Int("items", len(o.Items)),
		zap.Int("files", len(uploaded)),
	)
	return mapToResponse(*o), nil
}

func (s *service) Update(ctx context.Context, companyName string, id uint, req UpdateOrderRequest, files OrderFiles) (OrderResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	o, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return OrderResponse{}, err
	}
	if _, err := s.checkReferences(ctx, companyName, req.CustomerID, req.QuoteID, req.PocID); err != nil {
		return OrderResponse{}, err
	}

	keptDocs, removedDocs, ok := storage.SplitURLs(o.OtherDocumentURLs, req.RemoveOtherDocuments)
	if !ok {
		return OrderResponse{}, ordererrors.ErrUnknownFile
	}
	keptAttachments, removedAttachments, ok := storage.SplitURLs(o.AttachmentURLs, req.RemoveAttachments)
	if !ok {
		return OrderResponse{}, ordererrors.ErrUnknownFile
	}
	if len(keptDocs)+len(files.OtherDocuments) > MaxOtherDocuments ||
		len(keptAttachments)+len(files.Attachments) > MaxAttachments {
		return OrderResponse{}, ordererrors.ErrTooManyFiles
	}

	removed := append(removedDocs, removedAttachments...)
	if o.PerformanceBankGuaranteeURL != nil && (req.RemovePerformanceBankGuarantee || files.PerformanceBankGuarantee != nil) {
		removed = append(removed, *o.PerformanceBankGuaranteeURL)
		o.PerformanceBankGuaranteeURL = nil
	}

	// The order number is fixed at creation.
	number := o.OrderNumber
	if err := s.apply(o, req.CreateOrderRequest); err != nil {
		return OrderResponse{}, err
	}
	o.OrderNumber = number
	o.OtherDocumentURLs = keptDocs
	o.AttachmentURLs = keptAttachments

	uploaded, err := s.uploadFiles(ctx, o, files, l)
	if err != nil {
		return OrderResponse{}, err
	}

	items := o.Items
	o.Items = nil
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, o); err != nil {
			return err
		}
		return s.repo.ReplaceItems(ctx, o.ID, items)
	})
	if err != nil {
		l.Error("update order failed", zap.Uint("order_id", id), zap.Error(err))
		storage.Cleanup(ctx, s.store, uploaded, l)
		return OrderResponse{}, mapRepositoryError(err)
	}
	o.Items = items

	storage.Cleanup(ctx, s.store, removed, l)
	l.Info("update order success",
		zap.Uint("order_id", id),
		zap.Int("items", len(items)),
		zap.Int("files_added", len(uploaded)),
		zap.Int("files_removed", len(removed)),
	)
	return mapToResponse(*o), nil
}

func (s *service) UpdateStatus(ctx context.Context, companyName string, id uint, req UpdateOrderStatusRequest) (OrderResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	o, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return OrderResponse{}, err
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		l.Error("update order status failed", zap.Uint("order_id", id), zap.Error(err))
		return OrderResponse{}, mapRepositoryError(err)
	}

	l.Info("order status changed",
		zap.Uint("order_id", id),
		zap.String("from", o.Status),
		zap.String("to", req.Status),
	)
	o.Status = req.Status
	return mapToResponse(*o), nil
}

func (s *service) Delete(ctx context.Context, companyName string, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	o, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		l.Error("delete order failed", zap.Uint("order_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	storage.Cleanup(ctx, s.store, o.FileURLs(), l)
	l.Info("delete order success", zap.Uint("order_id", id))
	return nil
}

func (s *service) RenderPDF(ctx context.Context, companyName string, id uint) (PDFFile, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	o, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return PDFFile{}, err
	}

	c, err := s.repo.FindCustomer(ctx, o.CustomerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PDFFile{}, mapRepositoryError(err)
	}

	data, err := s.renderer.Render(ctx, buildDocument(*o, c, s.logoURL))
	if err != nil {
		l.Error("render order pdf failed", zap.Uint("order_id", id), zap.Error(err))
		return PDFFile{}, apperror.ErrDocumentRender.WithCause(err)
	}
	return PDFFile{FileName: document.FileName("order", o.OrderNumber), Data: data}, nil
}

// uploadFiles stores new files and appends their URLs to o. It returns every
// URL written so the caller can remove them if the write fails.
func (s *service) uploadFiles(ctx context.Context, o *Order, files OrderFiles, l *zap.Logger) ([]string, error) {
	var uploaded []string

	if files.PerformanceBankGuarantee != nil {
		urls, err := storage.UploadFiles(ctx, s.store, s.container, blobPrefix, []upload.File{*files.PerformanceBankGuarantee}, l)
		if err != nil {
			l.Error("upload performance bank guarantee failed", zap.Error(err))
			return nil, apperror.ErrStorage.WithCause(err)
		}
		uploaded = append(uploaded, urls...)
		o.PerformanceBankGuaranteeURL = &urls[0]
	}

	docs, err := storage.UploadFiles(ctx, s.store, s.container, blobPrefix, files.OtherDocuments, l)
	if err != nil {
		l.Error("upload other documents failed", zap.Error(err))
		storage.Cleanup(ctx, s.store, uploaded, l)
		return nil, apperror.ErrStorage.WithCause(err)
	}
	uploaded = append(uploaded, docs...)
	o.OtherDocumentURLs = append(pq.StringArray{}, append(o.OtherDocumentURLs, docs...)...)

	attachments, err := storage.UploadFiles(ctx, s.store, s.container, blobPrefix, files.Attachments, l)
	if err != nil {
		l.Error("upload attachments failed", zap.Error(err))
		storage.Cleanup(ctx, s.store, uploaded, l)
		return nil, apperror.ErrStorage.WithCause(err)
	}
	uploaded = append(uploaded, attachments...)
	o.AttachmentURLs = append(pq.StringArray{}, append(o.AttachmentURLs, attachments...)...)

	return uploaded, nil
}

func (s *service) enqueueCreated(ctx context.Context, o *Order) error {
	if s.outbox == nil {
		return nil
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		events.OrderAggregate,
		strconv.FormatUint(uint64(o.ID), 10),
		events.OrderCreatedEventType,
		events.OrderLifecycleTopic,
		events.OrderCreatedEvent{
			EventType:   events.OrderCreatedEventType,
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			CompanyName: o.CompanyName,
			CustomerID:  o.CustomerID,
			QuoteID:     o.QuoteID,
			TotalAmount: o.TotalAmount.StringFixed(2),
			CreatedBy:   o.CreatedBy,
			OccurredAt:  s.now().UTC(),
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, event)
}

func (s *service) findOwned(ctx context.Context, companyName string, id uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, o.CompanyName); err != nil {
		return nil, err
	}
	return o, nil
}

// checkReferences verifies the customer belongs to the caller and that the
// quote and contact, when given, belong to that customer.
func (s *service) checkReferences(ctx context.Context, companyName string, customerID uint, quoteID, pocID *uint) (*customer.Customer, error) {
	c, err := s.repo.FindCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ordererrors.ErrCustomerNotFound
		}
		return nil, err
	}
	if err := tenant.Authorize(companyName, c.CompanyName); err != nil {
		return nil, err
	}

	if quoteID != nil {
		quoteCustomer, err := s.repo.QuoteCustomer(ctx, *quoteID)
		if err != nil {
			return nil, err
		}
		if quoteCustomer != customerID {
			return nil, ordererrors.ErrQuoteMismatch
		}
	}

	if pocID != nil {
		ok, err := s.repo.PocBelongsToCustomer(ctx, *pocID, customerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ordererrors.ErrPocMismatch
		}
	}
	return c, nil
}

// apply copies the request onto o and prices every item.
func (s *service) apply(o *Order, req CreateOrderRequest) error {
	orderDate := s.now().UTC().Truncate(24 * time.Hour)
	if req.OrderDate != "" {
		t, err := time.Parse(dateLayout, req.OrderDate)
		if err != nil {
			return apperror.InvalidField("orderDate")
		}
		orderDate = t
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		t, err := time.Parse(dateLayout, req.DeliveryDate)
		if err != nil {
			return apperror.InvalidField("deliveryDate")
		}
		if t.Before(orderDate) {
			return ordererrors.ErrInvalidDate
		}
		deliveryDate = &t
	}

	items := make([]OrderItem, len(req.Items))
	for i, r := range req.Items {
		if r.UnitPrice.IsNegative() || r.Quantity.IsNegative() || r.TaxRate.IsNegative() || r.DiscountRate.IsNegative() {
			return ordererrors.ErrInvalidItem
		}
		items[i] = OrderItem{
			ProductID:    r.ProductID,
			ProductName:  strings.TrimSpace(r.ProductName),
			Description:  r.Description,
			UnitPrice:    r.UnitPrice,
			Quantity:     r.Quantity,
			TaxRate:      r.TaxRate,
			DiscountRate: r.DiscountRate,
		}
		Price(&items[i])
	}

	o.OrderNumber = strings.TrimSpace(req.OrderNumber)
	o.CustomerID = req.CustomerID
	o.QuoteID = req.QuoteID
	o.PocID = req.PocID
	o.OrderDate = orderDate
	o.DeliveryDate = deliveryDate
	o.PaymentTerms = req.PaymentTerms
	o.Notes = req.Notes
	if req.Status != "" {
		o.Status = req.Status
	}
	o.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if o.Currency == "" {
		o.Currency = defaultCurrency
	}
	o.Items = items
	Totals(o)
	return nil
}

func mapToResponse(o Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Description:    it.Description,
			UnitPrice:      it.UnitPrice,
			Quantity:       it.Quantity,
			TaxRate:        it.TaxRate,
			DiscountRate:   it.DiscountRate,
			Subtotal:       it.Subtotal,
			TaxAmount:      it.TaxAmount,
			DiscountAmount: it.DiscountAmount,
			TotalAmount:    it.TotalAmount,
		}
	}

	res := OrderResponse{
		ID:                          o.ID,
		OrderNumber:                 o.OrderNumber,
		CompanyName:                 o.CompanyName,
		CustomerID:                  o.CustomerID,
		QuoteID:                     o.QuoteID,
		PocID:                       o.PocID,
		OrderDate:                   o.OrderDate.Format(dateLayout),
		Status:                      o.Status,
		PaymentTerms:                o.PaymentTerms,
		Notes:                       o.Notes,
		Currency:                    o.Currency,
		PerformanceBankGuaranteeURL: o.PerformanceBankGuaranteeURL,
		OtherDocumentURLs:           nonNil(o.OtherDocumentURLs),
		AttachmentURLs:              nonNil(o.AttachmentURLs),
		Subtotal:                    o.Subtotal,
		TaxAmount:                   o.TaxAmount,
		DiscountAmount:              o.DiscountAmount,
		TotalAmount:                 o.TotalAmount,
		CreatedBy:                   o.CreatedBy,
		CreatedAt:                   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                   o.UpdatedAt.Format(time.RFC3339),
		Items:                       items,
	}
	if o.DeliveryDate != nil {
		v := o.DeliveryDate.Format(dateLayout)
		res.DeliveryDate = &v
	}
	return res
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func buildDocument(o Order, c *customer.Customer, logoURL string) document.Document {
	doc := document.Document{
		Title:    "Purchase Order",
		Number:   o.OrderNumber,
		Date:     o.OrderDate,
		LogoURL:  logoURL,
		Currency: o.Currency,
		Meta:     []document.Field{{Label: "Status", Value: o.Status}},
		From:     document.Party{Heading: "Supplier", Name: o.CompanyName},
		Notes:    o.Notes,
		Terms:    o.PaymentTerms,
	}
	if o.DeliveryDate != nil {
		doc.Meta = append(doc.Meta, document.Field{Label: "Delivery", Value: o.DeliveryDate.Format("02 Jan 2006")})
	}
	if c != nil {
		doc.To = document.Party{
			Heading: "Customer",
			Name:    c.DisplayName(),
			Lines:   []string{c.Address, strings.TrimSpace(c.City + " " + c.PostalCode), c.Country, c.Email, c.Phone},
		}
	}

	for _, it := range o.Items {
		doc.Items = append(doc.Items, document.LineItem{
			Name:        it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Tax:         it.TaxRate,
			Discount:    it.DiscountRate,
			Amount:      it.TotalAmount,
		})
	}
	doc.Totals = []document.Field{
		{Label: "Subtotal", Value: document.Money(o.Currency, o.Subtotal)},
		{Label: "Tax", Value: document.Money(o.Currency, o.TaxAmount)},
		{Label: "Discount", Value: "-" + document.Money(o.Currency, o.DiscountAmount)},
		{Label: "Total", Value: document.Money(o.Currency, o.TotalAmount)},
	}
	return doc
}
