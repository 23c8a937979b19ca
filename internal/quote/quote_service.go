package quote

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-cpq/internal/customer"
	"go-cpq/internal/document"
	"go-cpq/internal/domain"
	"go-cpq/internal/events"
	"go-cpq/internal/messaging/kafka"
	quoteerrors "go-cpq/internal/quote/errors"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/counter"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/shared/storage"
	"go-cpq/internal/tenant"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultCurrency = "USD"

// PDFOptions configures generated quote documents.
type PDFOptions struct {
	Container string
	LogoURL   string
}

//go:generate mockgen -source=quote_service.go -destination=mock/quote_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyName string, filter Filter) ([]QuoteResponse, error)
	GetByID(ctx context.Context, companyName string, id uint) (QuoteResponse, error)
	GetByRefNo(ctx context.Context, companyName, refNo string) (QuoteResponse, error)
	Create(ctx context.Context, companyName, userID string, req CreateQuoteRequest) (QuoteResponse, error)
	Update(ctx context.Context, companyName string, id uint, req UpdateQuoteRequest) (QuoteResponse, error)
	UpdateStatus(ctx context.Context, companyName, userID string, id uint, req UpdateQuoteStatusRequest) (QuoteResponse, error)
	Delete(ctx context.Context, companyName string, id uint) error
	RenderPDF(ctx context.Context, companyName string, id uint) (PDFFile, error)
	RequestPDF(ctx context.Context, companyName, userID string, id uint) error
	GeneratePDF(ctx context.Context, companyName string, id uint) (QuoteResponse, error)
}

type service struct {
	tx       database.Transactor
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	renderer document.Renderer
	store    storage.Storage
	pdf      PDFOptions
	logger   *zap.Logger
}

func NewService(
	tx database.Transactor,
	repo Repository,
	counters counter.Repository,
	outboxRepo kafka.OutboxRepository,
	renderer document.Renderer,
	store storage.Storage,
	pdf PDFOptions,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("quote.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quote.service")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		counters: counters,
		outbox:   outboxRepo,
		renderer: renderer,
		store:    store,
		pdf:      pdf,
		logger:   l,
	}
}

func (s *service) GetAll(ctx context.Context, companyName string, filter Filter) ([]QuoteResponse, error) {
	quotes, err := s.repo.FindAllByCompany(ctx, companyName, filter)
	if err != nil {
		s.logger.Error("get all quotes failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		res[i] = mapToResponse(q)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyName string, id uint) (QuoteResponse, error) {
	q, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return QuoteResponse{}, err
	}
	return mapToResponse(*q), nil
}

func (s *service) GetByRefNo(ctx context.Context, companyName, refNo string) (QuoteResponse, error) {
	q, err := s.repo.FindByRefNo(ctx, strings.TrimSpace(refNo))
	if err != nil {
		return QuoteResponse{}, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, q.CompanyName); err != nil {
		return QuoteResponse{}, err
	}
	return mapToResponse(*q), nil
}

func (s *service) Create(ctx context.Context, companyName, userID string, req CreateQuoteRequest) (QuoteResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.checkReferences(ctx, companyName, req.CustomerID, req.PocID); err != nil {
		return QuoteResponse{}, err
	}

	items, total, err := buildItems(req.Items)
	if err != nil {
		return QuoteResponse{}, err
	}

	q := &Quote{
		CompanyName: companyName,
		Status:      StatusDrafted,
		TotalAmount: total,
		Items:       items,
		CreatedBy:   userID,
	}
	applyRequest(q, req)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		refNo, err := counter.NextQuoteRefNo(ctx, s.counters)
		if err != nil {
			return err
		}
		q.RefNo = refNo

		if err := s.repo.Create(ctx, q); err != nil {
			return err
		}
		return s.enqueue(ctx, events.QuoteLifecycleTopic, events.QuoteCreatedEventType, q.ID, events.QuoteCreatedEvent{
			EventType:   events.QuoteCreatedEventType,
			QuoteID:     q.ID,
			RefNo:       q.RefNo,
			CompanyName: companyName,
			CustomerID:  q.CustomerID,
			TotalAmount: q.TotalAmount.StringFixed(2),
			CreatedBy:   userID,
			OccurredAt:  time.Now().UTC(),
		})
	})
	if err != nil {
		l.Error("create quote failed", zap.Uint("customer_id", req.CustomerID), zap.Error(err))
		return QuoteResponse{}, mapRepositoryError(err)
	}

	l.Info("create quote success",
		zap.Uint("quote_id", q.ID),
		zap.String("ref_no", q.RefNo),
		zap.Int("items", len(q.Items)),
	)
	return mapToResponse(*q), nil
}

func (s *service) Update(ctx context.Context, companyName string, id uint, req UpdateQuoteRequest) (QuoteResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	q, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return QuoteResponse{}, err
	}
	if !IsEditable(q.Status) {
		return QuoteResponse{}, quoteerrors.ErrQuoteNotEditable
	}
	if err := s.checkReferences(ctx, companyName, req.CustomerID, req.PocID); err != nil {
		return QuoteResponse{}, err
	}

	items, total, err := buildItems(req.Items)
	if err != nil {
		return QuoteResponse{}, err
	}

	applyRequest(q, req)
	q.TotalAmount = total
	q.Items = nil

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, q); err != nil {
			return err
		}
		return s.repo.ReplaceItems(ctx, q.ID, items)
	})
	if err != nil {
		l.Error("update quote failed", zap.Uint("quote_id", id), zap.Error(err))
		return QuoteResponse{}, mapRepositoryError(err)
	}

	q.Items = items
	l.Info("update quote success", zap.Uint("quote_id", id), zap.Int("items", len(items)))
	return mapToResponse(*q), nil
}

func (s *service) UpdateStatus(ctx context.Context, companyName, userID string, id uint, req UpdateQuoteStatusRequest) (QuoteResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	q, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return QuoteResponse{}, err
	}
	if !CanTransition(q.Status, req.Status) {
		return QuoteResponse{}, quoteerrors.ErrInvalidTransition
	}

	switch req.Status {
	case StatusApproved, StatusRejected:
		if !canDecide(ctx, *q, userID) {
			return QuoteResponse{}, quoteerrors.ErrNotApprover
		}
		now := time.Now().UTC()
		q.ApprovedBy = &userID
		q.ApprovedAt = &now
	case StatusDrafted:
		q.ApprovedBy = nil
		q.ApprovedAt = nil
	}

	from := q.Status
	q.Status = req.Status
	if err := s.repo.Update(ctx, q); err != nil {
		l.Error("update quote status failed", zap.Uint("quote_id", id), zap.Error(err))
		return QuoteResponse{}, mapRepositoryError(err)
	}

	l.Info("quote status changed",
		zap.Uint("quote_id", id),
		zap.String("from", from),
		zap.String("to", q.Status),
	)
	return mapToResponse(*q), nil
}

// canDecide allows listed approvers. A quote without approvers may be decided
// by any manager or admin.
func canDecide(ctx context.Context, q Quote, userID string) bool {
	if len(q.Approvers) > 0 {
		return q.IsApprover(userID)
	}
	role := contextutil.GetRole(ctx)
	return role == domain.RoleManager || role == domain.RoleAdmin
}

func (s *service) Delete(ctx context.Context, companyName string, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	q, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return err
	}
	if q.Status != StatusDrafted {
		return quoteerrors.ErrQuoteNotDeletable
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		l.Error("delete quote failed", zap.Uint("quote_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if q.PDFURL != nil {
		storage.Cleanup(ctx, s.store, []string{*q.PDFURL}, l)
	}
	l.Info("delete quote success", zap.Uint("quote_id", id))
	return nil
}

func (s *service) RenderPDF(ctx context.Context, companyName string, id uint) (PDFFile, error) {
	q, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return PDFFile{}, err
	}
	return s.render(ctx, q)
}

// RequestPDF queues asynchronous generation. Without an outbox the document
// is generated inline.
func (s *service) RequestPDF(ctx context.Context, companyName, userID string, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	q, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return err
	}

	if s.outbox == nil {
		_, err := s.GeneratePDF(ctx, companyName, id)
		return err
	}

	err = s.enqueue(ctx, events.QuotePDFRequestedTopic, events.QuotePDFRequestedEventType, q.ID, events.QuotePDFRequestedEvent{
		EventType:   events.QuotePDFRequestedEventType,
		QuoteID:     q.ID,
		CompanyName: companyName,
		RequestedBy: userID,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		l.Error("queue quote pdf failed", zap.Uint("quote_id", id), zap.Error(err))
		return err
	}

	l.Info("quote pdf queued", zap.Uint("quote_id", id))
	return nil
}

// GeneratePDF renders the quote, stores it in the quote PDF container and
// records the URL. The previous PDF is removed once the new URL is saved.
func (s *service) GeneratePDF(ctx context.Context, companyName string, id uint) (QuoteResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	q, err := s.findOwned(ctx, companyName, id)
	if err != nil {
		return QuoteResponse{}, err
	}

	file, err := s.render(ctx, q)
	if err != nil {
		return QuoteResponse{}, err
	}

	url, err := s.store.Upload(ctx, s.pdf.Container, storage.BlobName("quotes", file.FileName), "application/pdf", file.Data)
	if err != nil {
		l.Error("upload quote pdf failed", zap.Uint("quote_id", id), zap.Error(err))
		return QuoteResponse{}, apperror.ErrStorage.WithCause(err)
	}

	if err := s.repo.UpdatePDFURL(ctx, id, url); err != nil {
		l.Error("save quote pdf url failed", zap.Uint("quote_id", id), zap.Error(err))
		storage.Cleanup(ctx, s.store, []string{url}, l)
		return QuoteResponse{}, mapRepositoryError(err)
	}

	if q.PDFURL != nil && *q.PDFURL != url {
		storage.Cleanup(ctx, s.store, []string{*q.PDFURL}, l)
	}
	q.PDFURL = &url

	l.Info("quote pdf generated", zap.Uint("quote_id", id), zap.String("url", url))
	return mapToResponse(*q), nil
}

func (s *service) render(ctx context.Context, q *Quote) (PDFFile, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	c, err := s.repo.FindCustomer(ctx, q.CustomerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PDFFile{}, mapRepositoryError(err)
	}

	data, err := s.renderer.Render(ctx, buildDocument(*q, c, s.pdf.LogoURL))
	if err != nil {
		l.Error("render quote pdf failed", zap.Uint("quote_id", q.ID), zap.Error(err))
		return PDFFile{}, apperror.ErrDocumentRender.WithCause(err)
	}
	return PDFFile{FileName: document.FileName("quote", q.RefNo), Data: data}, nil
}

func (s *service) enqueue(ctx context.Context, topic, eventType string, quoteID uint, payload any) error {
	if s.outbox == nil {
		return nil
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		events.QuoteAggregate,
		strconv.FormatUint(uint64(quoteID), 10),
		eventType,
		topic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, event)
}

func (s *service) findOwned(ctx context.Context, companyName string, id uint) (*Quote, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := tenant.Authorize(companyName, q.CompanyName); err != nil {
		return nil, err
	}
	return q, nil
}

// checkReferences verifies the customer belongs to the caller and the contact
// belongs to the customer.
func (s *service) checkReferences(ctx context.Context, companyName string, customerID uint, pocID *uint) error {
	c, err := s.repo.FindCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quoteerrors.ErrCustomerNotFound
		}
		return err
	}
	if err := tenant.Authorize(companyName, c.CompanyName); err != nil {
		return err
	}

	if pocID == nil {
		return nil
	}
	ok, err := s.repo.PocBelongsToCustomer(ctx, *pocID, customerID)
	if err != nil {
		return err
	}
	if !ok {
		return quoteerrors.ErrPocMismatch
	}
	return nil
}

// buildItems keeps each amount exactly as submitted; the total is their sum.
func buildItems(reqs []QuoteItemRequest) ([]QuoteItem, decimal.Decimal, error) {
	items := make([]QuoteItem, len(reqs))
	total := decimal.Zero
	for i, r := range reqs {
		if r.UnitPrice.IsNegative() || r.Quantity.IsNegative() || r.Tax.IsNegative() ||
			r.Discount.IsNegative() || r.Amount.IsNegative() {
			return nil, decimal.Zero, quoteerrors.ErrInvalidItem
		}
		items[i] = QuoteItem{
			ProductID:   r.ProductID,
			ProductName: strings.TrimSpace(r.ProductName),
			Description: r.Description,
			UnitPrice:   r.UnitPrice,
			Quantity:    r.Quantity,
			Tax:         r.Tax,
			Discount:    r.Discount,
			Amount:      r.Amount,
		}
		total = total.Add(r.Amount)
	}
	return items, total, nil
}

func applyRequest(q *Quote, req CreateQuoteRequest) {
	q.CustomerID = req.CustomerID
	q.PocID = req.PocID
	q.Title = strings.TrimSpace(req.Title)
	q.Notes = req.Notes
	q.Terms = req.Terms
	q.Approvers = dedupe(req.Approvers)

	q.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}

	q.ValidUntil = nil
	if req.ValidUntil != "" {
		if t, err := time.Parse("2006-01-02", req.ValidUntil); err == nil {
			q.ValidUntil = &t
		}
	}
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func mapToResponse(q Quote) QuoteResponse {
	approvers := []string(q.Approvers)
	if approvers == nil {
		approvers = []string{}
	}

	items := make([]QuoteItemResponse, len(q.Items))
	for i, it := range q.Items {
		items[i] = QuoteItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Tax:         it.Tax,
			Discount:    it.Discount,
			Amount:      it.Amount,
		}
	}

	res := QuoteResponse{
		ID:          q.ID,
		RefNo:       q.RefNo,
		CompanyName: q.CompanyName,
		CustomerID:  q.CustomerID,
		PocID:       q.PocID,
		Status:      q.Status,
		Title:       q.Title,
		Currency:    q.Currency,
		Notes:       q.Notes,
		Terms:       q.Terms,
		Approvers:   approvers,
		ApprovedBy:  q.ApprovedBy,
		TotalAmount: q.TotalAmount,
		PDFURL:      q.PDFURL,
		CreatedBy:   q.CreatedBy,
		CreatedAt:   q.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   q.UpdatedAt.Format(time.RFC3339),
		Items:       items,
	}
	if q.ValidUntil != nil {
		v := q.ValidUntil.Format("2006-01-02")
		res.ValidUntil = &v
	}
	if q.ApprovedAt != nil {
		v := q.ApprovedAt.Format(time.RFC3339)
		res.ApprovedAt = &v
	}
	return res
}

func buildDocument(q Quote, c *customer.Customer, logoURL string) document.Document {
	doc := document.Document{
		Title:    "Quotation",
		Number:   q.RefNo,
		Date:     q.CreatedAt,
		LogoURL:  logoURL,
		Currency: q.Currency,
		Meta:     []document.Field{{Label: "Status", Value: q.Status}},
		From:     document.Party{Heading: "From", Name: q.CompanyName},
		Notes:    q.Notes,
		Terms:    q.Terms,
	}
	if q.Title != "" {
		doc.Meta = append(doc.Meta, document.Field{Label: "Subject", Value: q.Title})
	}
	if q.ValidUntil != nil {
		doc.Meta = append(doc.Meta, document.Field{Label: "Valid Until", Value: q.ValidUntil.Format("02 Jan 2006")})
	}
	if c != nil {
		doc.To = document.Party{
			Heading: "Quote For",
			Name:    c.DisplayName(),
			Lines:   []string{c.Address, strings.TrimSpace(c.City + " " + c.PostalCode), c.Country, c.Email, c.Phone},
		}
	}

	for _, it := range q.Items {
		doc.Items = append(doc.Items, document.LineItem{
			Name:        it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Tax:         it.Tax,
			Discount:    it.Discount,
			Amount:      it.Amount,
		})
	}
	doc.Totals = []document.Field{{Label: "Total", Value: document.Money(q.Currency, q.TotalAmount)}}
	return doc
}
