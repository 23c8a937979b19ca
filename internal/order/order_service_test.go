package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-cpq/internal/customer"
	mock_document "go-cpq/internal/document/mock"
	"go-cpq/internal/messaging/kafka"
	mock_kafka "go-cpq/internal/messaging/kafka/mock"
	"go-cpq/internal/order"
	ordererrors "go-cpq/internal/order/errors"
	mock_order "go-cpq/internal/order/mock"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/counter"
	mock_counter "go-cpq/internal/shared/counter/mock"
	"go-cpq/internal/shared/database/dbtest"
	mock_storage "go-cpq/internal/shared/storage/mock"
	"go-cpq/internal/shared/upload"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type deps struct {
	repo     *mock_order.MockRepository
	counters *mock_counter.MockRepository
	outbox   *mock_kafka.MockOutboxRepository
	renderer *mock_document.MockRenderer
	store    *mock_storage.MockStorage
	sql      sqlmock.Sqlmock
	svc      order.Service
}

func setup(t *testing.T) deps {
	ctrl := gomock.NewController(t)
	tx, sqlMock := dbtest.NewTx(t)
	d := deps{
		repo:     mock_order.NewMockRepository(ctrl),
		counters: mock_counter.NewMockRepository(ctrl),
		outbox:   mock_kafka.NewMockOutboxRepository(ctrl),
		renderer: mock_document.NewMockRenderer(ctrl),
		store:    mock_storage.NewMockStorage(ctrl),
		sql:      sqlMock,
	}
	d.svc = order.NewService(tx, d.repo, d.counters, d.outbox, d.renderer, d.store, "documents", "", zap.NewNop())
	return d
}

func acmeCustomer() *customer.Customer {
	return &customer.Customer{ID: 5, CompanyName: "Acme", Name: "Globex", AncillaryName: "East Wing"}
}

func gadgetRequest() order.CreateOrderRequest {
	return order.CreateOrderRequest{
		CustomerID: 5,
		OrderDate:  "2026-03-05",
		Items: []order.OrderItemRequest{{
			ProductName:  "Gadget",
			UnitPrice:    decimal.RequireFromString("19.99"),
			Quantity:     decimal.NewFromInt(3),
			TaxRate:      decimal.RequireFromString("7.5"),
			DiscountRate: decimal.NewFromInt(10),
		}},
	}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates number and prices items", func(t *testing.T) {
		d := setup(t)
		prefix := "ACME-260305-GLOBEX-EAST-WING"

		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.sql.ExpectBegin()
		d.counters.EXPECT().GetNextValue(gomock.Any(), counter.OrderNumberScope(prefix)).Return(int64(1), nil)
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *order.Order) error {
			o.ID = 11
			return nil
		})
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, "order.created", e.EventType)
			assert.Equal(t, "11", e.AggregateID)
			return nil
		})
		d.sql.ExpectCommit()

		res, err := d.svc.Create(ctx, "Acme", "u-1", gadgetRequest(), order.OrderFiles{})

		assert.NoError(t, err)
		assert.Equal(t, prefix+"-000", res.OrderNumber)
		assert.Equal(t, order.StatusPending, res.Status)
		assert.Equal(t, "2026-03-05", res.OrderDate)
		assert.True(t, res.Items[0].Subtotal.Equal(decimal.RequireFromString("59.97")))
		assert.True(t, res.Items[0].TaxAmount.Equal(decimal.RequireFromString("4.50")))
		assert.True(t, res.Items[0].DiscountAmount.Equal(decimal.RequireFromString("6.00")))
		assert.True(t, res.TotalAmount.Equal(decimal.RequireFromString("58.47")))
		assert.Equal(t, []string{}, res.AttachmentURLs)
		assert.NoError(t, d.sql.ExpectationsWereMet())
	})

	t.Run("keeps a supplied order number", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.sql.ExpectBegin()
		d.counters.EXPECT().RaiseValue(gomock.Any(), counter.OrderNumberScope("PO"), int64(7782)).Return(nil)
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.sql.ExpectCommit()

		req := gadgetRequest()
		req.OrderNumber = " PO-7781 "
		res, err := d.svc.Create(ctx, "Acme", "u-1", req, order.OrderFiles{})

		assert.NoError(t, err)
		assert.Equal(t, "PO-7781", res.OrderNumber)
	})

	t.Run("supplied number moves the prefix counter past it", func(t *testing.T) {
		d := setup(t)
		prefix := "ACME-260305-GLOBEX-EAST-WING"

		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.sql.ExpectBegin()
		d.counters.EXPECT().RaiseValue(gomock.Any(), counter.OrderNumberScope(prefix), int64(2)).Return(nil)
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.sql.ExpectCommit()

		req := gadgetRequest()
		req.OrderNumber = prefix + "-001"
		res, err := d.svc.Create(ctx, "Acme", "u-1", req, order.OrderFiles{})

		assert.NoError(t, err)
		assert.Equal(t, prefix+"-001", res.OrderNumber)
		assert.NoError(t, d.sql.ExpectationsWereMet())
	})

	t.Run("supplied number without a numeric tail reserves nothing", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.sql.ExpectBegin()
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.sql.ExpectCommit()

		req := gadgetRequest()
		req.OrderNumber = "PO/7781"
		res, err := d.svc.Create(ctx, "Acme", "u-1", req, order.OrderFiles{})

		assert.NoError(t, err)
		assert.Equal(t, "PO/7781", res.OrderNumber)
	})

	t.Run("uploads files and removes them when the insert fails", func(t *testing.T) {
		d := setup(t)
		files := order.OrderFiles{
			PerformanceBankGuarantee: &upload.File{Name: "pbg.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
			Attachments:              []upload.File{{Name: "datasheet.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
		}

		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.store.EXPECT().Upload(gomock.Any(), "documents", gomock.Any(), "application/pdf", gomock.Any()).Return("https://blob/pbg.pdf", nil)
		d.store.EXPECT().Upload(gomock.Any(), "documents", gomock.Any(), "application/pdf", gomock.Any()).Return("https://blob/datasheet.pdf", nil)
		d.sql.ExpectBegin()
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
		d.sql.ExpectRollback()
		d.store.EXPECT().Delete(gomock.Any(), "https://blob/pbg.pdf").Return(nil)
		d.store.EXPECT().Delete(gomock.Any(), "https://blob/datasheet.pdf").Return(nil)

		req := gadgetRequest()
		req.OrderNumber = "PO-1"
		_, err := d.svc.Create(ctx, "Acme", "u-1", req, files)

		assert.Error(t, err)
		assert.NoError(t, d.sql.ExpectationsWereMet())
	})

	t.Run("quote of another customer", func(t *testing.T) {
		d := setup(t)
		quoteID := uint(9)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.repo.EXPECT().QuoteCustomer(gomock.Any(), quoteID).Return(uint(6), nil)

		req := gadgetRequest()
		req.QuoteID = &quoteID
		_, err := d.svc.Create(ctx, "Acme", "u-1", req, order.OrderFiles{})

		assert.ErrorIs(t, err, ordererrors.ErrQuoteMismatch)
	})

	t.Run("contact of another customer", func(t *testing.T) {
		d := setup(t)
		pocID := uint(3)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.repo.EXPECT().PocBelongsToCustomer(gomock.Any(), pocID, uint(5)).Return(false, nil)

		req := gadgetRequest()
		req.PocID = &pocID
		_, err := d.svc.Create(ctx, "Acme", "u-1", req, order.OrderFiles{})

		assert.ErrorIs(t, err, ordererrors.ErrPocMismatch)
	})

	t.Run("customer of another company", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)

		_, err := d.svc.Create(ctx, "Initech", "u-1", gadgetRequest(), order.OrderFiles{})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unknown customer", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.Create(ctx, "Acme", "u-1", gadgetRequest(), order.OrderFiles{})
		assert.ErrorIs(t, err, ordererrors.ErrCustomerNotFound)
	})

	t.Run("delivery before order date", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)

		req := gadgetRequest()
		req.DeliveryDate = "2026-03-01"
		_, err := d.svc.Create(ctx, "Acme", "u-1", req, order.OrderFiles{})

		assert.ErrorIs(t, err, ordererrors.ErrInvalidDate)
	})

	t.Run("negative quantity", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)

		req := gadgetRequest()
		req.Items[0].Quantity = decimal.NewFromInt(-1)
		_, err := d.svc.Create(ctx, "Acme", "u-1", req, order.OrderFiles{})

		assert.ErrorIs(t, err, ordererrors.ErrInvalidItem)
	})
}

func existingOrder() *order.Order {
	pbg := "https://blob/pbg-old.pdf"
	return &order.Order{
		ID:                          11,
		OrderNumber:                 "ACME-260305-GLOBEX-000",
		CompanyName:                 "Acme",
		CustomerID:                  5,
		Status:                      order.StatusConfirmed,
		OrderDate:                   time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PerformanceBankGuaranteeURL: &pbg,
		OtherDocumentURLs:           pq.StringArray{"https://blob/a.pdf", "https://blob/b.pdf"},
		AttachmentURLs:              pq.StringArray{"https://blob/c.pdf"},
	}
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces items and files", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.store.EXPECT().Upload(gomock.Any(), "documents", gomock.Any(), "application/pdf", gomock.Any()).Return("https://blob/d.pdf", nil)
		d.sql.ExpectBegin()
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *order.Order) error {
			assert.Nil(t, o.Items)
			assert.Equal(t, "ACME-260305-GLOBEX-000", o.OrderNumber)
			return nil
		})
		d.repo.EXPECT().ReplaceItems(gomock.Any(), uint(11), gomock.Len(1)).Return(nil)
		d.sql.ExpectCommit()
		d.store.EXPECT().Delete(gomock.Any(), "https://blob/a.pdf").Return(nil)
		d.store.EXPECT().Delete(gomock.Any(), "https://blob/pbg-old.pdf").Return(nil)

		req := order.UpdateOrderRequest{
			CreateOrderRequest:             gadgetRequest(),
			RemoveOtherDocuments:           []string{"https://blob/a.pdf"},
			RemovePerformanceBankGuarantee: true,
		}
		files := order.OrderFiles{
			Attachments: []upload.File{{Name: "d.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
		}
		res, err := d.svc.Update(ctx, "Acme", 11, req, files)

		assert.NoError(t, err)
		assert.Equal(t, []string{"https://blob/b.pdf"}, res.OtherDocumentURLs)
		assert.Equal(t, []string{"https://blob/c.pdf", "https://blob/d.pdf"}, res.AttachmentURLs)
		assert.Nil(t, res.PerformanceBankGuaranteeURL)
		assert.Len(t, res.Items, 1)
		assert.NoError(t, d.sql.ExpectationsWereMet())
	})

	t.Run("order number stays as created", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.sql.ExpectBegin()
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *order.Order) error {
			assert.Equal(t, "ACME-260305-GLOBEX-000", o.OrderNumber)
			return nil
		})
		d.repo.EXPECT().ReplaceItems(gomock.Any(), uint(11), gomock.Len(1)).Return(nil)
		d.sql.ExpectCommit()

		req := order.UpdateOrderRequest{CreateOrderRequest: gadgetRequest()}
		req.OrderNumber = "HIJACKED-1"
		res, err := d.svc.Update(ctx, "Acme", 11, req, order.OrderFiles{})

		assert.NoError(t, err)
		assert.Equal(t, "ACME-260305-GLOBEX-000", res.OrderNumber)
		assert.NoError(t, d.sql.ExpectationsWereMet())
	})

	t.Run("unknown file to remove", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)

		req := order.UpdateOrderRequest{
			CreateOrderRequest:   gadgetRequest(),
			RemoveOtherDocuments: []string{"https://blob/zzz.pdf"},
		}
		_, err := d.svc.Update(ctx, "Acme", 11, req, order.OrderFiles{})

		assert.ErrorIs(t, err, ordererrors.ErrUnknownFile)
	})

	t.Run("too many attachments", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)

		files := order.OrderFiles{Attachments: make([]upload.File, order.MaxAttachments)}
		_, err := d.svc.Update(ctx, "Acme", 11, order.UpdateOrderRequest{CreateOrderRequest: gadgetRequest()}, files)

		assert.ErrorIs(t, err, ordererrors.ErrTooManyFiles)
	})

	t.Run("order of another company", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)

		_, err := d.svc.Update(ctx, "Initech", 11, order.UpdateOrderRequest{CreateOrderRequest: gadgetRequest()}, order.OrderFiles{})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	d := setup(t)
	d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
	d.repo.EXPECT().UpdateStatus(gomock.Any(), uint(11), order.StatusShipped).Return(nil)

	res, err := d.svc.UpdateStatus(context.Background(), "Acme", 11, order.UpdateOrderStatusRequest{Status: order.StatusShipped})

	assert.NoError(t, err)
	assert.Equal(t, order.StatusShipped, res.Status)
}

func TestOrderService_GetByNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByNumber(gomock.Any(), "ACME-260305-GLOBEX-000").Return(existingOrder(), nil)

		res, err := d.svc.GetByNumber(ctx, "Acme", " ACME-260305-GLOBEX-000 ")
		assert.NoError(t, err)
		assert.Equal(t, uint(11), res.ID)
	})

	t.Run("missing", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByNumber(gomock.Any(), "NOPE").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.GetByNumber(ctx, "Acme", "NOPE")
		assert.ErrorIs(t, err, ordererrors.ErrOrderNotFound)
	})
}

func TestOrderService_Delete(t *testing.T) {
	d := setup(t)
	d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
	d.repo.EXPECT().Delete(gomock.Any(), uint(11)).Return(nil)
	d.store.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(4)

	assert.NoError(t, d.svc.Delete(context.Background(), "Acme", 11))
}

func TestOrderService_RenderPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("renders", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.3"), nil)

		file, err := d.svc.RenderPDF(ctx, "Acme", 11)
		assert.NoError(t, err)
		assert.Equal(t, "order-ACME-260305-GLOBEX-000.pdf", file.FileName)
	})

	t.Run("renderer failure", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().FindByID(gomock.Any(), uint(11)).Return(existingOrder(), nil)
		d.repo.EXPECT().FindCustomer(gomock.Any(), uint(5)).Return(acmeCustomer(), nil)
		d.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		_, err := d.svc.RenderPDF(ctx, "Acme", 11)
		assert.ErrorIs(t, err, apperror.ErrDocumentRender)
	})
}
