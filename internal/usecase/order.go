package usecase

import (
	"context"
	"log/slog"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/domain/repository"
)

// ListQuery is a raw listing request coming from the transport layer. Page
// and Limit are normalized against configured bounds before hitting storage.
type ListQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// OrderUseCase covers listing, detail reads and status mutations of orders.
type OrderUseCase struct {
	orders       repository.OrderRepository
	gateway      PaymentGateway
	logger       *slog.Logger
	defaultLimit int
	maxLimit     int
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, gateway PaymentGateway, logger *slog.Logger, defaultLimit, maxLimit int) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		gateway:      gateway,
		logger:       logger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (u *OrderUseCase) normalize(q ListQuery) repository.PageRequest {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = u.defaultLimit
	}
	if limit > u.maxLimit {
		limit = u.maxLimit
	}
	return repository.PageRequest{Page: page, Limit: limit}
}

// ListForUser returns the caller's own orders, newest first. Search is an
// admin-only facility and is ignored here.
func (u *OrderUseCase) ListForUser(ctx context.Context, userID int64, q ListQuery) ([]model.Order, model.Pagination, error) {
	page := u.normalize(q)
	filter := repository.OrderFilter{Status: q.Status, OwnerID: &userID}

	items, total, err := u.orders.List(ctx, filter, page)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return items, model.NewPagination(page.Page, page.Limit, total), nil
}

// ListAll returns orders across all customers, with optional status filter
// and payment-ref or email search.
func (u *OrderUseCase) ListAll(ctx context.Context, q ListQuery) ([]model.Order, model.Pagination, error) {
	page := u.normalize(q)
	filter := repository.OrderFilter{Status: q.Status, Search: q.Search}

	items, total, err := u.orders.List(ctx, filter, page)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return items, model.NewPagination(page.Page, page.Limit, total), nil
}

// Get returns the full order detail. Non-admin callers may only read their
// own orders; ownership is checked before any snapshot data is returned.
func (u *OrderUseCase) Get(ctx context.Context, requester model.Identity, orderID int64) (*model.OrderDetail, error) {
	detail, err := u.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() {
		if detail.UserID == nil || *detail.UserID != requester.UserID {
			return nil, domainErrors.ErrForbidden
		}
	}
	return detail, nil
}

// UpdateStatus performs an optimistic-concurrency status change. Orders in a
// final state reject any transition.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) (*model.Order, error) {
	current, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status.Immutable() {
		return nil, domainErrors.ErrOrderImmutable
	}

	if err := u.orders.UpdateStatus(ctx, orderID, status, version); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, orderID)
}

// Refund returns money for a paid order via the provider. A nil amount means
// a full refund; a partial amount must stay within the captured total.
func (u *OrderUseCase) Refund(ctx context.Context, orderID int64, amount *int64, reason string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status.Canonical() {
	case model.OrderStatusPaid, model.OrderStatusPartiallyRefunded:
	default:
		return nil, domainErrors.ErrOrderNotPaid
	}

	full := amount == nil
	if amount != nil {
		if *amount <= 0 || *amount > order.Amount {
			return nil, domainErrors.ErrInvalidAmount
		}
		full = *amount == order.Amount
	}

	refund, err := u.gateway.Refund(ctx, payment.RefundRequest{
		PaymentRef: order.PaymentRef,
		Amount:     amount,
		Reason:     reason,
	})
	if err != nil {
		return nil, err
	}

	status := model.OrderStatusPartiallyRefunded
	if full {
		status = model.OrderStatusRefunded
	}
	u.logger.Info("order refunded",
		slog.Int64("order_id", order.ID),
		slog.String("refund_ref", refund.Ref),
		slog.Int64("amount", refund.Amount),
		slog.Bool("full", full),
	)

	return u.orders.ApplyPaymentUpdate(ctx, model.PaymentUpdate{
		PaymentRef: order.PaymentRef,
		Status:     status,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Metadata:   order.Metadata,
	})
}

// ApplyPaymentUpdate records a provider-asserted payment state, creating the
// order if the reference was never seen. Unknown status values are stored
// verbatim and logged for operators.
func (u *OrderUseCase) ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error) {
	if !update.Status.Known() {
		u.logger.Warn("unknown provider status",
			slog.String("payment_ref", update.PaymentRef),
			slog.String("status", string(update.Status)),
		)
	}
	return u.orders.ApplyPaymentUpdate(ctx, update)
}

// Annotate attaches a metadata key to an order. Allowed even on orders in a
// final state.
func (u *OrderUseCase) Annotate(ctx context.Context, orderID int64, key, value string) error {
	return u.orders.AnnotateMetadata(ctx, orderID, key, value)
}

// CheckPayment asks the provider for the current state of an order's intent.
func (u *OrderUseCase) CheckPayment(ctx context.Context, paymentRef string) (*model.PaymentIntent, error) {
	return u.gateway.FetchIntent(ctx, paymentRef)
}

// SelectBatchForReconciliation picks non-final orders for the background
// reconciliation sweep.
func (u *OrderUseCase) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectBatchForReconciliation(ctx, limit)
}
