package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/usecase"
)

// CheckoutFacadeStub provides controllable checkout behaviour.
type CheckoutFacadeStub struct {
	CheckoutFn func(context.Context, *int64, usecase.CheckoutRequest) (*model.Order, error)
}

// Checkout delegates to the override or echoes a pending order.
func (s CheckoutFacadeStub) Checkout(ctx context.Context, owner *int64, req usecase.CheckoutRequest) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, owner, req)
	}
	var total int64
	for _, item := range req.Items {
		total += int64(item.Quantity) * item.UnitPrice
	}
	return &model.Order{ID: 1, PaymentRef: "pi_test", UserID: owner, Amount: total, Currency: req.Currency, Status: model.OrderStatusPending}, nil
}

// OrderFacadeStub provides controllable order read behaviour.
type OrderFacadeStub struct {
	OrdersFn  func(context.Context, int64, usecase.ListQuery) ([]model.Order, model.Pagination, error)
	OrderFn   func(context.Context, model.Identity, int64) (*model.OrderDetail, error)
	InvoiceFn func(context.Context, model.Identity, int64) (*model.InvoiceView, error)
}

// Orders returns predefined orders for the given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, q usecase.ListQuery) ([]model.Order, model.Pagination, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, q)
	}
	orders := []model.Order{{ID: 1, UserID: &userID, Amount: 19900, Currency: "eur", Status: model.OrderStatusPaid}}
	return orders, model.NewPagination(1, 10, 1), nil
}

// Order returns a predefined detail view.
func (s OrderFacadeStub) Order(ctx context.Context, requester model.Identity, orderID int64) (*model.OrderDetail, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, requester, orderID)
	}
	return &model.OrderDetail{Order: model.Order{ID: orderID, Amount: 19900, Currency: "eur", Status: model.OrderStatusPaid}}, nil
}

// Invoice returns a predefined invoice view.
func (s OrderFacadeStub) Invoice(ctx context.Context, requester model.Identity, orderID int64) (*model.InvoiceView, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, requester, orderID)
	}
	return &model.InvoiceView{Number: "CYNA-2026-00000001"}, nil
}

// AdminFacadeStub covers administrative endpoints.
type AdminFacadeStub struct {
	OrderFacadeStub

	AllOrdersFn    func(context.Context, usecase.ListQuery) ([]model.Order, model.Pagination, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus, int64) (*model.Order, error)
	RefundFn       func(context.Context, int64, *int64, string) (*model.Order, error)
	AnnotateFn     func(context.Context, int64, string, string) error
	CheckPaymentFn func(context.Context, string) (*model.PaymentIntent, error)
}

// AllOrders returns predefined orders across users.
func (s AdminFacadeStub) AllOrders(ctx context.Context, q usecase.ListQuery) ([]model.Order, model.Pagination, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, q)
	}
	orders := []model.Order{{ID: 1, Amount: 19900, Currency: "eur", Status: model.OrderStatusPaid}}
	return orders, model.NewPagination(1, 10, 1), nil
}

// UpdateOrderStatus delegates to the override or echoes the change.
func (s AdminFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status, version)
	}
	return &model.Order{ID: orderID, Status: status, Version: version + 1}, nil
}

// RefundOrder delegates to the override or reports a full refund.
func (s AdminFacadeStub) RefundOrder(ctx context.Context, orderID int64, amount *int64, reason string) (*model.Order, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, orderID, amount, reason)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusRefunded}, nil
}

// AnnotateOrder delegates to the override.
func (s AdminFacadeStub) AnnotateOrder(ctx context.Context, orderID int64, key, value string) error {
	if s.AnnotateFn != nil {
		return s.AnnotateFn(ctx, orderID, key, value)
	}
	return nil
}

// CheckPayment returns predefined live provider state.
func (s AdminFacadeStub) CheckPayment(ctx context.Context, paymentRef string) (*model.PaymentIntent, error) {
	if s.CheckPaymentFn != nil {
		return s.CheckPaymentFn(ctx, paymentRef)
	}
	return &model.PaymentIntent{Ref: paymentRef, Status: model.OrderStatusPaid}, nil
}

// WebhookFacadeStub records provider-asserted payment updates.
type WebhookFacadeStub struct {
	ApplyFn func(context.Context, model.PaymentUpdate) (*model.Order, error)
	Applied []model.PaymentUpdate
}

// ApplyPaymentUpdate records the update and echoes it back as an order.
func (s *WebhookFacadeStub) ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error) {
	s.Applied = append(s.Applied, update)
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, update)
	}
	return &model.Order{ID: 1, PaymentRef: update.PaymentRef, Status: update.Status}, nil
}

// CommerceFacadeStub aggregates facade dependencies for HTTP layer tests.
type CommerceFacadeStub struct {
	AuthFacadeStub
	CheckoutFacadeStub
	AdminFacadeStub
	WebhookFacadeStub
}

// PaymentUpdateCall stores information about worker ApplyPaymentUpdate calls.
type PaymentUpdateCall struct {
	PaymentRef string
	Status     model.OrderStatus
}

// WorkerFacadeStub mimics reconciler interactions with the facade.
type WorkerFacadeStub struct {
	Orders          [][]model.Order
	OrdersFn        func(context.Context, int) ([]model.Order, error)
	CheckFn         func(context.Context, string) (*model.PaymentIntent, error)
	ApplyFn         func(context.Context, model.PaymentUpdate) (*model.Order, error)
	Updates         []PaymentUpdateCall
	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersForReconciliation returns batches from the configured queue.
func (s *WorkerFacadeStub) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckPayment returns configured provider state.
func (s *WorkerFacadeStub) CheckPayment(ctx context.Context, paymentRef string) (*model.PaymentIntent, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, paymentRef)
	}
	return &model.PaymentIntent{Ref: paymentRef, Status: model.OrderStatusPaid}, nil
}

// ApplyPaymentUpdate records update requests.
func (s *WorkerFacadeStub) ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, update)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, PaymentUpdateCall{PaymentRef: update.PaymentRef, Status: update.Status})
	return &model.Order{PaymentRef: update.PaymentRef, Status: update.Status}, nil
}
