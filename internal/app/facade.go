package app

import (
	"context"

	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/usecase"
)

// CommerceFacade is the single application surface consumed by the HTTP
// handlers and the reconciliation worker.
type CommerceFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	checkout *usecase.CheckoutUseCase
	invoices *usecase.InvoiceUseCase
}

func NewCommerceFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, checkout *usecase.CheckoutUseCase, invoices *usecase.InvoiceUseCase) *CommerceFacade {
	return &CommerceFacade{auth: auth, orders: orders, checkout: checkout, invoices: invoices}
}

func (f *CommerceFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *CommerceFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *CommerceFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *CommerceFacade) Checkout(ctx context.Context, owner *int64, req usecase.CheckoutRequest) (*model.Order, error) {
	return f.checkout.Checkout(ctx, owner, req)
}

func (f *CommerceFacade) Orders(ctx context.Context, userID int64, q usecase.ListQuery) ([]model.Order, model.Pagination, error) {
	return f.orders.ListForUser(ctx, userID, q)
}

func (f *CommerceFacade) AllOrders(ctx context.Context, q usecase.ListQuery) ([]model.Order, model.Pagination, error) {
	return f.orders.ListAll(ctx, q)
}

func (f *CommerceFacade) Order(ctx context.Context, requester model.Identity, orderID int64) (*model.OrderDetail, error) {
	return f.orders.Get(ctx, requester, orderID)
}

func (f *CommerceFacade) Invoice(ctx context.Context, requester model.Identity, orderID int64) (*model.InvoiceView, error) {
	return f.invoices.BuildInvoice(ctx, requester, orderID)
}

func (f *CommerceFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status, version)
}

func (f *CommerceFacade) RefundOrder(ctx context.Context, orderID int64, amount *int64, reason string) (*model.Order, error) {
	return f.orders.Refund(ctx, orderID, amount, reason)
}

func (f *CommerceFacade) AnnotateOrder(ctx context.Context, orderID int64, key, value string) error {
	return f.orders.Annotate(ctx, orderID, key, value)
}

func (f *CommerceFacade) ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error) {
	return f.orders.ApplyPaymentUpdate(ctx, update)
}

func (f *CommerceFacade) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectBatchForReconciliation(ctx, limit)
}

func (f *CommerceFacade) CheckPayment(ctx context.Context, paymentRef string) (*model.PaymentIntent, error) {
	return f.orders.CheckPayment(ctx, paymentRef)
}
