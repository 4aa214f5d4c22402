package handlers

import (
	"context"

	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (model.Identity, error)
}

// CheckoutFacade opens payment sessions.
type CheckoutFacade interface {
	Checkout(ctx context.Context, owner *int64, req usecase.CheckoutRequest) (*model.Order, error)
}

// OrderFacade encapsulates customer-facing order reads.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64, q usecase.ListQuery) ([]model.Order, model.Pagination, error)
	Order(ctx context.Context, requester model.Identity, orderID int64) (*model.OrderDetail, error)
	Invoice(ctx context.Context, requester model.Identity, orderID int64) (*model.InvoiceView, error)
}

// AdminFacade covers the administrative order surface.
type AdminFacade interface {
	AllOrders(ctx context.Context, q usecase.ListQuery) ([]model.Order, model.Pagination, error)
	Order(ctx context.Context, requester model.Identity, orderID int64) (*model.OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) (*model.Order, error)
	RefundOrder(ctx context.Context, orderID int64, amount *int64, reason string) (*model.Order, error)
	AnnotateOrder(ctx context.Context, orderID int64, key, value string) error
	CheckPayment(ctx context.Context, paymentRef string) (*model.PaymentIntent, error)
}

// WebhookFacade applies provider-asserted payment state.
type WebhookFacade interface {
	ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error)
}

// CommerceFacade aggregates the full set of operations used across handlers.
type CommerceFacade interface {
	AuthFacade
	CheckoutFacade
	OrderFacade
	AdminFacade
	WebhookFacade
}

// HealthChecker reports storage liveness for the health endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
