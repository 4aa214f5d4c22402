package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/domain/repository"
)

// CheckoutItem is one cart line at checkout time. UnitPrice is the
// tax-inclusive price in minor units.
type CheckoutItem struct {
	ServiceID   string
	ServiceName string
	ServiceSlug string
	Quantity    int32
	UnitPrice   int64
}

// CheckoutRequest describes a cart to turn into a payment intent and a
// pending order.
type CheckoutRequest struct {
	Items           []CheckoutItem
	Currency        string
	BillingAddress  *model.Address
	ShippingAddress *model.Address
	Metadata        model.Metadata
}

// CheckoutUseCase opens payment intents and persists the matching order
// snapshot.
type CheckoutUseCase struct {
	orders  repository.OrderRepository
	gateway PaymentGateway
	logger  *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, gateway PaymentGateway, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, gateway: gateway, logger: logger}
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Checkout validates the cart, opens a payment intent with the provider and
// records a pending order carrying checkout-time snapshots. A nil owner means
// an anonymous checkout.
func (u *CheckoutUseCase) Checkout(ctx context.Context, owner *int64, req CheckoutRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if !validCurrency(currency) {
		return nil, domainErrors.ErrInvalidAmount
	}

	var total int64
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, domainErrors.ErrInvalidAmount
		}
		line := model.OrderItem{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			ServiceSlug: item.ServiceSlug,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		total += line.LineTotal()
		items = append(items, line)
	}
	if total <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	intent, err := u.gateway.CreateIntent(ctx, payment.CreateIntentRequest{
		Amount:   total,
		Currency: currency,
		Metadata: req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	status := intent.Status
	if status == "" {
		status = model.OrderStatusPending
	}

	metadata := req.Metadata
	for key, val := range intent.Metadata.Extra {
		metadata.Annotate(key, val)
	}
	if intent.Metadata.CheckoutSessionID != "" {
		metadata.CheckoutSessionID = intent.Metadata.CheckoutSessionID
	}

	order, err := u.orders.Create(ctx, model.OrderDraft{
		PaymentRef:      intent.Ref,
		UserID:          owner,
		Amount:          total,
		Currency:        currency,
		Status:          status,
		Metadata:        metadata,
		Items:           items,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("checkout session opened",
		slog.Int64("order_id", order.ID),
		slog.String("payment_ref", order.PaymentRef),
		slog.Int64("amount", order.Amount),
		slog.String("currency", order.Currency),
	)
	return order, nil
}
