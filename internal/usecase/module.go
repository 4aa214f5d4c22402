package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	"github.com/cyna-app/commerce/internal/config"
	"github.com/cyna-app/commerce/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	func(g payment.Gateway) PaymentGateway { return g },
	NewAuthUseCase,
	NewCheckoutUseCase,
	newOrderUseCase,
	newInvoiceUseCase,
)

func newOrderUseCase(orders repository.OrderRepository, gateway PaymentGateway, logger *slog.Logger, cfg *config.Config) *OrderUseCase {
	return NewOrderUseCase(orders, gateway, logger, cfg.DefaultPageLimit, cfg.MaxPageLimit)
}

func newInvoiceUseCase(orders repository.OrderRepository, cfg *config.Config) *InvoiceUseCase {
	return NewInvoiceUseCase(orders, cfg.VATRate)
}
