package usecase

import (
	"context"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	"github.com/cyna-app/commerce/internal/domain/model"
)

// PaymentGateway is the provider surface the use cases depend on. The HTTP
// client in adapter/payment satisfies it.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (*model.PaymentIntent, error)
	FetchIntent(ctx context.Context, ref string) (*model.PaymentIntent, error)
	Refund(ctx context.Context, req payment.RefundRequest) (*model.Refund, error)
}
