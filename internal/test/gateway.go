package test

import (
	"context"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/usecase"
)

// GatewayStub simulates the payment provider for use case tests.
type GatewayStub struct {
	CreateIntentFn func(context.Context, payment.CreateIntentRequest) (*model.PaymentIntent, error)
	FetchIntentFn  func(context.Context, string) (*model.PaymentIntent, error)
	RefundFn       func(context.Context, payment.RefundRequest) (*model.Refund, error)

	CreatedIntents []payment.CreateIntentRequest
	Refunds        []payment.RefundRequest
}

// CreateIntent records the request and returns a pending intent.
func (s *GatewayStub) CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (*model.PaymentIntent, error) {
	s.CreatedIntents = append(s.CreatedIntents, req)
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, req)
	}
	return &model.PaymentIntent{
		Ref:      "pi_stub",
		Status:   model.OrderStatusPending,
		Amount:   req.Amount,
		Currency: req.Currency,
		Metadata: req.Metadata,
	}, nil
}

// FetchIntent returns configured provider state.
func (s *GatewayStub) FetchIntent(ctx context.Context, ref string) (*model.PaymentIntent, error) {
	if s.FetchIntentFn != nil {
		return s.FetchIntentFn(ctx, ref)
	}
	return &model.PaymentIntent{Ref: ref, Status: model.OrderStatusPaid}, nil
}

// Refund records the request and acknowledges it.
func (s *GatewayStub) Refund(ctx context.Context, req payment.RefundRequest) (*model.Refund, error) {
	s.Refunds = append(s.Refunds, req)
	if s.RefundFn != nil {
		return s.RefundFn(ctx, req)
	}
	var amount int64
	if req.Amount != nil {
		amount = *req.Amount
	}
	return &model.Refund{Ref: "re_stub", Amount: amount, Status: "succeeded"}, nil
}

var _ usecase.PaymentGateway = (*GatewayStub)(nil)
