package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	"github.com/cyna-app/commerce/internal/domain/model"
	testhelpers "github.com/cyna-app/commerce/internal/test"
)

func TestNewReconcilerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewReconciler(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, logger)
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
}

func TestReconcilerAppliesStatusChange(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: 1, PaymentRef: "pi_1", Status: model.OrderStatusPending}}},
		CheckFn: func(ctx context.Context, ref string) (*model.PaymentIntent, error) {
			return &model.PaymentIntent{Ref: ref, Status: model.OrderStatusPaid, Amount: 19900, Currency: "eur"}, nil
		},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		applied := len(facade.Updates) > 0
		facade.Unlock()
		if applied {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for reconciliation")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if facade.Updates[0].PaymentRef != "pi_1" || facade.Updates[0].Status != model.OrderStatusPaid {
		t.Fatalf("unexpected update: %+v", facade.Updates[0])
	}
}

func TestReconcilerSkipsUnchangedOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	checked := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: 1, PaymentRef: "pi_1", Status: model.OrderStatusPending}}},
		CheckFn: func(ctx context.Context, ref string) (*model.PaymentIntent, error) {
			atomic.AddInt32(&checked, 1)
			return &model.PaymentIntent{Ref: ref, Status: model.OrderStatusPending}, nil
		},
	}
	rec := NewReconciler(facade, 5*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&checked) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for provider check")
		case <-time.After(10 * time.Millisecond):
		}
	}
	rec.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Updates) != 0 {
		t.Fatalf("unchanged orders must not be rewritten, got %+v", facade.Updates)
	}
}

func TestReconcilerHandlesRateLimiting(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{
			{{ID: 1, PaymentRef: "pi_1", Status: model.OrderStatusPending}},
			{{ID: 1, PaymentRef: "pi_1", Status: model.OrderStatusPending}},
		},
		CheckFn: func(ctx context.Context, ref string) (*model.PaymentIntent, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, payment.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
			}
			return &model.PaymentIntent{Ref: ref, Status: model.OrderStatusPaid}, nil
		},
	}

	rec := NewReconciler(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		if len(facade.Updates) > 0 {
			facade.Unlock()
			break
		}
		facade.Unlock()
		select {
		case <-deadline:
			t.Fatal("timeout waiting for retry")
		case <-time.After(10 * time.Millisecond):
		}
	}
	rec.Stop()
}

func TestReconcilerToleratesUnknownIntents(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	checked := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: 1, PaymentRef: "pi_gone", Status: model.OrderStatusPending}}},
		CheckFn: func(ctx context.Context, ref string) (*model.PaymentIntent, error) {
			atomic.AddInt32(&checked, 1)
			return nil, payment.ErrIntentNotFound
		},
	}
	rec := NewReconciler(facade, 5*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&checked) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for provider check")
		case <-time.After(10 * time.Millisecond):
		}
	}
	rec.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Updates) != 0 {
		t.Fatalf("unknown intents must not produce updates, got %+v", facade.Updates)
	}
}

func TestReconcilerFallsBackToStoredAmounts(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	var captured model.PaymentUpdate
	done := make(chan struct{})
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: 1, PaymentRef: "pi_1", Amount: 19900, Currency: "eur", Status: model.OrderStatusPending}}},
		CheckFn: func(ctx context.Context, ref string) (*model.PaymentIntent, error) {
			return &model.PaymentIntent{Ref: ref, Status: model.OrderStatusPaid}, nil
		},
	}
	facade.ApplyFn = func(ctx context.Context, update model.PaymentUpdate) (*model.Order, error) {
		captured = update
		close(done)
		return &model.Order{PaymentRef: update.PaymentRef, Status: update.Status}, nil
	}

	rec := NewReconciler(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for update")
	}
	rec.Stop()

	if captured.Amount != 19900 || captured.Currency != "eur" {
		t.Fatalf("expected stored amounts preserved, got %+v", captured)
	}
}
