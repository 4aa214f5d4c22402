package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	"github.com/cyna-app/commerce/internal/domain/model"
)

// CommerceFacade exposes the subset of application functionality required by the worker.
type CommerceFacade interface {
	OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
	CheckPayment(ctx context.Context, paymentRef string) (*model.PaymentIntent, error)
	ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error)
}

// Reconciler polls the payment provider for non-final orders and applies the
// provider-asserted state. It backstops missed webhooks.
type Reconciler struct {
	facade       CommerceFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade CommerceFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.OrdersForReconciliation(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch orders for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, order)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context, order model.Order) {
	intent, err := r.facade.CheckPayment(ctx, order.PaymentRef)
	if err != nil {
		var rateLimited payment.TooManyRequestsError
		switch {
		case errors.As(err, &rateLimited):
			r.logger.Warn("payment provider rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
			time.Sleep(rateLimited.RetryAfter)
		case errors.Is(err, payment.ErrIntentNotFound):
			r.logger.Warn("payment intent unknown to provider", slog.String("payment_ref", order.PaymentRef))
		default:
			r.logger.Error("payment check failed", slog.String("payment_ref", order.PaymentRef), slog.String("error", err.Error()))
		}
		return
	}

	if intent.Status == order.Status {
		return
	}

	amount := order.Amount
	if intent.Amount > 0 {
		amount = intent.Amount
	}
	currency := order.Currency
	if intent.Currency != "" {
		currency = intent.Currency
	}

	metadata := order.Metadata
	for key, val := range intent.Metadata.Extra {
		metadata.Annotate(key, val)
	}

	if _, err := r.facade.ApplyPaymentUpdate(ctx, model.PaymentUpdate{
		PaymentRef:    order.PaymentRef,
		Status:        intent.Status,
		Amount:        amount,
		Currency:      currency,
		Metadata:      metadata,
		PaymentMethod: intent.PaymentMethod,
		UserID:        order.UserID,
	}); err != nil {
		r.logger.Error("apply payment update failed", slog.String("payment_ref", order.PaymentRef), slog.String("error", err.Error()))
	}
}
