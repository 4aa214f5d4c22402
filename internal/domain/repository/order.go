package repository

import (
	"context"

	"github.com/cyna-app/commerce/internal/domain/model"
)

// OrderFilter narrows order listings. Status is matched verbatim against the
// stored provider vocabulary; OwnerID scopes the result to one customer and
// is the authorization boundary for non-admin callers. Search matches the
// payment reference or the customer email and is reserved to admin listings.
type OrderFilter struct {
	Status  string
	OwnerID *int64
	Search  string
}

// PageRequest is a 1-based page selection.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset converts the page selection into a row offset.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderRepository describes persistence operations with orders and their
// checkout-time snapshots.
type OrderRepository interface {
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByPaymentRef(ctx context.Context, ref string) (*model.Order, error)
	GetDetail(ctx context.Context, id int64) (*model.OrderDetail, error)
	List(ctx context.Context, filter OrderFilter, page PageRequest) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) error
	ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error)
	AnnotateMetadata(ctx context.Context, orderID int64, key, value string) error
	SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
}
