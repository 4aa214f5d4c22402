package test

import (
	"context"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, name, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Name: name, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// StatusUpdateCall records an UpdateStatus invocation.
type StatusUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
	Version int64
}

// OrderRepositoryStub allows tests to customize behaviour per method.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, model.OrderDraft) (*model.Order, error)
	GetByIDFn            func(context.Context, int64) (*model.Order, error)
	GetByPaymentRefFn    func(context.Context, string) (*model.Order, error)
	GetDetailFn          func(context.Context, int64) (*model.OrderDetail, error)
	ListFn               func(context.Context, repository.OrderFilter, repository.PageRequest) ([]model.Order, int64, error)
	UpdateStatusFn       func(context.Context, int64, model.OrderStatus, int64) error
	ApplyPaymentUpdateFn func(context.Context, model.PaymentUpdate) (*model.Order, error)
	AnnotateFn           func(context.Context, int64, string, string) error
	SelectBatchFn        func(context.Context, int) ([]model.Order, error)

	Orders      []model.Order
	Detail      *model.OrderDetail
	Drafts      []model.OrderDraft
	Updates     []StatusUpdateCall
	Applied     []model.PaymentUpdate
	Annotations map[string]string
}

// Create records the draft and returns it as a stored order.
func (s *OrderRepositoryStub) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	s.Drafts = append(s.Drafts, draft)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	return &model.Order{
		ID:         int64(len(s.Drafts)),
		PaymentRef: draft.PaymentRef,
		UserID:     draft.UserID,
		Amount:     draft.Amount,
		Currency:   draft.Currency,
		Status:     draft.Status,
		Metadata:   draft.Metadata,
		Version:    1,
	}, nil
}

// GetByID returns matched order via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByPaymentRef returns matched order via override or stored slice.
func (s *OrderRepositoryStub) GetByPaymentRef(ctx context.Context, ref string) (*model.Order, error) {
	if s.GetByPaymentRefFn != nil {
		return s.GetByPaymentRefFn(ctx, ref)
	}
	for _, o := range s.Orders {
		if o.PaymentRef == ref {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetDetail returns the configured detail or not found.
func (s *OrderRepositoryStub) GetDetail(ctx context.Context, id int64) (*model.OrderDetail, error) {
	if s.GetDetailFn != nil {
		return s.GetDetailFn(ctx, id)
	}
	if s.Detail != nil && s.Detail.ID == id {
		return s.Detail, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns the stored slice with its length as total.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter, page repository.PageRequest) ([]model.Order, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter, page)
	}
	return s.Orders, int64(len(s.Orders)), nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status, version)
	}
	s.Updates = append(s.Updates, StatusUpdateCall{OrderID: orderID, Status: status, Version: version})
	return nil
}

// ApplyPaymentUpdate records applied updates and echoes them back.
func (s *OrderRepositoryStub) ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error) {
	s.Applied = append(s.Applied, update)
	if s.ApplyPaymentUpdateFn != nil {
		return s.ApplyPaymentUpdateFn(ctx, update)
	}
	return &model.Order{
		ID:         1,
		PaymentRef: update.PaymentRef,
		UserID:     update.UserID,
		Amount:     update.Amount,
		Currency:   update.Currency,
		Status:     update.Status,
		Metadata:   update.Metadata,
		Version:    2,
	}, nil
}

// AnnotateMetadata records annotations.
func (s *OrderRepositoryStub) AnnotateMetadata(ctx context.Context, orderID int64, key, value string) error {
	if s.AnnotateFn != nil {
		return s.AnnotateFn(ctx, orderID, key, value)
	}
	if s.Annotations == nil {
		s.Annotations = make(map[string]string)
	}
	s.Annotations[key] = value
	return nil
}

// SelectBatchForReconciliation returns queued orders.
func (s *OrderRepositoryStub) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	if limit < len(s.Orders) {
		return s.Orders[:limit], nil
	}
	return s.Orders, nil
}

var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.UserRepository = (*UserRepositoryStub)(nil)
