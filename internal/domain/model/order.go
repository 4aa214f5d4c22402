package model

import "time"

// Order is a denormalized snapshot of a payment captured by the external
// provider. Amount is the tax-inclusive total in minor currency units
// (cents); Currency is a lowercase ISO code. Anonymous orders carry a nil
// UserID.
type Order struct {
	ID         int64
	PaymentRef string
	UserID     *int64
	Amount     int64
	Currency   string
	Status     OrderStatus
	Metadata   Metadata
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is a line-item snapshot taken at checkout time. UnitPrice is in
// minor units.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ServiceID   string
	ServiceName string
	ServiceSlug string
	Quantity    int32
	UnitPrice   int64
}

// LineTotal is quantity times unit price, in minor units.
func (i OrderItem) LineTotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// OrderDraft describes a new order to persist when a checkout session is
// initiated. Addresses and items are copied, not referenced, so later edits
// do not alter historical invoices.
type OrderDraft struct {
	PaymentRef      string
	UserID          *int64
	Amount          int64
	Currency        string
	Status          OrderStatus
	Metadata        Metadata
	Items           []OrderItem
	BillingAddress  *Address
	ShippingAddress *Address
}

// PaymentUpdate is a provider-asserted state change, delivered by webhook or
// collected by the reconciliation worker. It is applied last-write-wins.
type PaymentUpdate struct {
	PaymentRef    string
	Status        OrderStatus
	Amount        int64
	Currency      string
	Metadata      Metadata
	PaymentMethod *PaymentMethod
	UserID        *int64
}

// OrderDetail joins an order with its owning customer and the snapshots
// recorded at checkout.
type OrderDetail struct {
	Order
	Customer        *Customer
	BillingAddress  *Address
	ShippingAddress *Address
	PaymentMethod   *PaymentMethod
	Items           []OrderItem
}
