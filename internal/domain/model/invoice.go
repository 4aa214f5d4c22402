package model

import "time"

// InvoiceFinancial is the tax breakdown of an order total. All amounts are
// integers in minor units; HT plus VAT always equals TTC.
type InvoiceFinancial struct {
	SubtotalHT int64
	VATAmount  int64
	TotalTTC   int64
	VATRate    float64
	Currency   string
}

// InvoiceAmounts carries the locale-formatted counterparts of the breakdown
// for direct rendering.
type InvoiceAmounts struct {
	SubtotalHT string
	VATAmount  string
	TotalTTC   string
}

// InvoiceOrderInfo is the order header reproduced on the invoice.
type InvoiceOrderInfo struct {
	ID         int64
	PaymentRef string
	Status     OrderStatus
	StatusInfo StatusInfo
	Currency   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceView is the printable invoice projection of a paid order. It is
// derived on read and never persisted.
type InvoiceView struct {
	Number  string
	Date    time.Time
	DueDate time.Time

	Order           InvoiceOrderInfo
	Customer        *Customer
	BillingAddress  *Address
	ShippingAddress *Address
	PaymentMethod   *PaymentMethod
	Items           []OrderItem

	Financial InvoiceFinancial
	Formatted InvoiceAmounts
}
