package dto

import "time"

// InvoiceFinancialResponse is the tax breakdown in minor units.
type InvoiceFinancialResponse struct {
	SubtotalHT int64   `json:"subtotal_ht"`
	VATAmount  int64   `json:"vat_amount"`
	TotalTTC   int64   `json:"total_ttc"`
	VATRate    float64 `json:"vat_rate"`
	Currency   string  `json:"currency"`
}

// InvoiceAmountsResponse carries locale-formatted amounts for rendering.
type InvoiceAmountsResponse struct {
	SubtotalHT string `json:"subtotal_ht"`
	VATAmount  string `json:"vat_amount"`
	TotalTTC   string `json:"total_ttc"`
}

// InvoiceOrderResponse is the order header reproduced on the invoice.
type InvoiceOrderResponse struct {
	ID         int64              `json:"id"`
	PaymentRef string             `json:"payment_ref"`
	Status     string             `json:"status"`
	StatusInfo StatusInfoResponse `json:"status_info"`
	Currency   string             `json:"currency"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// InvoiceResponse is the printable invoice projection of a paid order.
type InvoiceResponse struct {
	Number  string    `json:"number"`
	Date    time.Time `json:"date"`
	DueDate time.Time `json:"due_date"`

	Order           InvoiceOrderResponse   `json:"order"`
	Customer        *CustomerResponse      `json:"customer,omitempty"`
	BillingAddress  *AddressResponse       `json:"billing_address,omitempty"`
	ShippingAddress *AddressResponse       `json:"shipping_address,omitempty"`
	PaymentMethod   *PaymentMethodResponse `json:"payment_method,omitempty"`
	Items           []OrderItemResponse    `json:"items"`

	Financial InvoiceFinancialResponse `json:"financial"`
	Formatted InvoiceAmountsResponse   `json:"formatted"`
}
