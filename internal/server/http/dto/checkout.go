package dto

// CheckoutItemRequest is one cart line. UnitPrice is tax-inclusive, in minor
// units.
type CheckoutItemRequest struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	ServiceSlug string `json:"service_slug"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// CheckoutRequest opens a payment session for a cart.
type CheckoutRequest struct {
	Items           []CheckoutItemRequest `json:"items"`
	Currency        string                `json:"currency"`
	BillingAddress  *AddressResponse      `json:"billing_address,omitempty"`
	ShippingAddress *AddressResponse      `json:"shipping_address,omitempty"`
	Metadata        map[string]string     `json:"metadata,omitempty"`
}

// CheckoutResponse reports the created order and its payment reference.
type CheckoutResponse struct {
	OrderID    int64  `json:"order_id"`
	PaymentRef string `json:"payment_ref"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}
