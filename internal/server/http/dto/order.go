package dto

import "time"

// StatusInfoResponse is the display metadata attached to an order status.
type StatusInfoResponse struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	NextSteps   string `json:"next_steps"`
}

// OrderResponse is one order row in a listing. Amount is the tax-inclusive
// total in minor units.
type OrderResponse struct {
	ID         int64              `json:"id"`
	PaymentRef string             `json:"payment_ref"`
	Amount     int64              `json:"amount"`
	Currency   string             `json:"currency"`
	Status     string             `json:"status"`
	StatusInfo StatusInfoResponse `json:"status_info"`
	Metadata   map[string]string  `json:"metadata,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// PaginationResponse is the page envelope of a listing.
type PaginationResponse struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalCount      int64 `json:"total_count"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// OrderListResponse is a page of orders.
type OrderListResponse struct {
	Orders     []OrderResponse    `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
}

// OrderItemResponse is a checkout-time line item snapshot.
type OrderItemResponse struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	ServiceSlug string `json:"service_slug,omitempty"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	LineTotal   int64  `json:"line_total"`
}

// AddressResponse is a postal snapshot attached to an order.
type AddressResponse struct {
	Company    string `json:"company,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Region     string `json:"region,omitempty"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// PaymentMethodResponse is the instrument display snapshot.
type PaymentMethodResponse struct {
	Type     string `json:"type"`
	Brand    string `json:"brand,omitempty"`
	LastFour string `json:"last_four,omitempty"`
	Label    string `json:"label,omitempty"`
}

// CustomerResponse is the owning account embedded in a detail view.
type CustomerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderDetailResponse joins an order with its checkout snapshots.
type OrderDetailResponse struct {
	OrderResponse
	Customer        *CustomerResponse      `json:"customer,omitempty"`
	BillingAddress  *AddressResponse       `json:"billing_address,omitempty"`
	ShippingAddress *AddressResponse       `json:"shipping_address,omitempty"`
	PaymentMethod   *PaymentMethodResponse `json:"payment_method,omitempty"`
	Items           []OrderItemResponse    `json:"items"`
}
