package dto

// UpdateStatusRequest changes an order status under optimistic concurrency.
// Version must match the currently stored row version.
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Version int64  `json:"version"`
}

// RefundRequest triggers a provider refund. A missing amount means a full
// refund.
type RefundRequest struct {
	Amount *int64 `json:"amount,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// AnnotateRequest attaches a metadata key to an order.
type AnnotateRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ProviderStateResponse is the live provider view of a payment, attached
// best-effort to admin detail reads.
type ProviderStateResponse struct {
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// AdminOrderDetailResponse is the detail view plus live provider state when
// the provider is reachable.
type AdminOrderDetailResponse struct {
	OrderDetailResponse
	Provider *ProviderStateResponse `json:"provider,omitempty"`
}
