package dto

// WebhookIntentObject is the provider payment object embedded in an event.
type WebhookIntentObject struct {
	ID            string                 `json:"id"`
	Status        string                 `json:"status"`
	Amount        int64                  `json:"amount"`
	Currency      string                 `json:"currency"`
	Metadata      map[string]string      `json:"metadata,omitempty"`
	PaymentMethod *PaymentMethodResponse `json:"payment_method,omitempty"`
}

// WebhookData wraps the event payload object.
type WebhookData struct {
	Object WebhookIntentObject `json:"object"`
}

// WebhookEvent is a provider notification delivered to the webhook endpoint.
type WebhookEvent struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}
