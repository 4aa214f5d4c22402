package model

// PaymentMethod is a display snapshot of the instrument used to pay an
// order, reported by the provider. Never the full card data.
type PaymentMethod struct {
	Type     string
	Brand    string
	LastFour string
	Label    string
}

// PaymentIntent is the provider-side payment state for an order reference.
type PaymentIntent struct {
	Ref           string
	Status        OrderStatus
	Amount        int64
	Currency      string
	Metadata      Metadata
	PaymentMethod *PaymentMethod
}

// Refund describes the outcome of a provider refund call.
type Refund struct {
	Ref    string
	Amount int64
	Status string
}
