package model

import "encoding/json"

// Metadata is the typed view of the provider's free-form key/value blob.
// Known keys are promoted to struct fields; everything else is kept verbatim
// in Extra so provider-specific data survives round trips.
type Metadata struct {
	CheckoutSessionID string
	ServiceName       string
	PlanName          string
	Extra             map[string]string
}

const (
	metaKeyCheckoutSession = "checkout_session_id"
	metaKeyServiceName     = "service_name"
	metaKeyPlanName        = "plan_name"
)

// DecodeMetadata parses a stored JSON blob. Non-string values are dropped:
// the provider contract is string-to-string metadata, anything else is
// noise from an older writer.
func DecodeMetadata(raw []byte) (Metadata, error) {
	var m Metadata
	if len(raw) == 0 {
		return m, nil
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return m, err
	}

	for key, val := range generic {
		str, ok := val.(string)
		if !ok {
			continue
		}
		switch key {
		case metaKeyCheckoutSession:
			m.CheckoutSessionID = str
		case metaKeyServiceName:
			m.ServiceName = str
		case metaKeyPlanName:
			m.PlanName = str
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			m.Extra[key] = str
		}
	}
	return m, nil
}

// Encode flattens the metadata back into the stored JSON shape.
func (m Metadata) Encode() ([]byte, error) {
	flat := make(map[string]string, len(m.Extra)+3)
	for k, v := range m.Extra {
		flat[k] = v
	}
	if m.CheckoutSessionID != "" {
		flat[metaKeyCheckoutSession] = m.CheckoutSessionID
	}
	if m.ServiceName != "" {
		flat[metaKeyServiceName] = m.ServiceName
	}
	if m.PlanName != "" {
		flat[metaKeyPlanName] = m.PlanName
	}
	return json.Marshal(flat)
}

// Flatten returns the metadata as a plain map, known keys included.
func (m Metadata) Flatten() map[string]string {
	flat := make(map[string]string, len(m.Extra)+3)
	for k, v := range m.Extra {
		flat[k] = v
	}
	if m.CheckoutSessionID != "" {
		flat[metaKeyCheckoutSession] = m.CheckoutSessionID
	}
	if m.ServiceName != "" {
		flat[metaKeyServiceName] = m.ServiceName
	}
	if m.PlanName != "" {
		flat[metaKeyPlanName] = m.PlanName
	}
	return flat
}

// Annotate sets a free-form key, keeping known keys typed.
func (m *Metadata) Annotate(key, value string) {
	switch key {
	case metaKeyCheckoutSession:
		m.CheckoutSessionID = value
	case metaKeyServiceName:
		m.ServiceName = value
	case metaKeyPlanName:
		m.PlanName = value
	default:
		if m.Extra == nil {
			m.Extra = make(map[string]string)
		}
		m.Extra[key] = value
	}
}
