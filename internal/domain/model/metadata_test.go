package model

import "testing"

func TestDecodeMetadata_PromotesKnownKeys(t *testing.T) {
	raw := []byte(`{"checkout_session_id":"cs_123","service_name":"SOC Premium","plan_name":"annual","campaign":"q3"}`)
	meta, err := DecodeMetadata(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.CheckoutSessionID != "cs_123" {
		t.Fatalf("unexpected session id: %s", meta.CheckoutSessionID)
	}
	if meta.ServiceName != "SOC Premium" {
		t.Fatalf("unexpected service name: %s", meta.ServiceName)
	}
	if meta.PlanName != "annual" {
		t.Fatalf("unexpected plan name: %s", meta.PlanName)
	}
	if meta.Extra["campaign"] != "q3" {
		t.Fatalf("unexpected extra: %+v", meta.Extra)
	}
}

func TestDecodeMetadata_DropsNonStringValues(t *testing.T) {
	raw := []byte(`{"service_name":"EDR","attempts":3,"nested":{"a":1}}`)
	meta, err := DecodeMetadata(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.ServiceName != "EDR" {
		t.Fatalf("unexpected service name: %s", meta.ServiceName)
	}
	if len(meta.Extra) != 0 {
		t.Fatalf("expected non-string values dropped, got %+v", meta.Extra)
	}
}

func TestDecodeMetadata_Empty(t *testing.T) {
	meta, err := DecodeMetadata(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.CheckoutSessionID != "" || len(meta.Extra) != 0 {
		t.Fatalf("expected zero metadata, got %+v", meta)
	}
}

func TestDecodeMetadata_InvalidJSON(t *testing.T) {
	if _, err := DecodeMetadata([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestMetadata_EncodeRoundTrip(t *testing.T) {
	var meta Metadata
	meta.Annotate("checkout_session_id", "cs_42")
	meta.Annotate("refund_reason", "duplicate")

	raw, err := meta.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeMetadata(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.CheckoutSessionID != "cs_42" {
		t.Fatalf("unexpected session id: %s", decoded.CheckoutSessionID)
	}
	if decoded.Extra["refund_reason"] != "duplicate" {
		t.Fatalf("unexpected extra: %+v", decoded.Extra)
	}
}

func TestMetadata_Flatten(t *testing.T) {
	meta := Metadata{ServiceName: "Pentest", Extra: map[string]string{"note": "rush"}}
	flat := meta.Flatten()
	if flat["service_name"] != "Pentest" || flat["note"] != "rush" {
		t.Fatalf("unexpected flatten result: %+v", flat)
	}
	if _, ok := flat["checkout_session_id"]; ok {
		t.Fatal("empty known key must be omitted")
	}
}
