package money

import (
	"fmt"
	"strings"
	"testing"
)

// expectedFormat builds the reference string through the same printer so the
// assertion does not depend on the exact grouping rune of the CLDR data.
func expectedFormat(units int64, cents int64, symbol string) string {
	return fmt.Sprintf("%s,%02d %s", frenchPrinter.Sprintf("%d", units), cents, symbol)
}

func TestFormatMinor_Euro(t *testing.T) {
	got := FormatMinor(1659900, "eur")
	want := expectedFormat(16599, 0, "€")
	if got != want {
		t.Fatalf("unexpected formatting: %q, want %q", got, want)
	}
}

func TestFormatMinor_Cents(t *testing.T) {
	got := FormatMinor(19907, "eur")
	if !strings.HasSuffix(got, ",07 €") {
		t.Fatalf("expected cents suffix, got %q", got)
	}
}

func TestFormatMinor_Negative(t *testing.T) {
	got := FormatMinor(-1050, "usd")
	want := "-" + expectedFormat(10, 50, "$")
	if got != want {
		t.Fatalf("unexpected formatting: %q, want %q", got, want)
	}
}

func TestFormatMinor_UnknownCurrency(t *testing.T) {
	got := FormatMinor(100, "sek")
	if !strings.HasSuffix(got, " SEK") {
		t.Fatalf("expected code fallback, got %q", got)
	}
}

func TestFormatMinor_Zero(t *testing.T) {
	got := FormatMinor(0, "gbp")
	want := expectedFormat(0, 0, "£")
	if got != want {
		t.Fatalf("unexpected formatting: %q, want %q", got, want)
	}
}
