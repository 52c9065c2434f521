package mongo

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecimal128RoundTrip(t *testing.T) {
	for _, in := range []string{"0", "35", "35.50", "1999.99", "0.01"} {
		d := decimal.RequireFromString(in)
		v, err := toDecimal128(d)
		if err != nil {
			t.Fatalf("toDecimal128(%s) returned error: %v", in, err)
		}
		if got := fromDecimal128(v); !got.Equal(d) {
			t.Fatalf("expected %s, got %s", d, got)
		}
	}
}
