package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := ForSubscription("payer", "merchant", "usdc")
		b := ForSubscription("payer", "merchant", "usdc")
		assert.Equal(t, a, b)
	})

	t.Run("distinct inputs give distinct addresses", func(t *testing.T) {
		a := ForSubscription("payer", "merchant", "usdc")
		b := ForSubscription("payer", "merchant2", "usdc")
		assert.NotEqual(t, a, b)
	})

	t.Run("seed boundaries are unambiguous", func(t *testing.T) {
		a := Derive(PrefixSubscription, "subscription", "ab", "c")
		b := Derive(PrefixSubscription, "subscription", "a", "bc")
		assert.NotEqual(t, a, b)
	})

	t.Run("prefix and length", func(t *testing.T) {
		addr := ForMerchant("owner")
		assert.True(t, strings.HasPrefix(addr, "mcht_"))
		assert.Len(t, addr, len("mcht_")+22)
	})

	t.Run("base62 alphabet only", func(t *testing.T) {
		addr := ForReview("mcht_x", "payer")
		body := strings.TrimPrefix(addr, "rev_")
		for _, c := range body {
			assert.Contains(t, base62Chars, string(c))
		}
	})
}
