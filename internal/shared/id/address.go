// Package id derives stable account addresses. An address is a keyed hash of
// a domain tag plus its seed values, so the same inputs always resolve to the
// same address and two distinct inputs cannot collide in practice.
package id

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
)

const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// addressLen is the number of base62 characters after the prefix.
// 22 characters over a 62 symbol alphabet carry ~131 bits of the digest.
const addressLen = 22

// derivationKey namespaces address derivation. It is a protocol constant,
// not a secret: addresses must be reproducible by every deployment.
var derivationKey = []byte("lutrii/address/v1")

// Address prefixes, one per account kind.
const (
	PrefixSubscription = "sub"
	PrefixMerchant     = "mcht"
	PrefixReview       = "rev"
	PrefixTokenAccount = "acct"
	PrefixPlatform     = "plat"
)

// Derive computes the address for the given tag and seeds.
// The result is prefix + "_" + base62(HMAC-SHA256(tag || seeds)).
func Derive(prefix, tag string, seeds ...string) string {
	mac := hmac.New(sha256.New, derivationKey)
	mac.Write([]byte(tag))
	for _, s := range seeds {
		mac.Write([]byte{0x00})
		mac.Write([]byte(s))
	}
	sum := mac.Sum(nil)

	var b strings.Builder
	b.Grow(len(prefix) + 1 + addressLen)
	b.WriteString(prefix)
	b.WriteByte('_')

	// Interpret the digest as a big-endian integer and emit base62 digits.
	digits := make([]byte, 0, addressLen)
	num := new256(sum)
	for i := 0; i < addressLen; i++ {
		digits = append(digits, base62Chars[num.divMod62()])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
	}
	return b.String()
}

// ForSubscription derives the address of the subscription between a payer and
// a merchant for a given settlement mint.
func ForSubscription(payer, merchant, mint string) string {
	return Derive(PrefixSubscription, "subscription", payer, merchant, mint)
}

// ForMerchant derives the address of a merchant's registry entry.
func ForMerchant(authority string) string {
	return Derive(PrefixMerchant, "merchant", authority)
}

// ForReview derives the address of a reviewer's review of a merchant.
// One reviewer gets exactly one review slot per merchant.
func ForReview(merchant, reviewer string) string {
	return Derive(PrefixReview, "review", merchant, reviewer)
}

// ForTokenAccount derives the address of an owner's balance account for a mint.
func ForTokenAccount(owner, mint string) string {
	return Derive(PrefixTokenAccount, "token-account", owner, mint)
}

// ForPlatform derives the singleton platform state address.
func ForPlatform() string {
	return Derive(PrefixPlatform, "platform")
}

// uint256 supports the repeated divide-by-62 used for base62 rendering.
type uint256 struct {
	words [4]uint64
}

func new256(sum []byte) *uint256 {
	var n uint256
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			n.words[i] = n.words[i]<<8 | uint64(sum[i*8+j])
		}
	}
	return &n
}

func (n *uint256) divMod62() uint64 {
	var rem uint64
	for i := 0; i < 4; i++ {
		// Long division word by word; rem < 62 so the shifted value fits
		// in 70 bits processed as two 35-bit halves.
		hi := rem<<32 | n.words[i]>>32
		qHi := hi / 62
		rem = hi % 62
		lo := rem<<32 | n.words[i]&0xFFFFFFFF
		qLo := lo / 62
		rem = lo % 62
		n.words[i] = qHi<<32 | qLo
	}
	return rem
}
