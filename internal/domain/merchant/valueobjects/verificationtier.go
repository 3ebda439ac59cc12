// Package valueobjects holds the merchant registry's value types.
package valueobjects

import "fmt"

// VerificationTier is a merchant's standing in the registry.
type VerificationTier string

const (
	// TierUnverified is the state of every fresh application.
	TierUnverified VerificationTier = "unverified"
	// TierVerified is granted by an admin after reviewing the application.
	TierVerified VerificationTier = "verified"
	// TierCommunity cannot be assigned manually. It is earned automatically
	// once a verified merchant's track record is good enough.
	TierCommunity VerificationTier = "community"
	// TierSuspended blocks the merchant from the payment path.
	TierSuspended VerificationTier = "suspended"
)

// ParseVerificationTier validates a raw tier string.
func ParseVerificationTier(raw string) (VerificationTier, error) {
	switch VerificationTier(raw) {
	case TierUnverified, TierVerified, TierCommunity, TierSuspended:
		return VerificationTier(raw), nil
	default:
		return "", fmt.Errorf("unknown verification tier %q", raw)
	}
}

func (t VerificationTier) String() string { return string(t) }

// IsVerified reports whether the merchant has passed admin review and is in
// good standing.
func (t VerificationTier) IsVerified() bool {
	return t == TierVerified || t == TierCommunity
}
