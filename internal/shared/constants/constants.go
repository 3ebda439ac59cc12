package constants

import "time"

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Context keys
	ContextKeyAccountAddress = "account_address"
	ContextKeyRole           = "role"
	ContextKeyRequestID      = "request_id"

	// Roles carried in JWT claims
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleMerchant = "merchant"

	// Database table names
	TablePlatformStates = "platform_states"
	TableSubscriptions  = "subscriptions"
	TableMerchants      = "merchants"
	TableReviews        = "reviews"
	TableTokenAccounts  = "token_accounts"
)

// Payment engine bounds. Amounts are expressed in base units of the settlement
// token (6 decimals, 1 unit = 1_000_000).
const (
	MinFrequencySeconds = int64(3_600)      // 1 hour
	MaxFrequencySeconds = int64(31_536_000) // 1 year

	MinFeeBasisPoints = uint16(1)   // 0.01%
	MaxFeeBasisPoints = uint16(500) // 5%
	BasisPointDivisor = uint64(10_000)

	DefaultMinFee = uint64(10_000)  // 0.01 unit
	DefaultMaxFee = uint64(500_000) // 0.50 unit

	VolumeWindow = 24 * time.Hour

	MaxMerchantNameLen = 32
	MaxBusinessNameLen = 64
	MaxWebhookURLLen   = 128
	MaxCategoryLen     = 32
	MaxReviewComment   = 256
	MaxSuspendReason   = 256

	PremiumBadgeDuration = 30 * 24 * time.Hour
	PremiumBadgePrice    = uint64(50_000_000) // 50 units

	// Review sybil-resistance thresholds
	MinReviewPayments  = uint32(3)
	MinReviewTotalPaid = uint64(1_000_000) // 1 unit
	MinReviewSubAge    = 7 * 24 * time.Hour
)
