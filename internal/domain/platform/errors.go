package platform

import "errors"

var (
	ErrAuthorityRequired        = errors.New("platform authority is required")
	ErrSettlementMintRequired   = errors.New("settlement mint is required")
	ErrFeeTooLow                = errors.New("fee basis points below minimum")
	ErrFeeTooHigh               = errors.New("fee basis points above maximum")
	ErrInvalidFeeBounds         = errors.New("min fee exceeds max fee")
	ErrSystemPaused             = errors.New("system is paused for emergency maintenance")
	ErrAlreadyPaused            = errors.New("system is already paused")
	ErrNotPaused                = errors.New("system is not paused")
	ErrDailyVolumeLimitExceeded = errors.New("daily volume limit exceeded")
	ErrArithmeticOverflow       = errors.New("arithmetic overflow")
	ErrAlreadyInitialized       = errors.New("platform is already initialized")
	ErrNotInitialized           = errors.New("platform is not initialized")
	ErrNotFound                 = errors.New("platform state not found")
)
