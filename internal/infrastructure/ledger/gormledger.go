// Package ledger provides the GORM-backed token ledger. Balance accounts
// live in the token_accounts table keyed by (owner, mint).
package ledger

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domledger "github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	"github.com/lutrii-inc/lutrii/internal/shared/id"
)

// TransferHook is called before a transfer mutates any account. Tests use it
// to simulate a token that calls back into the system mid-settlement.
type TransferHook func(ctx context.Context, req domledger.TransferRequest) error

type GormLedger struct {
	db   *gorm.DB
	hook TransferHook
}

func NewGormLedger(database *gorm.DB) *GormLedger {
	return &GormLedger{db: database}
}

// SetTransferHook installs a pre-transfer callback. Not safe to call while
// transfers are in flight.
func (l *GormLedger) SetTransferHook(hook TransferHook) {
	l.hook = hook
}

func (l *GormLedger) EnsureAccount(ctx context.Context, owner, mint string) (string, error) {
	conn := db.FromContext(ctx, l.db)

	var existing models.TokenAccountModel
	err := conn.Where("owner = ? AND mint = ?", owner, mint).First(&existing).Error
	if err == nil {
		return existing.Address, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	now := biztime.Now()
	account := models.TokenAccountModel{
		Address:   id.ForTokenAccount(owner, mint),
		Owner:     owner,
		Mint:      mint,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&account).Error; err != nil {
		return "", err
	}
	return account.Address, nil
}

func (l *GormLedger) Balance(ctx context.Context, owner, mint string) (uint64, error) {
	account, err := l.load(ctx, owner, mint, false)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (l *GormLedger) Mint(ctx context.Context, owner, mint string, amount uint64) error {
	if amount == 0 {
		return domledger.ErrAmountZero
	}
	if _, err := l.EnsureAccount(ctx, owner, mint); err != nil {
		return err
	}
	account, err := l.load(ctx, owner, mint, true)
	if err != nil {
		return err
	}
	account.Balance += amount
	return l.save(ctx, account)
}

func (l *GormLedger) Transfer(ctx context.Context, req domledger.TransferRequest) error {
	if req.Amount == 0 {
		return domledger.ErrAmountZero
	}
	if l.hook != nil {
		if err := l.hook(ctx, req); err != nil {
			return err
		}
	}

	source, err := l.load(ctx, req.FromOwner, req.Mint, true)
	if err != nil {
		return err
	}

	switch req.Authority {
	case req.FromOwner:
		// owner moves its own funds
	case source.Delegate:
		if source.Delegate == "" {
			return domledger.ErrUnauthorizedAuthority
		}
		if source.DelegatedAmount < req.Amount {
			return domledger.ErrInsufficientDelegation
		}
		source.DelegatedAmount -= req.Amount
	default:
		return domledger.ErrUnauthorizedAuthority
	}

	if source.Balance < req.Amount {
		return domledger.ErrInsufficientFunds
	}
	source.Balance -= req.Amount

	// Self-transfer nets out; persist only the delegation change.
	if req.ToOwner == req.FromOwner {
		source.Balance += req.Amount
		return l.save(ctx, source)
	}

	if _, err := l.EnsureAccount(ctx, req.ToOwner, req.Mint); err != nil {
		return err
	}
	dest, err := l.load(ctx, req.ToOwner, req.Mint, true)
	if err != nil {
		return err
	}
	dest.Balance += req.Amount

	if err := l.save(ctx, source); err != nil {
		return err
	}
	return l.save(ctx, dest)
}

func (l *GormLedger) Approve(ctx context.Context, owner, mint, delegate string, amount uint64) error {
	account, err := l.load(ctx, owner, mint, true)
	if err != nil {
		return err
	}
	account.Delegate = delegate
	account.DelegatedAmount = amount
	return l.save(ctx, account)
}

func (l *GormLedger) Revoke(ctx context.Context, owner, mint string) error {
	account, err := l.load(ctx, owner, mint, true)
	if err != nil {
		return err
	}
	account.Delegate = ""
	account.DelegatedAmount = 0
	return l.save(ctx, account)
}

func (l *GormLedger) Delegation(ctx context.Context, owner, mint string) (string, uint64, error) {
	account, err := l.load(ctx, owner, mint, false)
	if err != nil {
		return "", 0, err
	}
	return account.Delegate, account.DelegatedAmount, nil
}

func (l *GormLedger) load(ctx context.Context, owner, mint string, forUpdate bool) (*models.TokenAccountModel, error) {
	conn := db.FromContext(ctx, l.db)
	if forUpdate && conn.Dialector.Name() != "sqlite" {
		conn = conn.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var account models.TokenAccountModel
	if err := conn.Where("owner = ? AND mint = ?", owner, mint).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domledger.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (l *GormLedger) save(ctx context.Context, account *models.TokenAccountModel) error {
	account.UpdatedAt = biztime.Now()
	return db.FromContext(ctx, l.db).Save(account).Error
}
