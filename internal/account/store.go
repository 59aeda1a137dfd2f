package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Sentinel errors surfaced by Store implementations. The core treats a
// duplicate key surfaced at save time identically to a pre-check hit, so a
// concurrent ingestion race degrades to a counted per-line failure.
var (
	ErrNotFound     = errors.New("account not found")
	ErrDuplicateKey = errors.New("account number already exists")
)

// Store is the durable keyed storage the lifecycle engine runs against.
//
// Implementations must enforce account number uniqueness atomically on
// write (returning ErrDuplicateKey) and must return BankSummaries ordered
// by bank name ascending. FindByIDs silently omits ids that do not
// resolve; FindByID and FindByAccountNumber return ErrNotFound instead.
type Store interface {
	Create(ctx context.Context, a *Account) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*Account, error)
	FindAll(ctx context.Context) ([]Account, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Account, error)
	Save(ctx context.Context, a *Account) (*Account, error)
	SaveAll(ctx context.Context, accounts []Account) ([]Account, error)
	BankSummaries(ctx context.Context) ([]BankSummary, error)
}
