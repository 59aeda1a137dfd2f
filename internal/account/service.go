package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service coordinates the account lifecycle against a Store. Each public
// operation executes as one logical unit of work; the Store is the only
// shared mutable resource and the service holds no in-process cache.
type Service struct {
	store Store

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// AllAccounts returns every account, unfiltered.
func (s *Service) AllAccounts(ctx context.Context) ([]Account, error) {
	accounts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccount returns a single account by id, or ErrNotFound.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.store.FindByID(ctx, id)
}

// CreateAccount sanitizes, validates, and persists a single new record.
// The store assigns the id; CreatedAt and UpdatedAt are set here.
func (s *Service) CreateAccount(ctx context.Context, a *Account) (*Account, error) {
	a.AccountNumber = SanitizeAccountNumber(a.AccountNumber)
	a.BankName = SanitizeText(a.BankName)
	a.CustomerName = SanitizeText(a.CustomerName)
	a.CustomerEmail = SanitizeEmail(a.CustomerEmail)
	a.Comments = SanitizeText(a.Comments)

	if verr := ValidateNew(a); verr != nil {
		return nil, verr
	}

	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now

	created, err := s.store.Create(ctx, a)
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}
