// Package store provides the Account Store implementations: a Postgres
// store for production and a mutex-guarded in-memory store for tests and
// local development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reclaimhq/dormant/internal/account"
)

// Memory is an in-memory account.Store. It enforces the same contract as
// the Postgres store: case-sensitive unique account numbers, ErrNotFound
// and ErrDuplicateKey sentinels, insertion-ordered FindAll, and bank
// summaries ordered by bank name. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*account.Account
	order    []uuid.UUID
	byNumber map[string]uuid.UUID
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[uuid.UUID]*account.Account),
		byNumber: make(map[string]uuid.UUID),
	}
}

func (m *Memory) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byNumber[a.AccountNumber]; exists {
		return nil, account.ErrDuplicateKey
	}

	stored := a.Clone()
	stored.ID = uuid.New()
	m.accounts[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	m.byNumber[stored.AccountNumber] = stored.ID

	return stored.Clone(), nil
}

func (m *Memory) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	return a.Clone(), nil
}

func (m *Memory) FindByAccountNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byNumber[accountNumber]
	if !ok {
		return nil, account.ErrNotFound
	}
	return m.accounts[id].Clone(), nil
}

func (m *Memory) FindAll(ctx context.Context) ([]account.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]account.Account, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, *m.accounts[id].Clone())
	}
	return all, nil
}

func (m *Memory) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]account.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]account.Account, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			found = append(found, *a.Clone())
		}
	}
	return found, nil
}

func (m *Memory) Save(ctx context.Context, a *account.Account) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(a)
}

func (m *Memory) SaveAll(ctx context.Context, accounts []account.Account) ([]account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := make([]account.Account, 0, len(accounts))
	for i := range accounts {
		s, err := m.saveLocked(&accounts[i])
		if err != nil {
			return saved, err
		}
		saved = append(saved, *s)
	}
	return saved, nil
}

// saveLocked replaces an existing record. Callers must hold mu.
func (m *Memory) saveLocked(a *account.Account) (*account.Account, error) {
	existing, ok := m.accounts[a.ID]
	if !ok {
		return nil, account.ErrNotFound
	}

	if existing.AccountNumber != a.AccountNumber {
		if _, taken := m.byNumber[a.AccountNumber]; taken {
			return nil, account.ErrDuplicateKey
		}
		delete(m.byNumber, existing.AccountNumber)
		m.byNumber[a.AccountNumber] = a.ID
	}

	stored := a.Clone()
	m.accounts[a.ID] = stored
	return stored.Clone(), nil
}

func (m *Memory) BankSummaries(ctx context.Context) ([]account.BankSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[string]*account.BankSummary)
	for _, id := range m.order {
		a := m.accounts[id]
		s, ok := totals[a.BankName]
		if !ok {
			s = &account.BankSummary{BankName: a.BankName, TotalBalance: decimal.Zero}
			totals[a.BankName] = s
		}
		s.AccountCount++
		s.TotalBalance = s.TotalBalance.Add(a.Balance)
	}

	summaries := make([]account.BankSummary, 0, len(totals))
	for _, s := range totals {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].BankName < summaries[j].BankName
	})
	return summaries, nil
}
