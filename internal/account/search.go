package account

// search.go builds filtered views over the store. Matching happens
// in-process against the full account set: the store only contributes
// FindAll and the grouped bank summaries.

import (
	"context"
	"fmt"
	"strings"
)

// Search returns accounts whose account number, bank name, customer name,
// or customer email contains term, case-insensitively. A blank term
// returns every account. The term is sanitized before matching so search
// input cannot widen or break the substring match.
func (s *Service) Search(ctx context.Context, term string) ([]Account, error) {
	accounts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}

	if strings.TrimSpace(term) == "" {
		return accounts, nil
	}

	needle := strings.ToLower(SanitizeSearchTerm(term))
	matched := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if matchesTerm(&a, needle) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// Filters narrows an account set for report export. Zero values are
// no-ops; provided filters combine with AND.
type Filters struct {
	// SearchTerm uses the same any-field substring semantics as Search.
	SearchTerm string
	// BankName filters on exact, case-insensitive bank name equality.
	BankName string
	// Status filters on exact reclaim status equality. Unclassified
	// accounts (nil status) never match a status filter.
	Status *ReclaimStatus
}

// ApplyFilters returns the accounts passing every provided filter.
func (s *Service) ApplyFilters(ctx context.Context, f Filters) ([]Account, error) {
	accounts, err := s.Search(ctx, f.SearchTerm)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(f.BankName) != "" {
		filtered := accounts[:0:0]
		for _, a := range accounts {
			if strings.EqualFold(a.BankName, f.BankName) {
				filtered = append(filtered, a)
			}
		}
		accounts = filtered
	}

	if f.Status != nil {
		filtered := accounts[:0:0]
		for _, a := range accounts {
			if a.ReclaimStatus != nil && *a.ReclaimStatus == *f.Status {
				filtered = append(filtered, a)
			}
		}
		accounts = filtered
	}

	return accounts, nil
}

// BankSummaries returns one aggregate per distinct bank name, ordered by
// bank name ascending. Summaries are recomputed from the live account set
// on every call; nothing is cached.
func (s *Service) BankSummaries(ctx context.Context) ([]BankSummary, error) {
	summaries, err := s.store.BankSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("bank summaries: %w", err)
	}
	return summaries, nil
}

// matchesTerm reports whether any searchable field contains needle.
// needle must already be lowercased.
func matchesTerm(a *Account, needle string) bool {
	for _, field := range []string{a.AccountNumber, a.BankName, a.CustomerName, a.CustomerEmail} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
