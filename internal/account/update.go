package account

// update.go applies partial-update payloads to one or many accounts. The
// payload is validated once, before any record is touched: an invalid
// payload rejects the whole call with no partial application. Application
// follows a full reload-validate-save cycle per call, so concurrent
// writers never corrupt a row; one writer's update may still be wholly
// overwritten by another's later save (last write wins per record).

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UpdateAccount applies payload to a single account. Returns ErrNotFound
// if the id does not resolve, or a *ValidationError if the payload is
// invalid.
func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, payload UpdatePayload) (*Account, error) {
	if verr := payload.Validate(); verr != nil {
		return nil, verr
	}

	acc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.applyPayload(acc, payload)

	saved, err := s.store.Save(ctx, acc)
	if err != nil {
		return nil, fmt.Errorf("save account %s: %w", id, err)
	}
	return saved, nil
}

// BulkUpdate applies payload to every resolvable id and returns the count
// actually updated. Ids that do not resolve are silently skipped, so the
// count may be smaller than len(ids).
func (s *Service) BulkUpdate(ctx context.Context, ids []uuid.UUID, payload UpdatePayload) (int, error) {
	if verr := payload.Validate(); verr != nil {
		return 0, verr
	}

	accounts, err := s.store.FindByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("resolve accounts: %w", err)
	}

	for i := range accounts {
		s.applyPayload(&accounts[i], payload)
	}

	saved, err := s.store.SaveAll(ctx, accounts)
	if err != nil {
		// Durability of any subset applied before the failure is the
		// store's concern; the core does not invent transactional
		// semantics the store does not provide.
		return 0, fmt.Errorf("save accounts: %w", err)
	}
	return len(saved), nil
}

// applyPayload copies the supplied fields onto the account, leaving absent
// fields untouched, and refreshes UpdatedAt. Comments are sanitized here,
// the single point where they enter a record.
func (s *Service) applyPayload(a *Account, p UpdatePayload) {
	if p.ReclaimStatus != nil {
		v := *p.ReclaimStatus
		a.ReclaimStatus = &v
	}
	if p.ReclaimDate != nil {
		v := *p.ReclaimDate
		a.ReclaimDate = &v
	}
	if p.ClawbackDate != nil {
		v := *p.ClawbackDate
		a.ClawbackDate = &v
	}
	if p.Comments != nil {
		a.Comments = SanitizeText(*p.Comments)
	}
	a.UpdatedAt = s.now()
}
