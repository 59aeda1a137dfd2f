package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reclaimhq/dormant/internal/account"
)

func newAccount(number, bank, balance string) *account.Account {
	return &account.Account{
		AccountNumber: number,
		BankName:      bank,
		Balance:       decimal.RequireFromString(balance),
	}
}

func TestMemoryCreateAndFind(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.Create(ctx, newAccount("ACC001", "BankX", "500.00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create() did not assign an id")
	}

	byID, err := m.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID.AccountNumber != "ACC001" {
		t.Errorf("FindByID().AccountNumber = %q", byID.AccountNumber)
	}

	byNumber, err := m.FindByAccountNumber(ctx, "ACC001")
	if err != nil {
		t.Fatalf("FindByAccountNumber() error = %v", err)
	}
	if byNumber.ID != created.ID {
		t.Errorf("FindByAccountNumber().ID = %s, want %s", byNumber.ID, created.ID)
	}
}

func TestMemoryCreateDuplicate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Create(ctx, newAccount("ACC001", "BankX", "1.00")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := m.Create(ctx, newAccount("ACC001", "BankY", "2.00"))
	if !errors.Is(err, account.ErrDuplicateKey) {
		t.Errorf("Create() error = %v, want ErrDuplicateKey", err)
	}

	// Account numbers are case-sensitive: a different case is a new key.
	if _, err := m.Create(ctx, newAccount("acc001", "BankY", "2.00")); err != nil {
		t.Errorf("Create() with different case error = %v", err)
	}
}

func TestMemoryFindMissing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.FindByID(ctx, uuid.New()); !errors.Is(err, account.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
	if _, err := m.FindByAccountNumber(ctx, "NOPE"); !errors.Is(err, account.ErrNotFound) {
		t.Errorf("FindByAccountNumber() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryFindAllInsertionOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, num := range []string{"C", "A", "B"} {
		if _, err := m.Create(ctx, newAccount(num, "BankX", "1.00")); err != nil {
			t.Fatalf("Create(%s) error = %v", num, err)
		}
	}

	all, err := m.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	got := []string{all[0].AccountNumber, all[1].AccountNumber, all[2].AccountNumber}
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FindAll() order = %v, want %v", got, want)
		}
	}
}

func TestMemoryFindByIDsOmitsMissing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.Create(ctx, newAccount("ACC001", "BankX", "1.00"))
	b, _ := m.Create(ctx, newAccount("ACC002", "BankX", "1.00"))

	found, err := m.FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New(), b.ID})
	if err != nil {
		t.Fatalf("FindByIDs() error = %v", err)
	}
	if len(found) != 2 {
		t.Errorf("FindByIDs() returned %d accounts, want 2", len(found))
	}
}

func TestMemorySave(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, _ := m.Create(ctx, newAccount("ACC001", "BankX", "1.00"))

	created.Comments = "updated"
	saved, err := m.Save(ctx, created)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Comments != "updated" {
		t.Errorf("Save().Comments = %q", saved.Comments)
	}

	missing := newAccount("ACC999", "BankX", "1.00")
	missing.ID = uuid.New()
	if _, err := m.Save(ctx, missing); !errors.Is(err, account.ErrNotFound) {
		t.Errorf("Save() of unknown id error = %v, want ErrNotFound", err)
	}
}

func TestMemorySaveAccountNumberChange(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.Create(ctx, newAccount("ACC001", "BankX", "1.00"))
	if _, err := m.Create(ctx, newAccount("ACC002", "BankX", "1.00")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Renaming onto a taken number must fail.
	a.AccountNumber = "ACC002"
	if _, err := m.Save(ctx, a); !errors.Is(err, account.ErrDuplicateKey) {
		t.Fatalf("Save() onto taken number error = %v, want ErrDuplicateKey", err)
	}

	// Renaming onto a free number remaps the unique index.
	a.AccountNumber = "ACC003"
	if _, err := m.Save(ctx, a); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := m.FindByAccountNumber(ctx, "ACC001"); !errors.Is(err, account.ErrNotFound) {
		t.Errorf("old number still resolves after rename")
	}
	if _, err := m.FindByAccountNumber(ctx, "ACC003"); err != nil {
		t.Errorf("new number does not resolve: %v", err)
	}
}

func TestMemoryClonesDoNotAlias(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, _ := m.Create(ctx, newAccount("ACC001", "BankX", "1.00"))

	// Mutating the returned copy must not leak into the store.
	created.BankName = "Tampered"
	stored, err := m.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.BankName != "BankX" {
		t.Errorf("store aliased a returned copy: BankName = %q", stored.BankName)
	}
}

func TestMemoryBankSummaries(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	seed := []*account.Account{
		newAccount("ACC001", "BankY", "10.00"),
		newAccount("ACC002", "BankX", "500.00"),
		newAccount("ACC003", "BankX", "300.00"),
	}
	for _, a := range seed {
		if _, err := m.Create(ctx, a); err != nil {
			t.Fatalf("Create(%s) error = %v", a.AccountNumber, err)
		}
	}

	summaries, err := m.BankSummaries(ctx)
	if err != nil {
		t.Fatalf("BankSummaries() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].BankName != "BankX" || summaries[1].BankName != "BankY" {
		t.Errorf("summaries not ordered by bank name: %+v", summaries)
	}
	if summaries[0].AccountCount != 2 || !summaries[0].TotalBalance.Equal(decimal.RequireFromString("800.00")) {
		t.Errorf("BankX summary = %+v", summaries[0])
	}
}

func TestMemoryConcurrentCreates(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	dupes := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Create(ctx, newAccount("SHARED", "BankX", "1.00"))
			dupes <- err
		}()
	}
	wg.Wait()
	close(dupes)

	var ok, dup int
	for err := range dupes {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, account.ErrDuplicateKey):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != writers-1 {
		t.Errorf("got %d successes and %d duplicates, want 1 and %d", ok, dup, writers-1)
	}
}
