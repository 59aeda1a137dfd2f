package store

// postgres.go is the production account.Store, backed by a pgxpool. The
// unique index on account_number is the authority for duplicate
// enforcement: SQLSTATE 23505 maps to account.ErrDuplicateKey so the core
// treats a save-time collision identically to its own pre-check.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/reclaimhq/dormant/internal/account"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

const accountColumns = `id, account_number, bank_name, balance::text,
	customer_name, customer_email, reclaim_status, reclaim_date,
	clawback_date, comments, created_at, updated_at`

// Postgres implements account.Store against a dormant_accounts table.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a store backed by the given pool.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the dormant_accounts table and its unique index if
// they do not exist. Balances use numeric(15,2); exact decimal arithmetic
// end to end.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS dormant_accounts (
	id              uuid PRIMARY KEY,
	account_number  text NOT NULL,
	bank_name       text NOT NULL,
	balance         numeric(15,2) NOT NULL CHECK (balance >= 0),
	customer_name   text,
	customer_email  text,
	reclaim_status  text,
	reclaim_date    date,
	clawback_date   date,
	comments        text,
	created_at      timestamptz NOT NULL,
	updated_at      timestamptz NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS dormant_accounts_account_number_key
	ON dormant_accounts (account_number);`

	if _, err := p.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (p *Postgres) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	created := a.Clone()
	created.ID = uuid.New()

	const q = `
INSERT INTO dormant_accounts
	(id, account_number, bank_name, balance, customer_name, customer_email,
	 reclaim_status, reclaim_date, clawback_date, comments, created_at, updated_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := p.db.Exec(ctx, q,
		created.ID.String(),
		created.AccountNumber,
		created.BankName,
		created.Balance.String(),
		nullIfEmpty(created.CustomerName),
		nullIfEmpty(created.CustomerEmail),
		statusParam(created.ReclaimStatus),
		dateParam(created.ReclaimDate),
		dateParam(created.ClawbackDate),
		nullIfEmpty(created.Comments),
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return created, nil
}

func (p *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM dormant_accounts WHERE id = $1`
	return p.scanOne(p.db.QueryRow(ctx, q, id.String()))
}

func (p *Postgres) FindByAccountNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM dormant_accounts WHERE account_number = $1`
	return p.scanOne(p.db.QueryRow(ctx, q, accountNumber))
}

func (p *Postgres) FindAll(ctx context.Context) ([]account.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM dormant_accounts ORDER BY created_at, account_number`
	rows, err := p.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (p *Postgres) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]account.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	q := `SELECT ` + accountColumns + ` FROM dormant_accounts WHERE id = ANY($1::uuid[])`
	rows, err := p.db.Query(ctx, q, idStrs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (p *Postgres) Save(ctx context.Context, a *account.Account) (*account.Account, error) {
	tag, err := p.db.Exec(ctx, saveQuery, saveArgs(a)...)
	if err != nil {
		return nil, mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, account.ErrNotFound
	}
	return a.Clone(), nil
}

func (p *Postgres) SaveAll(ctx context.Context, accounts []account.Account) ([]account.Account, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for i := range accounts {
		batch.Queue(saveQuery, saveArgs(&accounts[i])...)
	}

	results := p.db.SendBatch(ctx, batch)
	defer results.Close()

	saved := make([]account.Account, 0, len(accounts))
	for i := range accounts {
		tag, err := results.Exec()
		if err != nil {
			return nil, mapPgError(err)
		}
		if tag.RowsAffected() == 0 {
			return nil, account.ErrNotFound
		}
		saved = append(saved, *accounts[i].Clone())
	}
	return saved, nil
}

func (p *Postgres) BankSummaries(ctx context.Context) ([]account.BankSummary, error) {
	const q = `
SELECT bank_name, COUNT(*), SUM(balance)::text
FROM dormant_accounts
GROUP BY bank_name
ORDER BY bank_name`

	rows, err := p.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []account.BankSummary
	for rows.Next() {
		var s account.BankSummary
		var total string
		if err := rows.Scan(&s.BankName, &s.AccountCount, &total); err != nil {
			return nil, err
		}
		if s.TotalBalance, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total balance %q: %w", total, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

const saveQuery = `
UPDATE dormant_accounts SET
	account_number = $2,
	bank_name = $3,
	balance = $4::numeric,
	customer_name = $5,
	customer_email = $6,
	reclaim_status = $7,
	reclaim_date = $8,
	clawback_date = $9,
	comments = $10,
	updated_at = $11
WHERE id = $1`

func saveArgs(a *account.Account) []any {
	return []any{
		a.ID.String(),
		a.AccountNumber,
		a.BankName,
		a.Balance.String(),
		nullIfEmpty(a.CustomerName),
		nullIfEmpty(a.CustomerEmail),
		statusParam(a.ReclaimStatus),
		dateParam(a.ReclaimDate),
		dateParam(a.ClawbackDate),
		nullIfEmpty(a.Comments),
		a.UpdatedAt,
	}
}

// scanOne scans a single-row query result, mapping pgx.ErrNoRows to
// account.ErrNotFound.
func (p *Postgres) scanOne(row pgx.Row) (*account.Account, error) {
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanAccounts(rows pgx.Rows) ([]account.Account, error) {
	var accounts []account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		a        account.Account
		idStr    string
		balance  string
		name     *string
		email    *string
		status   *string
		reclaim  *time.Time
		clawback *time.Time
		comments *string
	)

	err := row.Scan(&idStr, &a.AccountNumber, &a.BankName, &balance,
		&name, &email, &status, &reclaim, &clawback, &comments,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if a.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse account id %q: %w", idStr, err)
	}
	if a.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	if name != nil {
		a.CustomerName = *name
	}
	if email != nil {
		a.CustomerEmail = *email
	}
	if comments != nil {
		a.Comments = *comments
	}
	if status != nil {
		if parsed, ok := account.ParseReclaimStatus(*status); ok {
			s := parsed
			a.ReclaimStatus = &s
		}
	}
	if reclaim != nil {
		d := account.DateOf(*reclaim)
		a.ReclaimDate = &d
	}
	if clawback != nil {
		d := account.DateOf(*clawback)
		a.ClawbackDate = &d
	}
	return &a, nil
}

// mapPgError translates PostgreSQL unique violations to the store's
// sentinel so the core handles save-time races like pre-check hits.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return account.ErrDuplicateKey
	}
	return err
}

// nullIfEmpty maps empty optional strings to SQL NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func statusParam(s *account.ReclaimStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func dateParam(d *account.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
