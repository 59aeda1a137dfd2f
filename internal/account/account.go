// Package account implements the dormant account lifecycle engine:
// input sanitization, payload validation, batch ingestion with
// partial-failure accounting, multi-field search, bulk status updates,
// and CSV report generation.
//
// The package has no transport or storage dependencies. Persistence is
// abstracted behind the Store interface, so any keyed store with atomic
// unique-key enforcement on account numbers can back it.
package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReclaimStatus classifies where an account sits in the reclaim workflow.
type ReclaimStatus string

const (
	StatusNone      ReclaimStatus = "NONE"
	StatusPending   ReclaimStatus = "PENDING"
	StatusCompleted ReclaimStatus = "COMPLETED"
	StatusRejected  ReclaimStatus = "REJECTED"
)

// ParseReclaimStatus converts a textual status to a ReclaimStatus.
// The second return value is false for unrecognized input.
func ParseReclaimStatus(s string) (ReclaimStatus, bool) {
	switch ReclaimStatus(s) {
	case StatusNone, StatusPending, StatusCompleted, StatusRejected:
		return ReclaimStatus(s), true
	}
	return "", false
}

// Account is a dormant bank account awaiting reclaim by its owner.
//
// AccountNumber is unique across all accounts, case-sensitive as stored.
// ReclaimStatus, ReclaimDate, and ClawbackDate are nil until back-office
// staff classify the account. Balance uses exact decimal arithmetic; no
// floating point is involved anywhere in the lifecycle.
type Account struct {
	ID            uuid.UUID       `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	Balance       decimal.Decimal `json:"balance"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
	ReclaimStatus *ReclaimStatus  `json:"reclaimStatus"`
	ReclaimDate   *Date           `json:"reclaimDate"`
	ClawbackDate  *Date           `json:"clawbackDate"`
	Comments      string          `json:"comments,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Clone returns a deep copy of the account. Pointer fields are copied so
// mutating the clone never aliases the original.
func (a *Account) Clone() *Account {
	c := *a
	if a.ReclaimStatus != nil {
		v := *a.ReclaimStatus
		c.ReclaimStatus = &v
	}
	if a.ReclaimDate != nil {
		v := *a.ReclaimDate
		c.ReclaimDate = &v
	}
	if a.ClawbackDate != nil {
		v := *a.ClawbackDate
		c.ClawbackDate = &v
	}
	return &c
}

// BankSummary is a derived, non-persisted aggregate over the live account
// set: one row per distinct bank name.
type BankSummary struct {
	BankName     string          `json:"bankName"`
	AccountCount int64           `json:"accountCount"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}
