package account

// validate.go enforces structural and cross-field invariants on update
// payloads and new account records. Validation is a pure function of its
// input: it never touches the store and never mutates the payload.

import (
	"fmt"
	"regexp"
	"time"
)

// MaxCommentLength is the longest comment accepted after sanitization.
const MaxCommentLength = 1000

// emailRegexp is a plausibility check, not full RFC 5322 validation.
var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError reports the offending field and the reason the payload
// was rejected. It never indicates a state mutation: validation failures
// are detected before any record is touched.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// UpdatePayload is a partial update to an account. A nil field means "not
// supplied" and is left untouched on application; there is no way to clear
// a field once set. This resolves the upstream ambiguity between "absent"
// and "null" explicitly in favor of absent-as-no-op.
type UpdatePayload struct {
	ReclaimStatus *ReclaimStatus `json:"reclaimStatus"`
	ReclaimDate   *Date          `json:"reclaimDate"`
	ClawbackDate  *Date          `json:"clawbackDate"`
	Comments      *string        `json:"comments"`
}

// Validate checks the payload against all invariants. Absent fields are
// always valid. Returns nil if the payload may be applied.
func (p UpdatePayload) Validate() *ValidationError {
	return p.validateAt(time.Now())
}

func (p UpdatePayload) validateAt(now time.Time) *ValidationError {
	today := DateOf(now)

	if p.ReclaimStatus != nil {
		if _, ok := ParseReclaimStatus(string(*p.ReclaimStatus)); !ok {
			return &ValidationError{Field: "reclaimStatus", Reason: fmt.Sprintf("unknown status %q", *p.ReclaimStatus)}
		}
	}
	if p.ReclaimDate != nil && p.ReclaimDate.After(today) {
		return &ValidationError{Field: "reclaimDate", Reason: "cannot be in the future"}
	}
	if p.ClawbackDate != nil && p.ClawbackDate.After(today) {
		return &ValidationError{Field: "clawbackDate", Reason: "cannot be in the future"}
	}
	if p.ReclaimDate != nil && p.ClawbackDate != nil && p.ClawbackDate.Before(*p.ReclaimDate) {
		return &ValidationError{Field: "clawbackDate", Reason: "cannot be before reclaim date"}
	}
	if p.Comments != nil {
		if n := len([]rune(SanitizeText(*p.Comments))); n > MaxCommentLength {
			return &ValidationError{Field: "comments", Reason: fmt.Sprintf("cannot exceed %d characters", MaxCommentLength)}
		}
	}
	return nil
}

// ValidateNew checks the invariants for a record entering the system via
// ingestion or single-record creation. The account's text fields are
// expected to be sanitized already.
func ValidateNew(a *Account) *ValidationError {
	if a.AccountNumber == "" {
		return &ValidationError{Field: "accountNumber", Reason: "is required"}
	}
	if a.BankName == "" {
		return &ValidationError{Field: "bankName", Reason: "is required"}
	}
	if a.Balance.IsNegative() {
		return &ValidationError{Field: "balance", Reason: "must be non-negative"}
	}
	if a.CustomerEmail != "" && !emailRegexp.MatchString(a.CustomerEmail) {
		return &ValidationError{Field: "customerEmail", Reason: "must be a valid email address"}
	}
	classification := UpdatePayload{
		ReclaimStatus: a.ReclaimStatus,
		ReclaimDate:   a.ReclaimDate,
		ClawbackDate:  a.ClawbackDate,
	}
	if verr := classification.Validate(); verr != nil {
		return verr
	}
	if n := len([]rune(a.Comments)); n > MaxCommentLength {
		return &ValidationError{Field: "comments", Reason: fmt.Sprintf("cannot exceed %d characters", MaxCommentLength)}
	}
	return nil
}
