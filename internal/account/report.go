package account

// report.go serializes a filtered account set into CSV text. Output is
// deterministic: fixed header, fixed column order, one row per account in
// input order. A field is quoted if and only if its raw value contains a
// comma, double quote, or newline/carriage return (RFC 4180), so output
// round-trips through any standard CSV reader.

import (
	"strings"

	"github.com/shopspring/decimal"
)

// csvHeader is the fixed export header row.
const csvHeader = "Account Number,Bank Name,Balance,Customer Name,Customer Email,Reclaim Status,Reclaim Date,Clawback Date,Comments"

// GenerateCSV renders accounts as UTF-8 CSV text, one newline per row.
// Absent values render as empty strings, never a literal "null".
func GenerateCSV(accounts []Account) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for i := range accounts {
		writeCSVRow(&b, &accounts[i])
		b.WriteByte('\n')
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, a *Account) {
	fields := []string{
		a.AccountNumber,
		a.BankName,
		renderBalance(a.Balance),
		a.CustomerName,
		a.CustomerEmail,
		renderStatus(a.ReclaimStatus),
		renderDate(a.ReclaimDate),
		renderDate(a.ClawbackDate),
		a.Comments,
	}
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(f))
	}
}

// escapeCSV wraps the field in double quotes, doubling internal quotes,
// only when the raw value requires it.
func escapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// renderBalance renders the balance at its stored scale. Decimal.String
// trims trailing zeros, which would turn 500.00 into 500; StringFixed with
// the stored exponent preserves the precision the record was created with.
func renderBalance(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

func renderStatus(s *ReclaimStatus) string {
	if s == nil {
		return ""
	}
	return string(*s)
}

func renderDate(d *Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
