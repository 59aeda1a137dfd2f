package account

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestGenerateCSVEmpty(t *testing.T) {
	got := GenerateCSV(nil)
	want := csvHeader + "\n"
	if got != want {
		t.Errorf("GenerateCSV(nil) = %q, want header only", got)
	}
}

func TestGenerateCSV(t *testing.T) {
	pending := StatusPending
	reclaim := NewDate(2025, time.November, 3)
	clawback := NewDate(2025, time.December, 1)

	accounts := []Account{
		{
			AccountNumber: "ACC001",
			BankName:      "BankX",
			Balance:       decimal.RequireFromString("500.00"),
			CustomerName:  "John Doe",
			CustomerEmail: "john@example.com",
			ReclaimStatus: &pending,
			ReclaimDate:   &reclaim,
			ClawbackDate:  &clawback,
			Comments:      "routine case",
		},
		{
			AccountNumber: "ACC002",
			BankName:      "Bank, With Comma",
			Balance:       decimal.RequireFromString("10.5"),
			CustomerName:  `Jane "JJ" Roe`,
			Comments:      "line one\nline two",
		},
	}

	got := GenerateCSV(accounts)
	lines := strings.Split(got, "\n")

	if lines[0] != csvHeader {
		t.Errorf("header = %q, want %q", lines[0], csvHeader)
	}
	if lines[1] != "ACC001,BankX,500.00,John Doe,john@example.com,PENDING,2025-11-03,2025-12-01,routine case" {
		t.Errorf("row 1 = %q", lines[1])
	}

	// The second row has fields requiring quoting, so check it through a
	// real CSV reader instead of comparing raw text.
	r := csv.NewReader(strings.NewReader(got))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (header + 2 rows)", len(records))
	}

	row2 := records[2]
	wantRow2 := []string{"ACC002", "Bank, With Comma", "10.5", `Jane "JJ" Roe`, "", "", "", "", "line one\nline two"}
	if len(row2) != len(wantRow2) {
		t.Fatalf("row 2 has %d fields, want %d", len(row2), len(wantRow2))
	}
	for i := range wantRow2 {
		if row2[i] != wantRow2[i] {
			t.Errorf("row 2 field %d = %q, want %q", i, row2[i], wantRow2[i])
		}
	}
}

func TestGenerateCSVQuotesOnlyWhenNeeded(t *testing.T) {
	accounts := []Account{{
		AccountNumber: "ACC003",
		BankName:      "Plain Bank",
		Balance:       decimal.RequireFromString("1.00"),
	}}
	got := GenerateCSV(accounts)
	if strings.Contains(got, `"`) {
		t.Errorf("plain values must not be quoted, got %q", got)
	}
}

func TestRenderBalance(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"500.00", "500.00"},
		{"10.5", "10.5"},
		{"0", "0"},
		{"0.00", "0.00"},
		{"1234567.89", "1234567.89"},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.input)
		if got := renderBalance(d); got != tt.want {
			t.Errorf("renderBalance(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
