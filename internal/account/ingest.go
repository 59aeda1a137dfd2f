package account

// ingest.go parses a pipe-delimited account batch into records and
// persists them with per-line failure accounting. No single bad line
// aborts the batch: parse failures, negative or malformed balances, and
// duplicate account numbers are counted and skipped. Only a failure to
// read the stream itself aborts ingestion, reporting the counts
// accumulated so far.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// ingestDelimiter separates positional fields on each batch line:
// accountNumber|customerName|bankName|balance|[email]
const ingestDelimiter = "|"

// maxLineBytes bounds a single batch line. Lines are short fixed-field
// records; anything near this size is garbage input.
const maxLineBytes = 1 << 20

// IngestSummary reports the outcome of one batch ingestion. Partial
// failure is the normal, reported outcome, never an error.
type IngestSummary struct {
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
	Message      string `json:"message"`
}

// Ingest reads a pipe-delimited batch from r and persists one account per
// well-formed, non-duplicate line. The first line is a header and is
// always skipped without being counted.
func (s *Service) Ingest(ctx context.Context, r io.Reader) IngestSummary {
	var summary IngestSummary

	scanner := bufio.NewScanner(newBOMSkippingReader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	header := true
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if header {
			header = false
			continue
		}

		if err := s.ingestLine(ctx, scanner.Text()); err != nil {
			summary.FailureCount++
			slog.Debug("ingest: line rejected", "line", lineNo, "error", err)
			continue
		}
		summary.SuccessCount++
	}

	if err := scanner.Err(); err != nil {
		summary.Message = fmt.Sprintf("Error processing file: %s", err)
		return summary
	}

	summary.Message = fmt.Sprintf("Upload completed: %d accounts added, %d failed",
		summary.SuccessCount, summary.FailureCount)
	return summary
}

// ingestLine parses, sanitizes, validates, and persists a single line.
// Any returned error means the line is counted as a failure.
func (s *Service) ingestLine(ctx context.Context, line string) error {
	acc, err := parseLine(line)
	if err != nil {
		return err
	}

	// Pre-check for duplicates so the common case is reported cheaply.
	// The store's unique key is still the authority: a concurrent writer
	// can win the race, in which case Create returns ErrDuplicateKey and
	// the line fails the same way.
	if _, err := s.store.FindByAccountNumber(ctx, acc.AccountNumber); err == nil {
		return ErrDuplicateKey
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("duplicate check: %w", err)
	}

	now := s.now()
	acc.CreatedAt = now
	acc.UpdatedAt = now

	if _, err := s.store.Create(ctx, acc); err != nil {
		return err
	}
	return nil
}

// parseLine splits a batch line into positional fields and builds a
// sanitized, validated account record.
func parseLine(line string) (*Account, error) {
	parts := strings.Split(line, ingestDelimiter)
	if len(parts) < 4 {
		return nil, fmt.Errorf("expected at least 4 fields, got %d", len(parts))
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(parts[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q", strings.TrimSpace(parts[3]))
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("negative balance %q", balance)
	}

	acc := &Account{
		AccountNumber: SanitizeAccountNumber(strings.TrimSpace(parts[0])),
		CustomerName:  SanitizeText(strings.TrimSpace(parts[1])),
		BankName:      SanitizeText(strings.TrimSpace(parts[2])),
		Balance:       balance,
	}
	// Email is optional; trailing fields beyond it are ignored.
	if len(parts) > 4 {
		acc.CustomerEmail = SanitizeEmail(strings.TrimSpace(parts[4]))
	}

	if verr := ValidateNew(acc); verr != nil {
		return nil, verr
	}
	return acc, nil
}

// bomSkippingReader strips a UTF-8 byte order mark (0xEF 0xBB 0xBF) from
// the start of the stream. Batch files exported from Windows tools often
// carry one, which would otherwise corrupt the first header field.
type bomSkippingReader struct {
	reader  io.Reader
	checked bool
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{reader: r}
}

func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true

		bom := make([]byte, 3)
		n, err := io.ReadFull(b.reader, bom)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}

		head := bom[:n]
		if n == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
			head = nil
		}
		if len(head) > 0 {
			b.reader = io.MultiReader(strings.NewReader(string(head)), b.reader)
		}
	}
	return b.reader.Read(p)
}
