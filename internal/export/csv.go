// Package export writes ledger records for the storage backend to pick up.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Header is the CSV header for exported ledger records.
const Header = "reference,type,amount,description,occurred_at,source_note,account_id,category_id"

const (
	numFields     = 8
	timeFormat    = time.RFC3339
	colReference  = 0
	colType       = 1
	colAmount     = 2
	colDesc       = 3
	colOccurredAt = 4
	colSourceNote = 5
	colAccountID  = 6
	colCategoryID = 7
)

// ReadRecords reads all records from an exported CSV.
func ReadRecords(r io.Reader) ([]model.LedgerRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var out []model.LedgerRecord
	for i, rec := range records[1:] {
		lr, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, lr)
	}
	return out, nil
}

// WriteRecords writes records to w, including the header.
func WriteRecords(w io.Writer, records []model.LedgerRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, lr := range records {
		if err := cw.Write(MarshalRecord(lr)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a LedgerRecord to a CSV row.
func MarshalRecord(lr model.LedgerRecord) []string {
	row := make([]string, numFields)
	row[colReference] = lr.Reference
	row[colType] = string(lr.Type)
	row[colAmount] = formatAmount(lr.Amount)
	row[colDesc] = lr.Description
	row[colOccurredAt] = lr.OccurredAt.Format(timeFormat)
	row[colSourceNote] = lr.SourceNote
	if lr.AccountID != nil {
		row[colAccountID] = *lr.AccountID
	}
	if lr.CategoryID != nil {
		row[colCategoryID] = *lr.CategoryID
	}
	return row
}

// UnmarshalRecord converts a CSV row to a LedgerRecord. Empty account and
// category columns read back as nil.
func UnmarshalRecord(record []string) (model.LedgerRecord, error) {
	if len(record) != numFields {
		return model.LedgerRecord{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	typ := model.Direction(record[colType])
	if !typ.Valid() {
		return model.LedgerRecord{}, fmt.Errorf("invalid type %q", record[colType])
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.LedgerRecord{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	at, err := time.Parse(timeFormat, record[colOccurredAt])
	if err != nil {
		return model.LedgerRecord{}, fmt.Errorf("parsing occurred_at %q: %w", record[colOccurredAt], err)
	}

	return model.LedgerRecord{
		Reference:   record[colReference],
		Type:        typ,
		Amount:      amount,
		Description: record[colDesc],
		OccurredAt:  at,
		SourceNote:  record[colSourceNote],
		AccountID:   optional(record[colAccountID]),
		CategoryID:  optional(record[colCategoryID]),
	}, nil
}

// formatAmount pads to two decimals but never drops precision.
func formatAmount(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
