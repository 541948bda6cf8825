package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says whether a transaction adds to or takes from the account.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// ParsedTransaction is a transaction recovered from a bank SMS.
type ParsedTransaction struct {
	Amount         decimal.Decimal  `json:"amount"`
	Direction      Direction        `json:"direction"`
	Counterparty   string           `json:"counterparty,omitempty"`
	Narrative      string           `json:"narrative,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	RunningBalance *decimal.Decimal `json:"running_balance,omitempty"` // nil when the SMS states none
	OccurredAt     time.Time        `json:"occurred_at"`
	BankID         string           `json:"bank_id"`
	SourceText     string           `json:"source_text"` // body before normalization

	// Echoed from the RawMessage; not part of the dedup key.
	Sender     string    `json:"sender,omitempty"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// DedupKey identifies repeat deliveries of the same notification.
type DedupKey struct {
	Amount     string
	OccurredAt string
	Narrative  string
}

// Key projects t onto its dedup key. Amounts compare by value and
// timestamps by instant, so 1250 and 1250.00 collide.
func (t ParsedTransaction) Key() DedupKey {
	return DedupKey{
		Amount:     t.Amount.String(),
		OccurredAt: t.OccurredAt.UTC().Format(time.RFC3339Nano),
		Narrative:  t.Narrative,
	}
}

// SourceNotePrefix prefixes the raw SMS in a ledger record's note.
const SourceNotePrefix = "parsed from SMS: "

// LedgerRecord is the generic ledger transaction shape handed to storage.
// Account and category are left for later assignment.
type LedgerRecord struct {
	Reference   string          `json:"reference"`
	Type        Direction       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurred_at"`
	SourceNote  string          `json:"source_note"`
	AccountID   *string         `json:"account_id"`
	CategoryID  *string         `json:"category_id"`
}

// LedgerRecord maps t onto the ledger shape.
func (t ParsedTransaction) LedgerRecord() LedgerRecord {
	desc := t.Narrative
	if desc == "" {
		desc = "SMS-parsed transaction from " + t.BankID
	}
	return LedgerRecord{
		Type:        t.Direction,
		Amount:      t.Amount,
		Description: desc,
		OccurredAt:  t.OccurredAt,
		SourceNote:  SourceNotePrefix + t.SourceText,
	}
}
