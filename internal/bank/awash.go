package bank

import (
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// AwashRule parses "IN TRANSFER of Birr ..." / "OUT TRANSFER of Birr ..."
// notifications.
type AwashRule struct{ base }

// NewAwashRule creates the Awash rule.
func NewAwashRule(loc *time.Location) *AwashRule {
	return &AwashRule{newBase(BankAwash,
		`\b(?P<verb>IN|OUT) TRANSFER OF BIRR (?P<amount>[\d,]+\.?\d*) `+dayMonthYear+` BALANCE BIRR (?P<balance>[\d,]+\.?\d*)`,
		loc)}
}

// Extract builds a transaction labelled with the transfer direction.
func (r *AwashRule) Extract(m Match) (model.ParsedTransaction, error) {
	txn, err := r.fields(m, inOutVerbs)
	if err != nil {
		return model.ParsedTransaction{}, err
	}
	txn.Narrative = m.Group(groupVerb) + " transfer"
	txn.Currency = birrCurrency
	return txn, nil
}
