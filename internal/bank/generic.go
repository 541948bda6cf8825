package bank

import (
	"fmt"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// GenericRule is the cross-institution fallback for
// "<actor> has credited you with 100.00 ETB on ..." style notifications in
// any three-letter currency.
type GenericRule struct{ base }

// NewGenericRule creates the fallback rule.
func NewGenericRule(loc *time.Location) *GenericRule {
	return &GenericRule{newBase(BankGeneric,
		`(?P<actor>[\w\s]+?) (?:HAS )?(?P<verb>CREDITED|DEBITED|SENT|RECEIVED) YOU WITH (?P<amount>[\d,]+\.?\d*) (?P<currency>[A-Z]{3}) `+
			`ON (?P<date>\d{2}[/-]\d{2}[/-]\d{2,4}) AT (?P<time>\d{1,2}:\d{2})\. `+
			`AVAILABLE BALANCE: (?P<balance>[\d,]+\.?\d*) (?P<balance_currency>[A-Z]{3})`,
		loc)}
}

// Extract requires the balance to be stated in the transaction currency.
func (r *GenericRule) Extract(m Match) (model.ParsedTransaction, error) {
	cur, balCur := m.Group(groupCurrency), m.Group(groupBalanceCurrency)
	if cur != balCur {
		return model.ParsedTransaction{}, fmt.Errorf("%s: %w: %s vs %s", r.bankID, ErrCurrencyMismatch, cur, balCur)
	}

	txn, err := r.fields(m, genericVerbs)
	if err != nil {
		return model.ParsedTransaction{}, err
	}
	actor := strings.TrimSpace(m.Group(groupActor))
	txn.Counterparty = actor
	txn.Narrative = titleWord(m.Group(groupVerb)) + " from " + actor
	txn.Currency = cur
	return txn, nil
}
