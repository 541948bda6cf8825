package bank

import (
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// DashenRule parses "Your account has been credited with Birr ..."
// notifications.
type DashenRule struct{ base }

// NewDashenRule creates the Dashen rule.
func NewDashenRule(loc *time.Location) *DashenRule {
	return &DashenRule{newBase(BankDashen,
		`YOUR ACCOUNT HAS BEEN (?P<verb>CREDITED|DEBITED) `+birrAmount+` `+dayMonthYear+` `+availBalance,
		loc)}
}

// Extract builds a transaction without a counterparty.
func (r *DashenRule) Extract(m Match) (model.ParsedTransaction, error) {
	txn, err := r.fields(m, debitCreditVerbs)
	if err != nil {
		return model.ParsedTransaction{}, err
	}
	txn.Narrative = debitCreditLabel(txn.Direction) + " transaction"
	txn.Currency = birrCurrency
	return txn, nil
}
