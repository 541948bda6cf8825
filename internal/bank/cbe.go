package bank

import (
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Bank IDs of the built-in rules.
const (
	BankCBE                      = "CBE"
	BankDashen                   = "Dashen"
	BankAwash                    = "Awash"
	BankGeneric                  = "Generic"
	BankCommercialBankOfEthiopia = "CommercialBankOfEthiopia"
)

// Shared tails of the Birr-denominated formats.
const (
	birrAmount   = `WITH BIRR (?P<amount>[\d,]+\.?\d*)`
	dayMonthYear = `ON (?P<date>\d{2}/\d{2}/\d{4}) AT (?P<time>\d{2}:\d{2})\.`
	availBalance = `AVAILABLE BALANCE: BIRR (?P<balance>[\d,]+\.?\d*)`
)

// CBERule parses "<actor> has been debited with Birr ..." notifications.
type CBERule struct{ base }

// NewCBERule creates the CBE rule; timestamps are read in loc.
func NewCBERule(loc *time.Location) *CBERule {
	return &CBERule{newBase(BankCBE,
		`(?P<actor>[\w\s]+) HAS BEEN (?P<verb>DEBITED|CREDITED) `+birrAmount+` `+dayMonthYear+` `+availBalance,
		loc)}
}

// Extract builds a transaction with the actor as counterparty.
func (r *CBERule) Extract(m Match) (model.ParsedTransaction, error) {
	txn, err := r.fields(m, debitCreditVerbs)
	if err != nil {
		return model.ParsedTransaction{}, err
	}
	actor := strings.TrimSpace(m.Group(groupActor))
	txn.Counterparty = actor
	txn.Narrative = debitCreditLabel(txn.Direction) + " from " + actor
	txn.Currency = birrCurrency
	return txn, nil
}

// CommercialBankOfEthiopiaRule parses "Your account <number> has been
// debited with Birr ..." notifications.
type CommercialBankOfEthiopiaRule struct{ base }

// NewCommercialBankOfEthiopiaRule creates the account-numbered CBE rule.
func NewCommercialBankOfEthiopiaRule(loc *time.Location) *CommercialBankOfEthiopiaRule {
	return &CommercialBankOfEthiopiaRule{newBase(BankCommercialBankOfEthiopia,
		`YOUR ACCOUNT .* HAS BEEN (?P<verb>DEBITED|CREDITED) `+birrAmount+` `+dayMonthYear+` `+availBalance,
		loc)}
}

// Extract builds a transaction without a counterparty.
func (r *CommercialBankOfEthiopiaRule) Extract(m Match) (model.ParsedTransaction, error) {
	txn, err := r.fields(m, debitCreditVerbs)
	if err != nil {
		return model.ParsedTransaction{}, err
	}
	txn.Narrative = debitCreditLabel(txn.Direction) + " transaction"
	txn.Currency = birrCurrency
	return txn, nil
}
