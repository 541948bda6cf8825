package bank

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Rule recognizes one institution's SMS format. Match and Extract operate
// on normalized text (uppercase, single-spaced).
type Rule interface {
	BankID() string
	Match(text string) (Match, bool)
	Extract(m Match) (model.ParsedTransaction, error)
}

// Match is a structural match of a rule's pattern.
type Match struct {
	Input  string
	Groups map[string]string
}

// Group returns the named capture, or "" if absent.
func (m Match) Group(name string) string {
	return m.Groups[name]
}

// Capture group names shared by the rule patterns.
const (
	groupActor           = "actor"
	groupVerb            = "verb"
	groupAmount          = "amount"
	groupCurrency        = "currency"
	groupDate            = "date"
	groupTime            = "time"
	groupBalance         = "balance"
	groupBalanceCurrency = "balance_currency"
)

const birrCurrency = "ETB"

// base holds what every regexp rule shares.
type base struct {
	bankID string
	re     *regexp.Regexp
	loc    *time.Location
}

func newBase(bankID, expr string, loc *time.Location) base {
	if loc == nil {
		loc = time.UTC
	}
	return base{bankID: bankID, re: regexp.MustCompile(expr), loc: loc}
}

// BankID returns the institution identifier.
func (b base) BankID() string { return b.bankID }

// Match applies the rule's pattern.
func (b base) Match(text string) (Match, bool) {
	sub := b.re.FindStringSubmatch(text)
	if sub == nil {
		return Match{}, false
	}
	groups := make(map[string]string, len(sub))
	for i, name := range b.re.SubexpNames() {
		if name != "" {
			groups[name] = sub[i]
		}
	}
	return Match{Input: text, Groups: groups}, true
}

// fields parses amount, balance and timestamp, and maps the verb through
// verbs. The amount must be positive.
func (b base) fields(m Match, verbs map[string]model.Direction) (model.ParsedTransaction, error) {
	amount, err := ParseAmount(m.Group(groupAmount))
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("%s: %w", b.bankID, err)
	}
	if !amount.IsPositive() {
		return model.ParsedTransaction{}, fmt.Errorf("%s: %w: %s is not positive", b.bankID, ErrInvalidAmount, amount)
	}

	verb := m.Group(groupVerb)
	dir, ok := verbs[verb]
	if !ok {
		return model.ParsedTransaction{}, fmt.Errorf("%s: %w: %q", b.bankID, ErrUnknownVerb, verb)
	}

	at, err := ParseTimestamp(m.Group(groupDate), m.Group(groupTime), b.loc)
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("%s: %w", b.bankID, err)
	}

	txn := model.ParsedTransaction{
		Amount:     amount,
		Direction:  dir,
		OccurredAt: at,
		BankID:     b.bankID,
	}

	if raw := m.Group(groupBalance); raw != "" {
		bal, err := ParseAmount(raw)
		if err != nil {
			return model.ParsedTransaction{}, fmt.Errorf("%s: balance: %w", b.bankID, err)
		}
		txn.RunningBalance = &bal
	}

	return txn, nil
}

// titleWord turns "CREDITED" into "Credited".
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

var (
	debitCreditVerbs = map[string]model.Direction{
		"DEBITED":  model.DirectionExpense,
		"CREDITED": model.DirectionIncome,
	}
	inOutVerbs = map[string]model.Direction{
		"OUT": model.DirectionExpense,
		"IN":  model.DirectionIncome,
	}
	genericVerbs = map[string]model.Direction{
		"DEBITED":  model.DirectionExpense,
		"SENT":     model.DirectionExpense,
		"CREDITED": model.DirectionIncome,
		"RECEIVED": model.DirectionIncome,
	}
)

// debitCreditLabel returns "Debit" or "Credit" for a direction.
func debitCreditLabel(d model.Direction) string {
	if d == model.DirectionExpense {
		return "Debit"
	}
	return "Credit"
}
