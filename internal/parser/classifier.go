package parser

import "strings"

// DefaultKeywords are the institution terms that mark a bank notification.
var DefaultKeywords = []string{
	"BIRR",
	"BALANCE",
	"DEBITED",
	"CREDITED",
	"TRANSFER",
	"TRANSACTION",
	"ACCOUNT",
	"AVAILABLE BALANCE",
	"AMOUNT",
	"WITHDRAWAL",
	"DEPOSIT",
}

// Classifier is a cheap lexical pre-filter run before pattern matching.
type Classifier struct {
	keywords []string
}

// NewClassifier creates a Classifier with DefaultKeywords plus extra.
func NewClassifier(extra ...string) *Classifier {
	kw := make([]string, 0, len(DefaultKeywords)+len(extra))
	kw = append(kw, DefaultKeywords...)
	for _, k := range extra {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &Classifier{keywords: kw}
}

var defaultClassifier = NewClassifier()

// IsCandidate reports whether body mentions any keyword, ignoring case.
func (c *Classifier) IsCandidate(body string) bool {
	if body == "" {
		return false
	}
	upper := strings.ToUpper(body)
	for _, k := range c.keywords {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}

// Keywords returns the vocabulary in match order.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// IsCandidate classifies body with the default vocabulary.
func IsCandidate(body string) bool {
	return defaultClassifier.IsCandidate(body)
}
