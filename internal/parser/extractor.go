package parser

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/smsledger/internal/bank"
	"github.com/cleared-dev/smsledger/internal/model"
)

// Extractor applies registry rules, in order, to a message body.
type Extractor struct {
	registry *bank.Registry
	log      logrus.FieldLogger
}

// NewExtractor creates an Extractor. A nil logger discards output.
func NewExtractor(registry *bank.Registry, log logrus.FieldLogger) *Extractor {
	if log == nil {
		log = discardLogger()
	}
	return &Extractor{registry: registry, log: log}
}

// Extract returns the transaction from the first rule that both matches
// and extracts cleanly. A rule whose fields fail to parse is skipped and
// the next one is tried. The bool is false when no rule succeeds.
func (e *Extractor) Extract(body string) (model.ParsedTransaction, bool) {
	text := Normalize(body)
	if text == "" {
		return model.ParsedTransaction{}, false
	}

	for _, rule := range e.registry.Rules() {
		m, ok := rule.Match(text)
		if !ok {
			continue
		}
		txn, err := rule.Extract(m)
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"bank_id": rule.BankID(),
				"error":   err,
			}).Debug("rule matched but extraction failed, trying next rule")
			continue
		}
		txn.BankID = rule.BankID()
		txn.SourceText = body
		return txn, true
	}
	return model.ParsedTransaction{}, false
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
