package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/smsledger/internal/bank"
	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/model"
)

// Pipeline runs classify -> extract -> validate -> dedupe over a batch.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	classifier *Classifier
	extractor  *Extractor
	validator  *Validator
	log        logrus.FieldLogger
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	classifier *Classifier
	log        logrus.FieldLogger
}

// WithClassifier replaces the default keyword classifier. nil keeps the default.
func WithClassifier(c *Classifier) Option {
	return func(o *pipelineOptions) { o.classifier = c }
}

// WithLogger sets the logger; by default output is discarded.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *pipelineOptions) { o.log = l }
}

// New creates a Pipeline over registry.
func New(registry *bank.Registry, opts ...Option) *Pipeline {
	o := pipelineOptions{classifier: defaultClassifier}
	for _, opt := range opts {
		opt(&o)
	}
	if o.classifier == nil {
		o.classifier = defaultClassifier
	}
	if o.log == nil {
		o.log = discardLogger()
	}
	return &Pipeline{
		classifier: o.classifier,
		extractor:  NewExtractor(registry, o.log),
		validator:  NewValidator(registry),
		log:        o.log,
	}
}

// Report is the outcome of one Run.
type Report struct {
	Transactions []model.ParsedTransaction

	Scanned    int // messages seen
	Candidates int // passed the classifier
	Unmatched  int // candidates no rule could extract
	Invalid    int // extracted but rejected by the validator
	Duplicates int // dropped by dedupe
}

// Run processes msgs. It never fails; messages that are not bank
// notifications, do not match, or do not validate are counted and dropped.
func (p *Pipeline) Run(msgs []model.RawMessage) Report {
	r := Report{Scanned: len(msgs)}

	var valid []model.ParsedTransaction
	for _, msg := range msgs {
		if !p.classifier.IsCandidate(msg.Body) {
			continue
		}
		r.Candidates++

		txn, ok := p.extractor.Extract(msg.Body)
		if !ok {
			r.Unmatched++
			p.log.WithField("sender", msg.Sender).Debug("no rule matched candidate message")
			continue
		}
		txn.Sender = msg.Sender
		txn.ReceivedAt = msg.ReceivedAt

		if err := p.validator.Validate(txn); err != nil {
			r.Invalid++
			p.log.WithFields(logrus.Fields{
				"bank_id": txn.BankID,
				"sender":  msg.Sender,
				"error":   err,
			}).Warn("invalid parsed transaction")
			continue
		}
		valid = append(valid, txn)
	}

	r.Transactions = Dedupe(valid)
	r.Duplicates = len(valid) - len(r.Transactions)

	p.log.WithFields(logrus.Fields{
		"scanned":    r.Scanned,
		"candidates": r.Candidates,
		"parsed":     len(r.Transactions),
		"unmatched":  r.Unmatched,
		"invalid":    r.Invalid,
		"duplicates": r.Duplicates,
	}).Debug("pipeline run complete")

	return r
}

// Extract exposes the pipeline's extractor for single messages.
func (p *Pipeline) Extract(body string) (model.ParsedTransaction, bool) {
	return p.extractor.Extract(body)
}

// LedgerRecords maps the report's transactions to ledger records with
// deterministic references.
func (r Report) LedgerRecords() []model.LedgerRecord {
	seq := id.NewSequencer()
	out := make([]model.LedgerRecord, len(r.Transactions))
	for i, t := range r.Transactions {
		rec := t.LedgerRecord()
		rec.Reference = seq.Next(t.BankID, t.OccurredAt)
		out[i] = rec
	}
	return out
}
