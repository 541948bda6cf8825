package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/smsledger/internal/bank"
	"github.com/cleared-dev/smsledger/internal/config"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/parser"
	"github.com/cleared-dev/smsledger/internal/source"
)

// app is everything a command needs after config is resolved.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	registry *bank.Registry
	pipeline *parser.Pipeline
	sources  *source.Registry
}

func (o *rootOptions) load(configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	log, err := cfg.Log.NewLogger(logOut)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	registry, err := bank.DefaultRegistry(loc).Subset(cfg.Parser.Banks...)
	if err != nil {
		return nil, fmt.Errorf("parser.banks: %w", err)
	}

	p := parser.New(registry,
		parser.WithClassifier(parser.NewClassifier(cfg.Parser.ExtraKeywords...)),
		parser.WithLogger(log),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		registry: registry,
		pipeline: p,
		sources:  source.DefaultRegistry(),
	}, nil
}

// window returns the message selection for a run ending at now. all
// lifts the lookback and count limits but keeps the sender allowlist.
func (rt *app) window(now time.Time, all bool) source.Window {
	w := source.Window{Senders: rt.cfg.Source.Senders}
	if !all {
		w.Since = rt.cfg.Since(now)
		w.MaxMessages = rt.cfg.Source.MaxMessages
	}
	return w
}

// readMessages parses one export file, choosing the parser by extension
// and falling back to format, then to source.format.
func (rt *app) readMessages(path, format string) ([]model.RawMessage, error) {
	if format == "" {
		format = rt.cfg.Source.Format
	}
	p, err := rt.sources.ForFile(path, format)
	if err != nil {
		return nil, err
	}
	return source.ReadFile(p, path)
}
