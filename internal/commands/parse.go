package commands

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/export"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/runlog"
)

type parseOptions struct {
	inputFormat  string
	outputFormat string
	outPath      string
	all          bool
}

func newParseCommand(root *rootOptions) *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse SMS export files and print ledger records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.load(root.configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runParse(cmd.OutOrStdout(), rt, args, opts, time.Now())
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format when the extension is unknown (smsbackup, json)")
	cmd.Flags().StringVar(&opts.outputFormat, "format", "", "output format (csv, json); defaults to export.format")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write records to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.all, "all", false, "ignore source.lookback_days and source.max_messages")

	return cmd
}

func runParse(stdout io.Writer, rt *app, files []string, opts parseOptions, now time.Time) error {
	format := opts.outputFormat
	if format == "" {
		format = rt.cfg.Export.Format
	}

	var msgs []model.RawMessage
	for _, path := range files {
		batch, err := rt.readMessages(path, opts.inputFormat)
		if err != nil {
			return err
		}
		msgs = append(msgs, batch...)
	}

	report := rt.pipeline.Run(rt.window(now, opts.all).Apply(msgs))
	records := report.LedgerRecords()

	if opts.outPath != "" {
		if err := writeExport(opts.outPath, format, records); err != nil {
			return err
		}
	} else if err := export.Write(stdout, format, records); err != nil {
		return err
	}

	logRun(rt.log, runlog.FromReport(runlog.NewRunID(), joinNames(files), opts.outPath, now, report))
	return nil
}

func logRun(log logrus.FieldLogger, e runlog.Entry) {
	log.WithFields(logrus.Fields{
		"run_id":     e.RunID,
		"source":     e.Source,
		"scanned":    e.Scanned,
		"candidates": e.Candidates,
		"parsed":     e.Parsed,
		"unmatched":  e.Unmatched,
		"invalid":    e.Invalid,
		"duplicates": e.Duplicates,
	}).Info("parsed messages")
}

func joinNames(paths []string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return strings.Join(names, ";")
}
