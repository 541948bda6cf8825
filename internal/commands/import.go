package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/config"
	"github.com/cleared-dev/smsledger/internal/export"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/runlog"
	"github.com/cleared-dev/smsledger/internal/source"
)

func newImportCommand(root *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "import [directory]",
		Short: "Parse every SMS export in import/ and write exports/",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfgPath := filepath.Join(absDir, config.FileName)
			if cmd.Flags().Changed("config") {
				cfgPath = root.configPath
			}
			rt, err := root.load(cfgPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runImport(cmd.OutOrStdout(), rt, absDir, all, time.Now())
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "ignore source.lookback_days and source.max_messages")

	return cmd
}

func runImport(out io.Writer, rt *app, dir string, all bool, now time.Time) error {
	files, err := source.Scan(dir, rt.sources)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No files to import.")
		return nil
	}

	for _, fi := range files {
		msgs, err := rt.readMessages(fi.Path, "")
		if err != nil {
			return err
		}

		report := rt.pipeline.Run(rt.window(now, all).Apply(msgs))

		// inbox.xml and inbox.json must not share an export.
		name := fi.Name + "." + rt.cfg.Export.Format
		outPath := filepath.Join(dir, exportDir, name)
		if err := writeExport(outPath, rt.cfg.Export.Format, report.LedgerRecords()); err != nil {
			return err
		}

		if err := source.MarkProcessed(dir, fi.Name); err != nil {
			return err
		}

		e := runlog.FromReport(runlog.NewRunID(), fi.Name, filepath.Join(exportDir, name), now, report)
		logRun(rt.log, e)
		if err := runlog.Append(dir, []runlog.Entry{e}); err != nil {
			return err
		}

		fmt.Fprintf(out, "%s: %d transactions (%d messages, %d unmatched, %d duplicates) -> %s\n",
			fi.Name, e.Parsed, e.Scanned, e.Unmatched, e.Duplicates, e.Output)
	}
	return nil
}

func writeExport(path, format string, records []model.LedgerRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := export.Write(f, format, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
