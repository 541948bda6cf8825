// Package runlog keeps a CSV history of pipeline runs under logs/.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/smsledger/internal/parser"
)

// Entry is one row in the run log.
type Entry struct {
	RunID      string
	Timestamp  time.Time
	Source     string // input file name
	Output     string // export path, empty when written to stdout
	Scanned    int
	Candidates int
	Parsed     int
	Unmatched  int
	Invalid    int
	Duplicates int
}

// Header is the CSV header for parse-log.csv.
const Header = "run_id,timestamp,source,output,scanned,candidates,parsed,unmatched,invalid,duplicates"

const (
	numFields     = 10
	logDir        = "logs"
	logFile       = "logs/parse-log.csv"
	colRunID      = 0
	colTimestamp  = 1
	colSource     = 2
	colOutput     = 3
	colScanned    = 4
	colCandidates = 5
	colParsed     = 6
	colUnmatched  = 7
	colInvalid    = 8
	colDuplicates = 9
)

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// FromReport summarizes a pipeline report as a log entry.
func FromReport(runID, source, output string, at time.Time, r parser.Report) Entry {
	return Entry{
		RunID:      runID,
		Timestamp:  at,
		Source:     source,
		Output:     output,
		Scanned:    r.Scanned,
		Candidates: r.Candidates,
		Parsed:     len(r.Transactions),
		Unmatched:  r.Unmatched,
		Invalid:    r.Invalid,
		Duplicates: r.Duplicates,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunID] = e.RunID
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colOutput] = e.Output
	row[colScanned] = strconv.Itoa(e.Scanned)
	row[colCandidates] = strconv.Itoa(e.Candidates)
	row[colParsed] = strconv.Itoa(e.Parsed)
	row[colUnmatched] = strconv.Itoa(e.Unmatched)
	row[colInvalid] = strconv.Itoa(e.Invalid)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if _, err := uuid.Parse(record[colRunID]); err != nil {
		return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 0, numFields-colScanned)
	for col := colScanned; col < numFields; col++ {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts = append(counts, n)
	}

	return Entry{
		RunID:      record[colRunID],
		Timestamp:  ts,
		Source:     record[colSource],
		Output:     record[colOutput],
		Scanned:    counts[0],
		Candidates: counts[1],
		Parsed:     counts[2],
		Unmatched:  counts[3],
		Invalid:    counts[4],
		Duplicates: counts[5],
	}, nil
}

// Append writes entries to <root>/logs/parse-log.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/parse-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
