package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cleared-dev/smsledger/internal/model"
)

// WriteJSON writes records as an indented JSON array. An empty batch is
// written as [].
func WriteJSON(w io.Writer, records []model.LedgerRecord) error {
	if records == nil {
		records = []model.LedgerRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

// Write writes records in format ("csv" or "json").
func Write(w io.Writer, format string, records []model.LedgerRecord) error {
	switch format {
	case "csv":
		return WriteRecords(w, records)
	case "json":
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
