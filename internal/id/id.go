package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// referenceTimeLayout is the minute-resolution stamp inside a reference.
const referenceTimeLayout = "20060102T1504"

// FormatReference returns a record reference like "CBE-20240312T1405-001".
// The stamp is the wall clock of at in its own location.
func FormatReference(bankID string, at time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", bankID, at.Format(referenceTimeLayout), seq)
}

// ParseReference parses "CBE-20240312T1405-001" into bank, wall-clock time
// (as UTC) and seq.
func ParseReference(ref string) (bankID string, at time.Time, seq int, err error) {
	seqSep := strings.LastIndex(ref, "-")
	if seqSep <= 0 {
		return "", time.Time{}, 0, fmt.Errorf("invalid reference format: %q", ref)
	}
	head, seqStr := ref[:seqSep], ref[seqSep+1:]

	timeSep := strings.LastIndex(head, "-")
	if timeSep <= 0 {
		return "", time.Time{}, 0, fmt.Errorf("invalid reference format: %q", ref)
	}
	bankID, stamp := head[:timeSep], head[timeSep+1:]

	at, err = time.Parse(referenceTimeLayout, stamp)
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("invalid time in reference %q: %w", ref, err)
	}

	seq, err = strconv.Atoi(seqStr)
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("invalid sequence in reference %q: %w", ref, err)
	}

	return bankID, at, seq, nil
}

// Sequencer hands out per-(bank, minute) sequence numbers starting at 1.
// It is not safe for concurrent use.
type Sequencer struct {
	next map[string]int
}

// NewSequencer creates an empty Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{next: make(map[string]int)}
}

// Next returns the next reference for bankID at at.
func (s *Sequencer) Next(bankID string, at time.Time) string {
	key := bankID + "|" + at.Format(referenceTimeLayout)
	s.next[key]++
	return FormatReference(bankID, at, s.next[key])
}
