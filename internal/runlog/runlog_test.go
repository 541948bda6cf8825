package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/parser"
)

var testTime = time.Date(2024, 3, 12, 14, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		RunID:      "3f0c1c1e-6b1f-4a8e-9d3c-2f5b7a9e0d11",
		Timestamp:  testTime,
		Source:     "inbox.xml",
		Output:     "exports/inbox.csv",
		Scanned:    6,
		Candidates: 5,
		Parsed:     2,
		Unmatched:  2,
		Duplicates: 1,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testEntry(), entries[0])
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.RunID = NewRunID()
	e2.Source = "messages.json"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "inbox.xml", entries[0].Source)
	assert.Equal(t, "messages.json", entries[1].Source)

	data, err := os.ReadFile(filepath.Join(dir, logFile))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	good := MarshalEntry(testEntry())

	_, err := UnmarshalEntry(good[:3])
	assert.ErrorContains(t, err, "expected 10 fields")

	bad := append([]string(nil), good...)
	bad[colRunID] = "run-1"
	_, err = UnmarshalEntry(bad)
	assert.ErrorContains(t, err, "parsing run_id")

	bad = append([]string(nil), good...)
	bad[colTimestamp] = "yesterday"
	_, err = UnmarshalEntry(bad)
	assert.ErrorContains(t, err, "parsing timestamp")

	bad = append([]string(nil), good...)
	bad[colInvalid] = "many"
	_, err = UnmarshalEntry(bad)
	assert.ErrorContains(t, err, "parsing count")
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestFromReport(t *testing.T) {
	r := parser.Report{
		Transactions: make([]model.ParsedTransaction, 3),
		Scanned:      10,
		Candidates:   7,
		Unmatched:    2,
		Invalid:      1,
		Duplicates:   1,
	}
	e := FromReport("id", "in.xml", "", testTime, r)

	assert.Equal(t, 3, e.Parsed)
	assert.Equal(t, 10, e.Scanned)
	assert.Equal(t, 7, e.Candidates)
	assert.Equal(t, 2, e.Unmatched)
	assert.Equal(t, 1, e.Invalid)
	assert.Equal(t, 1, e.Duplicates)
	assert.Empty(t, e.Output)
}
