package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/model"
)

const cbeBody = "John Doe has been debited with Birr 1,250.00 on 12/03/2024 at 14:05. Available Balance: Birr 8,750.00"

func sampleRecords() []model.LedgerRecord {
	addis := time.FixedZone("EAT", 3*60*60)
	return []model.LedgerRecord{
		{
			Reference:   "CBE-20240312T1405-001",
			Type:        model.DirectionExpense,
			Amount:      decimal.RequireFromString("1250.00"),
			Description: "Debit from JOHN DOE",
			OccurredAt:  time.Date(2024, 3, 12, 14, 5, 0, 0, addis),
			SourceNote:  model.SourceNotePrefix + cbeBody,
		},
		{
			Reference:   "Awash-20240101T0900-001",
			Type:        model.DirectionIncome,
			Amount:      decimal.RequireFromString("500"),
			Description: "IN transfer",
			OccurredAt:  time.Date(2024, 1, 1, 9, 0, 0, 0, addis),
			SourceNote:  model.SourceNotePrefix + "IN TRANSFER of Birr 500.00",
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	recs := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, recs))

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, recs[0].Reference, got[0].Reference)
	assert.Equal(t, recs[0].Type, got[0].Type)
	assert.True(t, recs[0].Amount.Equal(got[0].Amount))
	assert.True(t, recs[0].OccurredAt.Equal(got[0].OccurredAt))
	assert.Equal(t, recs[0].SourceNote, got[0].SourceNote, "commas in the body survive quoting")
	assert.Nil(t, got[0].AccountID)
	assert.Nil(t, got[0].CategoryID)
}

func TestMarshalRecord(t *testing.T) {
	row := MarshalRecord(sampleRecords()[1])

	assert.Equal(t, "income", row[colType])
	assert.Equal(t, "500.00", row[colAmount])
	assert.Equal(t, "2024-01-01T09:00:00+03:00", row[colOccurredAt])
	assert.Empty(t, row[colAccountID])
}

func TestCSVRoundTrip_KeepsPrecision(t *testing.T) {
	recs := sampleRecords()[:1]
	for _, amt := range []string{"0.004", "12.345", "1.2500"} {
		rec := recs[0]
		rec.Amount = decimal.RequireFromString(amt)

		var buf bytes.Buffer
		require.NoError(t, WriteRecords(&buf, []model.LedgerRecord{rec}))
		got, err := ReadRecords(&buf)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, rec.Amount.Equal(got[0].Amount), "amount %s came back as %s", amt, got[0].Amount)
		assert.True(t, got[0].Amount.IsPositive())
	}
}

func TestMarshalRecord_Assigned(t *testing.T) {
	rec := sampleRecords()[0]
	acct, cat := "acc_1", "cat_food"
	rec.AccountID, rec.CategoryID = &acct, &cat

	got, err := UnmarshalRecord(MarshalRecord(rec))
	require.NoError(t, err)
	require.NotNil(t, got.AccountID)
	assert.Equal(t, "acc_1", *got.AccountID)
	assert.Equal(t, "cat_food", *got.CategoryID)
}

func TestWriteRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnmarshalRecord_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want string
	}{
		{"short", []string{"a", "b"}, "expected 8 fields"},
		{"bad type", []string{"r", "refund", "1.00", "", "2024-01-01T09:00:00Z", "", "", ""}, "invalid type"},
		{"bad amount", []string{"r", "income", "lots", "", "2024-01-01T09:00:00Z", "", "", ""}, "parsing amount"},
		{"bad time", []string{"r", "income", "1.00", "", "01/01/2024", "", "", ""}, "parsing occurred_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRecord(tt.row)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadRecords_BadRow(t *testing.T) {
	in := Header + "\nr,income,x,d,2024-01-01T09:00:00Z,n,,\n"
	_, err := ReadRecords(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()[:1]))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "expense", got[0]["type"])
	assert.Equal(t, "1250", got[0]["amount"])
	assert.Nil(t, got[0]["account_id"])
	assert.Contains(t, got[0], "category_id")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, "csv", sampleRecords()))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	assert.Error(t, Write(&buf, "xlsx", nil))
}
