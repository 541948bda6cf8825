package bank

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a money field cannot be read as a
	// positive decimal.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidTimestamp is returned when date and clock do not form a valid
	// point in time.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrUnknownVerb is returned when a direction token has no mapping.
	ErrUnknownVerb = errors.New("unknown direction token")
	// ErrCurrencyMismatch is returned when balance and amount currencies differ.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

const (
	thousandsSeparator = ","
	dateLayoutLong     = "02/01/2006" // day first
	dateLayoutShort    = "02/01/06"
	clockLayout        = "15:04"
)

// ParseAmount strips thousands separators and parses the remainder as a
// decimal. "1,250.00" -> 1250.00.
func ParseAmount(s string) (decimal.Decimal, error) {
	stripped := strings.ReplaceAll(strings.TrimSpace(s), thousandsSeparator, "")
	if stripped == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	return d, nil
}

// ParseTimestamp combines a day-first date ("12/03/2024", "12-03-24") and a
// clock ("14:05", "9:05") into a time in loc. A nil loc means UTC.
func ParseTimestamp(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	d := strings.ReplaceAll(strings.TrimSpace(date), "-", "/")
	layout := dateLayoutLong
	if parts := strings.Split(d, "/"); len(parts) == 3 && len(parts[2]) == 2 {
		layout = dateLayoutShort
	}

	ts, err := time.ParseInLocation(layout+" "+clockLayout, d+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q at %q: %v", ErrInvalidTimestamp, date, clock, err)
	}
	return ts, nil
}
