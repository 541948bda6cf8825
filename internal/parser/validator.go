package parser

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/bank"
	"github.com/cleared-dev/smsledger/internal/model"
)

// Validator rejects transactions that parsed but make no sense.
type Validator struct {
	registry *bank.Registry
}

// NewValidator creates a Validator accepting only banks in registry.
func NewValidator(registry *bank.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate returns a validation.Errors keyed by JSON field name, or nil.
func (v *Validator) Validate(t model.ParsedTransaction) error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Amount, validation.By(positiveAmount)),
		validation.Field(&t.Direction, validation.Required, validation.By(knownDirection)),
		validation.Field(&t.OccurredAt, validation.By(pointInTime)),
		validation.Field(&t.BankID, validation.Required, validation.By(v.registeredBank)),
		validation.Field(&t.RunningBalance, validation.By(nonNegativeBalance)),
	)
}

// IsValid reports whether Validate finds nothing wrong.
func (v *Validator) IsValid(t model.ParsedTransaction) bool {
	return v.Validate(t) == nil
}

func positiveAmount(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || !d.IsPositive() {
		return errors.New("must be greater than zero")
	}
	return nil
}

func knownDirection(value interface{}) error {
	d, ok := value.(model.Direction)
	if !ok || !d.Valid() {
		return errors.New("must be income or expense")
	}
	return nil
}

func pointInTime(value interface{}) error {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return errors.New("must be a valid point in time")
	}
	return nil
}

func nonNegativeBalance(value interface{}) error {
	b, ok := value.(*decimal.Decimal)
	if !ok {
		return errors.New("invalid balance type")
	}
	if b != nil && b.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

func (v *Validator) registeredBank(value interface{}) error {
	id, _ := value.(string)
	if !v.registry.Has(id) {
		return errors.New("is not a registered bank")
	}
	return nil
}
