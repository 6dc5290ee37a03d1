package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "EUR"

// Amount is a monetary value in minor units (cents).
type Amount struct {
	Value    int64  `json:"value" validate:"gt=0"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

func NewAmount(value int64, currency string) Amount {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Amount{Value: value, Currency: currency}
}

// AmountFromUnits converts a major-unit value such as "12.34" into an Amount of 1234 cents.
func AmountFromUnits(units string, currency string) (Amount, error) {
	d, err := decimal.NewFromString(units)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", units, err)
	}
	cents := d.Shift(2).Round(0)
	return NewAmount(cents.IntPart(), currency), nil
}

// Units returns the value in major units.
func (a Amount) Units() decimal.Decimal {
	return decimal.New(a.Value, -2)
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Units().StringFixed(2), a.Currency)
}
