package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quantlab/backtest/pkg/errors"
)

type PurchaseType string

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

// TradeRecord is a single executed trade in the portfolio's append-only
// trade log. Quantity is a whole number of shares; Sell records always carry
// the full holdings at the time of liquidation.
type TradeRecord struct {
	ID       string       `yaml:"id" json:"id" csv:"id" validate:"required,uuid"`
	Time     time.Time    `yaml:"time" json:"time" csv:"time" validate:"required"`
	Side     PurchaseType `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	Quantity int64        `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,gt=0"`
	Price    float64      `yaml:"price" json:"price" csv:"price" validate:"required,gt=0"`
}

// Validate validates the TradeRecord struct.
func (t *TradeRecord) Validate() error {
	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTrade, "invalid trade record", err)
	}

	return nil
}
