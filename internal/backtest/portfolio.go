package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"github.com/shopspring/decimal"
)

// Portfolio tracks the cash balance, share holdings and trade log of a
// single simulation run. Cash is held as a decimal so that the invariant
// "cash after a buy equals cash before minus shares times price" holds
// exactly, without float drift across long trade sequences.
type Portfolio struct {
	cash     decimal.Decimal
	holdings int64
	trades   []types.TradeRecord
}

// NewPortfolio creates a portfolio holding only cash.
func NewPortfolio(initialCapital float64) *Portfolio {
	return &Portfolio{
		cash:     decimal.NewFromFloat(initialCapital),
		holdings: 0,
		trades:   nil,
	}
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() float64 {
	cash, _ := p.cash.Float64()
	return cash
}

// Holdings returns the current number of shares held.
func (p *Portfolio) Holdings() int64 {
	return p.holdings
}

// Trades returns a copy of the trade log in execution order.
func (p *Portfolio) Trades() []types.TradeRecord {
	trades := make([]types.TradeRecord, len(p.trades))
	copy(trades, p.trades)

	return trades
}

// Value returns the mark-to-market value of the portfolio at the given price.
func (p *Portfolio) Value(price float64) float64 {
	value := p.cash.Add(decimal.NewFromInt(p.holdings).Mul(decimal.NewFromFloat(price)))
	result, _ := value.Float64()

	return result
}

// Buy commits fraction of the current cash to shares at price. Shares are
// whole units, rounded down; when the affordable quantity rounds to zero the
// buy is skipped and no trade is recorded. Buying while already holding
// accumulates shares.
func (p *Portfolio) Buy(t time.Time, price float64, fraction float64) (int64, error) {
	if price <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidTrade, "cannot buy at non-positive price %f", price)
	}
	if fraction <= 0 || fraction > 1 {
		return 0, errors.Newf(errors.ErrCodeInvalidTrade, "trade fraction %f outside (0, 1]", fraction)
	}

	priceDec := decimal.NewFromFloat(price)
	budget := p.cash.Mul(decimal.NewFromFloat(fraction))
	shares := budget.Div(priceDec).IntPart()
	if shares <= 0 {
		return 0, nil
	}

	cost := decimal.NewFromInt(shares).Mul(priceDec)
	p.cash = p.cash.Sub(cost)
	p.holdings += shares
	p.record(t, types.PurchaseTypeBuy, shares, price)

	return shares, nil
}

// Liquidate sells the entire position at price. Selling with no holdings is
// a no-op and records nothing.
func (p *Portfolio) Liquidate(t time.Time, price float64) (int64, error) {
	if price <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidTrade, "cannot sell at non-positive price %f", price)
	}
	if p.holdings == 0 {
		return 0, nil
	}

	shares := p.holdings
	proceeds := decimal.NewFromInt(shares).Mul(decimal.NewFromFloat(price))
	p.cash = p.cash.Add(proceeds)
	p.holdings = 0
	p.record(t, types.PurchaseTypeSell, shares, price)

	return shares, nil
}

func (p *Portfolio) record(t time.Time, side types.PurchaseType, quantity int64, price float64) {
	p.trades = append(p.trades, types.TradeRecord{
		ID:       uuid.New().String(),
		Time:     t,
		Side:     side,
		Quantity: quantity,
		Price:    price,
	})
}
