package strategy

import (
	"testing"

	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type VWAPStrategyTestSuite struct {
	suite.Suite
}

func TestVWAPStrategySuite(t *testing.T) {
	suite.Run(t, new(VWAPStrategyTestSuite))
}

func (suite *VWAPStrategyTestSuite) TestStyleWindows() {
	tests := []struct {
		style  types.InvestmentStyle
		window int
	}{
		{types.StyleAggressive, 30},
		{types.StyleModerate, 50},
		{types.StylePassive, 100},
	}

	for _, tt := range tests {
		suite.Run(string(tt.style), func() {
			strat, err := NewVWAP(Options{Style: tt.style})
			suite.NoError(err)
			suite.Equal(tt.window, strat.window)
		})
	}
}

func (suite *VWAPStrategyTestSuite) TestInvalidStyle() {
	_, err := NewVWAP(Options{Style: "hft"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStyle))
}

func (suite *VWAPStrategyTestSuite) TestUptrendTradesAboveVWAP() {
	strat, err := NewVWAP(Options{Style: types.StyleAggressive})
	suite.Require().NoError(err)

	signals, err := strat.GenerateSignals(risingSeries(40))
	suite.Require().NoError(err)

	// With equal volumes the rolling VWAP equals the rolling mean, which a
	// monotonic uptrend always closes above once the window is complete.
	for i := 0; i < 29; i++ {
		suite.Equal(types.SignalHold, signals[i], "bar %d", i)
	}

	for i := 29; i < 40; i++ {
		suite.Equal(types.SignalBuy, signals[i], "bar %d", i)
	}
}

func (suite *VWAPStrategyTestSuite) TestDowntrendTradesBelowVWAP() {
	strat, err := NewVWAP(Options{Style: types.StyleAggressive})
	suite.Require().NoError(err)

	signals, err := strat.GenerateSignals(fallingSeries(40))
	suite.Require().NoError(err)
	suite.Equal(types.SignalSell, signals[39])
}

func (suite *VWAPStrategyTestSuite) TestFlatSeriesHolds() {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 25
	}

	strat, err := NewVWAP(Options{Style: types.StyleAggressive})
	suite.Require().NoError(err)

	signals, err := strat.GenerateSignals(newTestSeries(closes...))
	suite.Require().NoError(err)

	for _, signal := range signals {
		suite.Equal(types.SignalHold, signal)
	}
}
