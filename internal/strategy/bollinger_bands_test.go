package strategy

import (
	"testing"

	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestStyleParameters() {
	tests := []struct {
		style   types.InvestmentStyle
		window  int
		stdDevs float64
	}{
		{types.StyleAggressive, 14, 1.5},
		{types.StyleModerate, 20, 2},
		{types.StylePassive, 30, 2.5},
	}

	for _, tt := range tests {
		suite.Run(string(tt.style), func() {
			strat, err := NewBollingerBands(Options{Style: tt.style})
			suite.NoError(err)
			suite.Equal(tt.window, strat.window)
			suite.Equal(tt.stdDevs, strat.stdDevs)
		})
	}
}

func (suite *BollingerBandsTestSuite) TestInvalidStyle() {
	_, err := NewBollingerBands(Options{Style: "reckless"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStyle))
}

func (suite *BollingerBandsTestSuite) TestBuyBelowLowerBand() {
	// Thirteen flat bars then a crash: the crash bar closes far below the
	// lower band of the aggressive 14-bar window.
	closes := make([]float64, 14)
	for i := 0; i < 13; i++ {
		closes[i] = 100
	}
	closes[13] = 50

	strat, err := NewBollingerBands(Options{Style: types.StyleAggressive})
	suite.Require().NoError(err)

	signals, err := strat.GenerateSignals(newTestSeries(closes...))
	suite.Require().NoError(err)
	suite.Equal(types.SignalBuy, signals[13])
}

func (suite *BollingerBandsTestSuite) TestSellAboveUpperBand() {
	closes := make([]float64, 14)
	for i := 0; i < 13; i++ {
		closes[i] = 100
	}
	closes[13] = 150

	strat, err := NewBollingerBands(Options{Style: types.StyleAggressive})
	suite.Require().NoError(err)

	signals, err := strat.GenerateSignals(newTestSeries(closes...))
	suite.Require().NoError(err)
	suite.Equal(types.SignalSell, signals[13])
}

func (suite *BollingerBandsTestSuite) TestFlatSeriesHolds() {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}

	strat, err := NewBollingerBands(Options{Style: types.StyleModerate})
	suite.Require().NoError(err)

	signals, err := strat.GenerateSignals(newTestSeries(closes...))
	suite.Require().NoError(err)

	for _, signal := range signals {
		suite.Equal(types.SignalHold, signal)
	}
}
