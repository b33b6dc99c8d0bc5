package types

import (
	"testing"

	"github.com/quantlab/backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StyleTestSuite struct {
	suite.Suite
}

func TestStyleSuite(t *testing.T) {
	suite.Run(t, new(StyleTestSuite))
}

func (suite *StyleTestSuite) TestTradingParamsFor() {
	tests := []struct {
		style       InvestmentStyle
		fraction    float64
		minStrength float64
	}{
		{StyleAggressive, 1.0, 0},
		{StyleModerate, 0.5, 0.5},
		{StylePassive, 0.25, 1.0},
	}

	for _, tt := range tests {
		suite.Run(string(tt.style), func() {
			params, err := TradingParamsFor(tt.style)
			suite.NoError(err)
			suite.Equal(tt.fraction, params.TradeFraction)
			suite.Equal(tt.minStrength, params.MinSignalStrength)
		})
	}
}

func (suite *StyleTestSuite) TestTradingParamsForUnknownStyle() {
	_, err := TradingParamsFor("yolo")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStyle))
}

func (suite *StyleTestSuite) TestTradingParamsForEmptyStyle() {
	_, err := TradingParamsFor("")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStyle))
}
