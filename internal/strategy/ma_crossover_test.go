package strategy

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MACrossoverTestSuite struct {
	suite.Suite
}

func TestMACrossoverSuite(t *testing.T) {
	suite.Run(t, new(MACrossoverTestSuite))
}

func (suite *MACrossoverTestSuite) TestDefaultWindows() {
	strat, err := NewMACrossover(Options{Style: types.StyleModerate})
	suite.NoError(err)
	suite.Equal(50, strat.shortWindow)
	suite.Equal(200, strat.longWindow)
	suite.Equal(NameMACrossover, strat.Name())
}

func (suite *MACrossoverTestSuite) TestStyleIndependent() {
	// The fixed-window crossover ignores the style entirely, including
	// styles the other strategies would reject.
	strat, err := NewMACrossover(Options{Style: "anything"})
	suite.NoError(err)
	suite.Equal(50, strat.shortWindow)
}

func (suite *MACrossoverTestSuite) TestWindowOverrides() {
	strat, err := NewMACrossover(Options{
		ShortWindow: optional.Some(5),
		LongWindow:  optional.Some(10),
	})
	suite.NoError(err)
	suite.Equal(5, strat.shortWindow)
	suite.Equal(10, strat.longWindow)
}

func (suite *MACrossoverTestSuite) TestRejectsInvertedWindows() {
	_, err := NewMACrossover(Options{
		ShortWindow: optional.Some(200),
		LongWindow:  optional.Some(50),
	})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}

func (suite *MACrossoverTestSuite) TestRejectsNonPositiveWindows() {
	_, err := NewMACrossover(Options{
		ShortWindow: optional.Some(-5),
		LongWindow:  optional.Some(10),
	})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}

func (suite *MACrossoverTestSuite) TestOverriddenWindowsGenerateSignals() {
	strat, err := NewMACrossover(Options{
		ShortWindow: optional.Some(2),
		LongWindow:  optional.Some(4),
	})
	suite.Require().NoError(err)

	signals, err := strat.GenerateSignals(risingSeries(10))
	suite.Require().NoError(err)

	for i := 0; i < 3; i++ {
		suite.Equal(types.SignalHold, signals[i])
	}

	for i := 3; i < 10; i++ {
		suite.Equal(types.SignalBuy, signals[i])
	}
}
