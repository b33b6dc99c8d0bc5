package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestDirections() {
	suite.True(SignalBuy.IsBuy())
	suite.False(SignalBuy.IsSell())

	suite.True(SignalSell.IsSell())
	suite.False(SignalSell.IsBuy())

	suite.False(SignalHold.IsBuy())
	suite.False(SignalHold.IsSell())
}

func (suite *SignalTestSuite) TestStrength() {
	suite.Equal(1.0, SignalBuy.Strength())
	suite.Equal(1.0, SignalSell.Strength())
	suite.Equal(0.0, SignalHold.Strength())

	// Fractional conviction keeps its magnitude in either direction.
	suite.Equal(0.5, Signal(0.5).Strength())
	suite.Equal(0.5, Signal(-0.5).Strength())
}
