package indicator

import (
	"math"
	"testing"

	"github.com/quantlab/backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MATestSuite struct {
	suite.Suite
}

func TestMASuite(t *testing.T) {
	suite.Run(t, new(MATestSuite))
}

func (suite *MATestSuite) TestSMA() {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	suite.NoError(err)
	suite.Len(out, 5)

	suite.True(math.IsNaN(out[0]))
	suite.True(math.IsNaN(out[1]))
	suite.InDelta(2.0, out[2], 1e-9)
	suite.InDelta(3.0, out[3], 1e-9)
	suite.InDelta(4.0, out[4], 1e-9)
}

func (suite *MATestSuite) TestSMAWindowOne() {
	out, err := SMA([]float64{1, 2, 3}, 1)
	suite.NoError(err)
	suite.Equal([]float64{1, 2, 3}, out)
}

func (suite *MATestSuite) TestSMAShortInput() {
	out, err := SMA([]float64{1, 2}, 5)
	suite.NoError(err)
	suite.Len(out, 2)

	for _, v := range out {
		suite.True(math.IsNaN(v))
	}
}

func (suite *MATestSuite) TestSMAEmptyInput() {
	out, err := SMA(nil, 3)
	suite.NoError(err)
	suite.Empty(out)
}

func (suite *MATestSuite) TestSMAInvalidWindow() {
	_, err := SMA([]float64{1, 2, 3}, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))

	_, err = SMA([]float64{1, 2, 3}, -1)
	suite.Error(err)
}

func (suite *MATestSuite) TestRollingStd() {
	out, err := RollingStd([]float64{1, 2, 3, 4, 5}, 3)
	suite.NoError(err)
	suite.Len(out, 5)

	suite.True(math.IsNaN(out[0]))
	suite.True(math.IsNaN(out[1]))

	// Population std-dev of any three consecutive integers.
	want := math.Sqrt(2.0 / 3.0)
	for i := 2; i < 5; i++ {
		suite.InDelta(want, out[i], 1e-9)
	}
}

func (suite *MATestSuite) TestRollingStdConstantSeries() {
	out, err := RollingStd([]float64{7, 7, 7, 7}, 2)
	suite.NoError(err)

	for i := 1; i < 4; i++ {
		suite.InDelta(0.0, out[i], 1e-9)
	}
}

func (suite *MATestSuite) TestRollingStdInvalidWindow() {
	_, err := RollingStd([]float64{1, 2, 3}, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}
