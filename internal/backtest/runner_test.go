package backtest_test

import (
	"context"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/quantlab/backtest/internal/backtest"
	"github.com/quantlab/backtest/internal/logger"
	"github.com/quantlab/backtest/internal/strategy"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/mocks"
	"github.com/quantlab/backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RunnerTestSuite struct {
	suite.Suite
	simulator *backtest.Simulator
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func (suite *RunnerTestSuite) SetupTest() {
	suite.simulator = backtest.NewSimulator(strategy.NewRegistry(), logger.NewNopLogger())
}

func (suite *RunnerTestSuite) config() backtest.Config {
	config := backtest.EmptyConfig()
	config.InitialCapital = 10000
	config.Style = types.StyleAggressive
	config.Strategy = strategy.NameMACrossover
	config.ShortWindow = optional.Some(5)
	config.LongWindow = optional.Some(20)

	return config
}

func (suite *RunnerTestSuite) TestRunFromSource() {
	ctrl := gomock.NewController(suite.T())

	series := mocks.NewDataGenerator(42).Generate(mocks.DefaultConfig())

	source := mocks.NewMockDataSource(ctrl)
	source.EXPECT().
		ReadRange(gomock.Any(), gomock.Any()).
		Return(series, nil)

	result, err := suite.simulator.RunFromSource(context.Background(), suite.config(), source)
	suite.Require().NoError(err)

	suite.Equal(10000.0, result.InitialCapital)
	suite.Positive(result.FinalValue)
	suite.Positive(result.BenchmarkValue)
	suite.Equal(len(result.Trades), result.NumberOfTrades)
}

func (suite *RunnerTestSuite) TestRunFromSourcePassesTimeBounds() {
	ctrl := gomock.NewController(suite.T())

	config := suite.config()
	config.StartTime = optional.Some(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	config.EndTime = optional.Some(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	generatorConfig := mocks.DefaultConfig()
	generatorConfig.StartTime = config.StartTime.Unwrap()
	generatorConfig.Count = 29
	series := mocks.NewDataGenerator(1).Generate(generatorConfig)

	source := mocks.NewMockDataSource(ctrl)
	source.EXPECT().
		ReadRange(config.StartTime, config.EndTime).
		Return(series, nil)

	_, err := suite.simulator.RunFromSource(context.Background(), config, source)
	suite.Require().NoError(err)
}

func (suite *RunnerTestSuite) TestRunFromSourceReadError() {
	ctrl := gomock.NewController(suite.T())

	source := mocks.NewMockDataSource(ctrl)
	source.EXPECT().
		ReadRange(gomock.Any(), gomock.Any()).
		Return(nil, errors.New(errors.ErrCodeQueryFailed, "disk on fire"))

	_, err := suite.simulator.RunFromSource(context.Background(), suite.config(), source)
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *RunnerTestSuite) TestRunFromSourceEmptyRead() {
	ctrl := gomock.NewController(suite.T())

	source := mocks.NewMockDataSource(ctrl)
	source.EXPECT().
		ReadRange(gomock.Any(), gomock.Any()).
		Return(types.TimeSeries{}, nil)

	_, err := suite.simulator.RunFromSource(context.Background(), suite.config(), source)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyDataset))
}

func (suite *RunnerTestSuite) TestRunFromSourceInvalidConfigSkipsRead() {
	ctrl := gomock.NewController(suite.T())

	config := suite.config()
	config.InitialCapital = -1

	// No expectation is set: an invalid config must fail before any read.
	source := mocks.NewMockDataSource(ctrl)

	_, err := suite.simulator.RunFromSource(context.Background(), config, source)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
