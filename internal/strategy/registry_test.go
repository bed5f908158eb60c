package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

type RegistryTestSuite struct {
	suite.Suite
	registry Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = NewRegistry()
}

func (suite *RegistryTestSuite) newCrossover(short, long int) Strategy {
	strategy, err := NewSMACrossover(Config{
		ShortWindow: short,
		LongWindow:  long,
		Threshold:   decimal.Zero,
	})
	suite.Require().NoError(err)

	return strategy
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	strategy := suite.newCrossover(20, 50)

	suite.Require().NoError(suite.registry.Register(strategy))

	got, err := suite.registry.Get("sma_crossover_20_50")
	suite.Require().NoError(err)
	suite.Equal(strategy.ID(), got.ID())
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	strategy := suite.newCrossover(20, 50)

	suite.Require().NoError(suite.registry.Register(strategy))

	err := suite.registry.Register(strategy)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "already registered")
}

func (suite *RegistryTestSuite) TestGetUnknown() {
	_, err := suite.registry.Get("sma_crossover_9_99")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *RegistryTestSuite) TestListSorted() {
	suite.Require().NoError(suite.registry.Register(suite.newCrossover(20, 50)))
	suite.Require().NoError(suite.registry.Register(suite.newCrossover(10, 30)))

	suite.Equal([]string{"sma_crossover_10_30", "sma_crossover_20_50"}, suite.registry.List())
}

func (suite *RegistryTestSuite) TestRemove() {
	suite.Require().NoError(suite.registry.Register(suite.newCrossover(20, 50)))
	suite.Require().NoError(suite.registry.Remove("sma_crossover_20_50"))

	_, err := suite.registry.Get("sma_crossover_20_50")
	suite.Require().Error(err)

	err = suite.registry.Remove("sma_crossover_20_50")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}
