package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

func TestInitializeIsIdempotent(t *testing.T) {
	db, err := Open(":memory:", logger.NewNopLogger())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Initialize())
	require.NoError(t, db.Initialize())
}

func TestInitializeUnwritablePathFails(t *testing.T) {
	db, err := Open("/nonexistent-dir/quotes.db", logger.NewNopLogger())
	if err != nil {
		assert.True(t, errors.HasCode(err, errors.ErrCodeStoreInitFailed))
		return
	}
	defer db.Close()

	err = db.Initialize()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStoreInitFailed))
}

func TestOpenNilLoggerDefaultsToNop(t *testing.T) {
	db, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Initialize())
}

func TestFileBackedStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.db")
	ctx := context.Background()

	db, err := Open(path, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, db.Initialize())

	bar := types.Bar{
		Symbol:        "AAPL",
		Date:          time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Open:          decimal.RequireFromString("185.5"),
		High:          decimal.RequireFromString("188.5"),
		Low:           decimal.RequireFromString("184.5"),
		Close:         decimal.RequireFromString("186.5"),
		AdjustedClose: decimal.RequireFromString("186.5"),
		Volume:        1_000_000,
		Source:        "alphavantage",
	}
	_, err = NewMarketDataStore(db).UpsertBars(ctx, []types.Bar{bar})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := Open(path, logger.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Initialize())

	stored, err := NewMarketDataStore(reopened).QueryBars(ctx, "AAPL", types.FullRange())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "186.5", stored[0].Close.String())
}
