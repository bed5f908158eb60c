package mocks

import (
	"testing"
	"time"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	bars := gen.Generate(config)

	if len(bars) != 100 {
		t.Errorf("expected 100 bars, got %d", len(bars))
	}

	// Verify bars are in chronological order
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}

	// Verify symbol is set correctly
	for i, bar := range bars {
		if bar.Symbol != config.Symbol {
			t.Errorf("expected symbol %s at index %d, got %s", config.Symbol, i, bar.Symbol)
		}
	}

	// Verify OHLC values are positive
	for i, bar := range bars {
		if !bar.Open.IsPositive() || !bar.High.IsPositive() || !bar.Low.IsPositive() || !bar.Close.IsPositive() {
			t.Errorf("invalid OHLC values at index %d: O=%s H=%s L=%s C=%s",
				i, bar.Open, bar.High, bar.Low, bar.Close)
		}
	}

	// Verify the cleaner's price relations hold
	for i, bar := range bars {
		if bar.High.LessThan(bar.Low) {
			t.Errorf("High < Low at index %d: H=%s L=%s", i, bar.High, bar.Low)
		}
		if bar.High.LessThan(bar.Open) || bar.High.LessThan(bar.Close) {
			t.Errorf("High below open or close at index %d", i)
		}
		if bar.Low.GreaterThan(bar.Open) || bar.Low.GreaterThan(bar.Close) {
			t.Errorf("Low above open or close at index %d", i)
		}
	}

	// Verify every bar falls on a weekday
	for i, bar := range bars {
		if bar.Date.Weekday() == time.Saturday || bar.Date.Weekday() == time.Sunday {
			t.Errorf("bar at index %d falls on a weekend: %s", i, bar.Date.Format(time.DateOnly))
		}
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	// Same seed should produce same results
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(42)

	config := DefaultConfig()
	config.Count = 10

	bars1 := gen1.Generate(config)
	bars2 := gen2.Generate(config)

	for i := range bars1 {
		if !bars1[i].Close.Equal(bars2[i].Close) {
			t.Errorf("bars not reproducible at index %d: got %s and %s",
				i, bars1[i].Close, bars2[i].Close)
		}
	}
}

func TestDataGenerator_Different_Seeds(t *testing.T) {
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(123)

	config := DefaultConfig()
	config.Count = 10

	bars1 := gen1.Generate(config)
	bars2 := gen2.Generate(config)

	// Different seeds should produce different results
	sameCount := 0
	for i := range bars1 {
		if bars1[i].Close.Equal(bars2[i].Close) {
			sameCount++
		}
	}

	if sameCount == len(bars1) {
		t.Error("different seeds produced identical bars")
	}
}

func TestGenerateCompact(t *testing.T) {
	bars := GenerateCompact("TEST")

	if len(bars) != 100 {
		t.Errorf("expected 100 bars, got %d", len(bars))
	}

	// Verify first bar
	if bars[0].Symbol != "TEST" {
		t.Errorf("expected symbol TEST, got %s", bars[0].Symbol)
	}

	// Verify chronological order
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}
}

func TestGenerateMultiSymbol(t *testing.T) {
	symbols := []string{"AAPL", "GOOG", "MSFT"}
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Count = 100

	series := gen.GenerateMultiSymbol(symbols, config)

	if len(series) != len(symbols) {
		t.Errorf("expected %d series, got %d", len(symbols), len(series))
	}

	// Verify each symbol has a full series of its own bars
	for _, symbol := range symbols {
		bars, ok := series[symbol]
		if !ok {
			t.Errorf("missing series for %s", symbol)
			continue
		}
		if len(bars) != config.Count {
			t.Errorf("expected %d bars for %s, got %d", config.Count, symbol, len(bars))
		}
		for i, bar := range bars {
			if bar.Symbol != symbol {
				t.Errorf("expected symbol %s at index %d, got %s", symbol, i, bar.Symbol)
			}
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Count != 250 {
		t.Errorf("expected default count 250, got %d", config.Count)
	}

	if config.Symbol != "TEST" {
		t.Errorf("expected default symbol TEST, got %s", config.Symbol)
	}

	if config.StartDate.Weekday() == time.Saturday || config.StartDate.Weekday() == time.Sunday {
		t.Errorf("default start date falls on a weekend: %v", config.StartDate)
	}

	if config.InitialPrice != 100.0 {
		t.Errorf("expected default initial price 100.0, got %f", config.InitialPrice)
	}
}
