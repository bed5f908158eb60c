package mocks

//go:generate mockgen -destination=./mock_quotesource.go -package=mocks github.com/pal-3/AlgorithmTradingBacktester/pkg/quotesource Source
//go:generate mockgen -destination=./mock_store.go -package=mocks github.com/pal-3/AlgorithmTradingBacktester/internal/store MarketDataStore,SignalStore
//go:generate mockgen -destination=./mock_ratelimit.go -package=mocks github.com/pal-3/AlgorithmTradingBacktester/internal/ratelimit Limiter
//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/pal-3/AlgorithmTradingBacktester/internal/strategy Strategy
