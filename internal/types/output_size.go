package types

import "github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"

// OutputSize selects how much history a quote source returns for one fetch.
type OutputSize string

const (
	// OutputSizeCompact returns roughly the 100 most recent daily bars.
	OutputSizeCompact OutputSize = "compact"
	// OutputSizeFull returns the entire available daily history.
	OutputSizeFull OutputSize = "full"
)

// ParseOutputSize validates a raw output size value. The empty string
// defaults to compact, matching the ingestion trigger's default.
func ParseOutputSize(raw string) (OutputSize, error) {
	switch OutputSize(raw) {
	case OutputSizeCompact, OutputSizeFull:
		return OutputSize(raw), nil
	case "":
		return OutputSizeCompact, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidOutputSize, "invalid output size %q: must be compact or full", raw)
	}
}
