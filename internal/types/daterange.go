package types

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/pal-3/AlgorithmTradingBacktester/pkg/errors"
)

// DateRange bounds a query on trade dates. Either side may be absent, in
// which case the range is open on that side.
type DateRange struct {
	Start optional.Option[time.Time]
	End   optional.Option[time.Time]
}

// FullRange returns a range open on both sides.
func FullRange() DateRange {
	return DateRange{
		Start: optional.None[time.Time](),
		End:   optional.None[time.Time](),
	}
}

// NewDateRange bounds both sides.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: optional.Some(DateOnly(start)),
		End:   optional.Some(DateOnly(end)),
	}
}

// ParseDateRange parses optional YYYY-MM-DD bounds. Empty strings leave the
// corresponding side open.
func ParseDateRange(start, end string) (DateRange, error) {
	dateRange := FullRange()

	if start != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, start, time.UTC)
		if err != nil {
			return DateRange{}, errors.Newf(errors.ErrCodeInvalidRequest, "invalid start date '%s': expected YYYY-MM-DD", start)
		}
		dateRange.Start = optional.Some(parsed)
	}

	if end != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, end, time.UTC)
		if err != nil {
			return DateRange{}, errors.Newf(errors.ErrCodeInvalidRequest, "invalid end date '%s': expected YYYY-MM-DD", end)
		}
		dateRange.End = optional.Some(parsed)
	}

	return dateRange, nil
}
