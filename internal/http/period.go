package http

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"kakeibo/internal/core"
)

// Named relative windows. The presentation layer resolves these to concrete
// dates; the core only ever sees a DateRange.
const (
	PeriodThisMonth   = "this_month"
	PeriodLastMonth   = "last_month"
	PeriodLast3Months = "last_3_months"
	PeriodLast6Months = "last_6_months"
	PeriodThisYear    = "this_year"
	PeriodLastYear    = "last_year"
)

var errUnknownPeriod = errors.New("unknown period")

// ResolvePeriod translates a named window into a concrete date range
// relative to now.
func ResolvePeriod(name string, now time.Time) (core.DateRange, error) {
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())

	switch name {
	case PeriodThisMonth:
		return core.DateRange{
			Start: core.NewDate(now.Year(), int(now.Month()), 1),
			End:   today,
		}, nil
	case PeriodLastMonth:
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		lastOfPrev := firstOfThis.AddDate(0, 0, -1)
		return core.DateRange{
			Start: core.NewDate(lastOfPrev.Year(), int(lastOfPrev.Month()), 1),
			End:   core.NewDate(lastOfPrev.Year(), int(lastOfPrev.Month()), lastOfPrev.Day()),
		}, nil
	case PeriodLast3Months:
		start := now.AddDate(0, 0, -90)
		return core.DateRange{
			Start: core.NewDate(start.Year(), int(start.Month()), start.Day()),
			End:   today,
		}, nil
	case PeriodLast6Months:
		start := now.AddDate(0, 0, -180)
		return core.DateRange{
			Start: core.NewDate(start.Year(), int(start.Month()), start.Day()),
			End:   today,
		}, nil
	case PeriodThisYear:
		return core.DateRange{
			Start: core.NewDate(now.Year(), 1, 1),
			End:   today,
		}, nil
	case PeriodLastYear:
		return core.DateRange{
			Start: core.NewDate(now.Year()-1, 1, 1),
			End:   core.NewDate(now.Year()-1, 12, 31),
		}, nil
	default:
		return core.DateRange{}, fmt.Errorf("%w: %q", errUnknownPeriod, name)
	}
}

// parseRange builds the date range from query parameters. Explicit start/end
// dates win over a named period; absent parameters leave the range open.
func parseRange(query url.Values, now time.Time) (core.DateRange, error) {
	startStr := query.Get("start")
	endStr := query.Get("end")

	if startStr == "" && endStr == "" {
		if period := query.Get("period"); period != "" {
			return ResolvePeriod(period, now)
		}
		return core.DateRange{}, nil
	}

	var rng core.DateRange
	if startStr != "" {
		start, err := core.ParseDate(startStr)
		if err != nil {
			return core.DateRange{}, fmt.Errorf("start: %w", err)
		}
		rng.Start = start
	}
	if endStr != "" {
		end, err := core.ParseDate(endStr)
		if err != nil {
			return core.DateRange{}, fmt.Errorf("end: %w", err)
		}
		rng.End = end
	}
	if err := rng.Validate(); err != nil {
		return core.DateRange{}, err
	}
	return rng, nil
}
