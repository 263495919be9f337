// Package analysis derives expense reports: summary statistics, category
// breakdowns, time-bucketed series and trend indicators over a selection of
// expense records. The whole pipeline is pure and single-pass; the only
// collaborator is the record store behind the RecordFinder port.
package analysis

import "time"

// epochMin anchors "until <end>" filters far enough in the past that they
// behave as "from the beginning".
var epochMin = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Interval is a closed date interval: both bounds are included.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ResolveRange turns optional filter bounds into a concrete interval.
// Policy, in priority order: both bounds given; start only (until now);
// end only (from the 1900 sentinel); neither (the last twelve months).
// Inputs are assumed already validated by the caller.
func ResolveRange(start, end *time.Time, now time.Time) Interval {
	switch {
	case start != nil && end != nil:
		return Interval{Start: *start, End: *end}
	case start != nil:
		return Interval{Start: *start, End: now}
	case end != nil:
		return Interval{Start: epochMin, End: *end}
	default:
		return Interval{Start: now.AddDate(0, -12, 0), End: now}
	}
}
