package analysis

import (
	"testing"
	"time"
)

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end *time.Time
		want       Interval
	}{
		{
			name:  "both bounds",
			start: &start,
			end:   &end,
			want:  Interval{Start: start, End: end},
		},
		{
			name:  "start only runs until now",
			start: &start,
			want:  Interval{Start: start, End: now},
		},
		{
			name: "end only runs from the sentinel",
			end:  &end,
			want: Interval{Start: epochMin, End: end},
		},
		{
			name: "neither defaults to the last twelve months",
			want: Interval{Start: now.AddDate(0, -12, 0), End: now},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRange(tt.start, tt.end, now)
			if !got.Start.Equal(tt.want.Start) || !got.End.Equal(tt.want.End) {
				t.Fatalf("ResolveRange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveRangeSentinelIsFarPast(t *testing.T) {
	if epochMin.Year() != 1900 {
		t.Fatalf("sentinel year = %d, want 1900", epochMin.Year())
	}
}
