package forecast

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOf(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{"Midnight", date(2026, 3, 5), date(2026, 3, 5)},
		{"LateEvening", time.Date(2026, 3, 5, 23, 30, 0, 0, time.UTC), date(2026, 3, 5)},
		{"KeepsWallDateAcrossZones", time.Date(2026, 3, 5, 23, 30, 0, 0, time.FixedZone("AEST", 10*3600)), date(2026, 3, 5)},
		{"NegativeOffset", time.Date(2026, 3, 5, 0, 15, 0, 0, time.FixedZone("EST", -5*3600)), date(2026, 3, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOf(tt.input); !got.Equal(tt.expected) {
				t.Errorf("DateOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time
		end          time.Time
		intervalDays int
		expected     []time.Time
	}{
		{
			"WeeklyInclusiveEnd",
			date(2026, 1, 1), date(2026, 1, 29), 7,
			[]time.Time{date(2026, 1, 1), date(2026, 1, 8), date(2026, 1, 15), date(2026, 1, 22), date(2026, 1, 29)},
		},
		{
			"EndBetweenBuckets",
			date(2026, 1, 1), date(2026, 1, 28), 7,
			[]time.Time{date(2026, 1, 1), date(2026, 1, 8), date(2026, 1, 15), date(2026, 1, 22)},
		},
		{
			"StartEqualsEnd",
			date(2026, 1, 1), date(2026, 1, 1), 7,
			[]time.Time{date(2026, 1, 1)},
		},
		{
			"StartAfterEnd",
			date(2026, 2, 1), date(2026, 1, 1), 7,
			[]time.Time{date(2026, 2, 1)},
		},
		{
			"ZeroInterval",
			date(2026, 1, 1), date(2026, 1, 29), 0,
			[]time.Time{date(2026, 1, 1)},
		},
		{
			"NegativeInterval",
			date(2026, 1, 1), date(2026, 1, 29), -3,
			[]time.Time{date(2026, 1, 1)},
		},
		{
			"DailyInterval",
			date(2026, 1, 1), date(2026, 1, 3), 1,
			[]time.Time{date(2026, 1, 1), date(2026, 1, 2), date(2026, 1, 3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildGrid(tt.start, tt.end, tt.intervalDays)
			if len(got) != len(tt.expected) {
				t.Fatalf("BuildGrid() returned %d buckets, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if !got[i].Equal(tt.expected[i]) {
					t.Errorf("bucket %d = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestBuildGridStripsTimeOfDay(t *testing.T) {
	start := time.Date(2026, 1, 1, 17, 45, 12, 0, time.UTC)
	end := time.Date(2026, 1, 15, 3, 0, 0, 0, time.UTC)

	grid := BuildGrid(start, end, 7)
	for i, d := range grid {
		if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
			t.Errorf("bucket %d has time-of-day: %v", i, d)
		}
	}
	if len(grid) != 3 {
		t.Errorf("expected 3 buckets, got %d", len(grid))
	}
}

func TestActualLength(t *testing.T) {
	grid := BuildGrid(date(2026, 1, 1), date(2026, 1, 29), 7)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"NowBeforeGrid", date(2025, 12, 1), 0},
		{"NowOnFirstBucket", date(2026, 1, 1), 1},
		{"NowBetweenBuckets", date(2026, 1, 16), 3},
		{"NowOnLastBucket", date(2026, 1, 29), 5},
		{"NowAfterGrid", date(2026, 6, 1), 5},
		{"NowLateOnBucketDay", time.Date(2026, 1, 8, 23, 59, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActualLength(grid, tt.now); got != tt.expected {
				t.Errorf("ActualLength() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestActualLengthEmptyGrid(t *testing.T) {
	if got := ActualLength(TimeGrid{}, date(2026, 1, 1)); got != 0 {
		t.Errorf("ActualLength(empty) = %d, want 0", got)
	}
}
