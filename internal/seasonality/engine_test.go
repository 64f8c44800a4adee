package seasonality

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDailyMultipliers_EmptyForZeroDays(t *testing.T) {
	e := NewEngine(DefaultConfig())

	if got := e.DailyMultipliers(date(2024, 1, 1), 0); len(got) != 0 {
		t.Errorf("expected empty output for 0 days, got %d rows", len(got))
	}
	if got := e.DailyMultipliers(date(2024, 1, 1), -3); len(got) != 0 {
		t.Errorf("expected empty output for negative days, got %d rows", len(got))
	}
}

func TestDailyMultipliers_Deterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())

	a := e.DailyMultipliers(date(2024, 1, 1), 365)
	b := e.DailyMultipliers(date(2024, 1, 1), 365)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("day %d differs between runs: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestDailyMultipliers_AllStrictlyPositive(t *testing.T) {
	e := NewEngine(DefaultConfig())

	for i, day := range e.DailyMultipliers(date(2024, 1, 1), 365) {
		if day.Trend <= 0 || day.Weekly <= 0 || day.Monthly <= 0 || day.Event <= 0 {
			t.Fatalf("day %d has a non-positive factor: %+v", i, day)
		}
		if day.Total <= 0 {
			t.Fatalf("day %d total multiplier not positive: %v", i, day.Total)
		}
	}
}

func TestTrend_Endpoints(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	const days = 365
	cal := e.DailyMultipliers(date(2024, 1, 1), days)

	if cal[0].Trend != 1.0 {
		t.Errorf("trend at day 0 = %v, want 1.0", cal[0].Trend)
	}

	wantLast := 1.0 + float64(days-1)*(cfg.GrowthFraction/days)
	if math.Abs(cal[days-1].Trend-wantLast) > 1e-12 {
		t.Errorf("trend at last day = %v, want %v", cal[days-1].Trend, wantLast)
	}
}

func TestWeekdayFactors_CompleteTable(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.WeekdayFactors) != 7 {
		t.Fatalf("weekday table has %d entries, want 7", len(cfg.WeekdayFactors))
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if _, ok := cfg.WeekdayFactors[wd]; !ok {
			t.Errorf("weekday table missing entry for %v", wd)
		}
	}
}

func TestWeeklyFactor_AppliedByWeekday(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	// 2024-01-01 is a Monday.
	cal := e.DailyMultipliers(date(2024, 1, 1), 7)
	for i, day := range cal {
		want := cfg.WeekdayFactors[day.Date.Weekday()]
		if day.Weekly != want {
			t.Errorf("day %d (%v): weekly = %v, want %v", i, day.Date.Weekday(), day.Weekly, want)
		}
	}
}

func TestMonthlyFactor_PaydayWindow(t *testing.T) {
	e := NewEngine(DefaultConfig())

	cal := e.DailyMultipliers(date(2024, 1, 1), 31)
	for _, day := range cal {
		want := 1.0
		if day.Date.Day() > 25 {
			want = 1.15
		}
		if day.Monthly != want {
			t.Errorf("day %d: monthly = %v, want %v", day.Date.Day(), day.Monthly, want)
		}
	}
}

func TestEventFactor_Windows(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name string
		d    time.Time
		want float64
	}{
		{"outside any window", date(2024, 3, 10), 1.0},
		{"summer sale start", date(2024, 7, 15), 1.5},
		{"summer sale end", date(2024, 7, 30), 1.5},
		{"day after summer sale", date(2024, 7, 31), 1.0},
		{"black week", date(2024, 11, 24), 3.0},
		{"christmas rush", date(2024, 12, 10), 1.8},
		{"christmas slump", date(2024, 12, 25), 0.2},
		{"after slump", date(2024, 12, 27), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.eventFactor(tt.d); got != tt.want {
				t.Errorf("eventFactor(%v) = %v, want %v", tt.d.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestEventFactor_LastDeclaredWindowWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Events = []EventWindow{
		{Name: "wide", FromMonth: time.June, FromDay: 1, ToMonth: time.June, ToDay: 30, Multiplier: 2.0},
		{Name: "narrow", FromMonth: time.June, FromDay: 10, ToMonth: time.June, ToDay: 12, Multiplier: 0.5},
	}
	e := NewEngine(cfg)

	if got := e.eventFactor(date(2024, 6, 11)); got != 0.5 {
		t.Errorf("overlapping windows: got %v, want later-declared 0.5", got)
	}
	if got := e.eventFactor(date(2024, 6, 20)); got != 2.0 {
		t.Errorf("non-overlapping part: got %v, want 2.0", got)
	}
}

func TestDailyMultipliers_TotalIsProductOfFactors(t *testing.T) {
	e := NewEngine(DefaultConfig())

	for i, day := range e.DailyMultipliers(date(2024, 11, 20), 10) {
		want := day.Trend * day.Weekly * day.Monthly * day.Event
		if day.Total != want {
			t.Errorf("day %d: total = %v, want product %v", i, day.Total, want)
		}
	}
}
