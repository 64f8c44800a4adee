// Package seasonality computes the composite daily demand multiplier that
// drives the non-homogeneous Poisson arrival process. The engine is fully
// deterministic: same config and date range, same output.
package seasonality

import (
	"time"

	"github.com/julianhilgemann/BI-Pipeline/internal/domain"
)

// Engine computes per-day demand multipliers.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// DailyMultipliers returns one CalendarDay per date in the half-open range
// [start, start+days). A non-positive day count yields an empty slice.
func (e *Engine) DailyMultipliers(start time.Time, days int) []domain.CalendarDay {
	if days <= 0 {
		return nil
	}

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	slope := e.cfg.GrowthFraction / float64(days)

	out := make([]domain.CalendarDay, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		day := domain.CalendarDay{
			Date:    d,
			Trend:   1.0 + float64(i)*slope,
			Weekly:  e.cfg.WeekdayFactors[d.Weekday()],
			Monthly: e.monthlyFactor(d),
			Event:   e.eventFactor(d),
		}
		day.Total = day.Trend * day.Weekly * day.Monthly * day.Event
		out = append(out, day)
	}
	return out
}

// monthlyFactor applies the payday boost to the end-of-month window.
func (e *Engine) monthlyFactor(d time.Time) float64 {
	if d.Day() > e.cfg.PaydayFromDay {
		return e.cfg.PaydayBoost
	}
	return 1.0
}

// eventFactor resolves the event multiplier for a date. Every matching
// window overwrites the previous one, so the last declared match wins.
func (e *Engine) eventFactor(d time.Time) float64 {
	factor := 1.0
	for _, w := range e.cfg.Events {
		if w.Contains(d) {
			factor = w.Multiplier
		}
	}
	return factor
}
