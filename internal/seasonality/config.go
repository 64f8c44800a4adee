package seasonality

import "time"

// EventWindow is one calendar override. Windows recur every year of the
// horizon and are matched inclusively on (month, day). Later-declared
// windows take precedence where ranges overlap.
type EventWindow struct {
	Name       string
	FromMonth  time.Month
	FromDay    int
	ToMonth    time.Month
	ToDay      int
	Multiplier float64
}

// Contains reports whether the window covers the given date's month and day.
func (w EventWindow) Contains(d time.Time) bool {
	from := int(w.FromMonth)*100 + w.FromDay
	to := int(w.ToMonth)*100 + w.ToDay
	pos := int(d.Month())*100 + d.Day()
	return pos >= from && pos <= to
}

// Config holds the seasonality model parameters. Growth fraction bounds are
// the caller's responsibility; out-of-range values are applied as given.
type Config struct {
	GrowthFraction float64                   // total trend growth over the horizon
	WeekdayFactors map[time.Weekday]float64  // 7 entries, one per weekday
	PaydayFromDay  int                       // days strictly after this day of month get the boost
	PaydayBoost    float64
	Events         []EventWindow // declaration order is precedence order
}

// DefaultConfig returns the reference retail calendar: weekend-skewed
// weekdays, an end-of-month payday boost, a summer sale, black week,
// the christmas rush and the post-christmas slump.
func DefaultConfig() Config {
	return Config{
		GrowthFraction: 0.10,
		WeekdayFactors: map[time.Weekday]float64{
			time.Monday:    0.90,
			time.Tuesday:   0.85,
			time.Wednesday: 0.90,
			time.Thursday:  0.95,
			time.Friday:    1.00,
			time.Saturday:  1.20,
			time.Sunday:    1.30,
		},
		PaydayFromDay: 25,
		PaydayBoost:   1.15,
		Events: []EventWindow{
			{Name: "summer_sale", FromMonth: time.July, FromDay: 15, ToMonth: time.July, ToDay: 30, Multiplier: 1.5},
			{Name: "black_week", FromMonth: time.November, FromDay: 20, ToMonth: time.November, ToDay: 27, Multiplier: 3.0},
			{Name: "christmas_rush", FromMonth: time.December, FromDay: 1, ToMonth: time.December, ToDay: 15, Multiplier: 1.8},
			{Name: "christmas_slump", FromMonth: time.December, FromDay: 24, ToMonth: time.December, ToDay: 26, Multiplier: 0.2},
		},
	}
}
