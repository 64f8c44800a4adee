package domain

import "time"

// CalendarDay holds the composite demand multiplier for a single date.
// All four factors are strictly positive; Total is their product.
type CalendarDay struct {
	Date    time.Time // midnight UTC
	Trend   float64   // linear growth factor, 1.0 on day 0
	Weekly  float64   // day-of-week factor from the weekday table
	Monthly float64   // payday-window factor
	Event   float64   // event-window factor, 1.0 outside windows
	Total   float64   // Trend * Weekly * Monthly * Event
}
