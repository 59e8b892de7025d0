package calendar

import (
	"time"

	"github.com/TommyTam2012/hotel-booking-api/utils"
)

// Cell is one paintable date of the two-month grid.
type Cell struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	Remaining int     `json:"remaining"`
	Known     bool    `json:"known"`

	// SoldOut marks dates whose remaining cannot cover the current quantity.
	SoldOut bool `json:"soldOut"`
	// Selectable marks dates usable as a check-in (not past, not sold out).
	Selectable bool `json:"selectable"`
	// InRange highlights the inclusive night interval
	// [check-in, check-out - 1]; the check-out date itself is never in it.
	InRange    bool `json:"inRange"`
	IsCheckIn  bool `json:"isCheckIn"`
	IsCheckOut bool `json:"isCheckOut"`
}

// GridRange returns the closed date range of the rolling two-month view
// anchored at today: the first of today's month through the last day of the
// following month.
func GridRange(today time.Time) (time.Time, time.Time) {
	today = utils.Day(today)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	// First of the month after next, minus one day.
	last := utils.AddDays(first.AddDate(0, 2, 0), -1)
	return first, last
}

// Grid paints every visible date of the two-month view from the last-known
// cache: sold-out markers, selected-range highlighting and the
// price/remaining overlay, with unknown dates defaulting to open.
func (s *Selection) Grid() []Cell {
	start, end := GridRange(s.today)

	var lastNight time.Time
	if s.state == RangeSet {
		lastNight = utils.AddDays(s.checkOut, -1)
	}

	days := utils.DaysIn(start, end)
	cells := make([]Cell, 0, len(days))
	for _, d := range days {
		key := utils.FormatDate(d)

		day, known := s.cache[key]
		if !known || !day.Known {
			day = Day{Date: d, Price: day.Price, Remaining: defaultOpenRemaining, Known: false}
		}

		soldOut := day.Remaining < s.quantity
		cell := Cell{
			Date:       key,
			Price:      day.Price,
			Remaining:  day.Remaining,
			Known:      day.Known,
			SoldOut:    soldOut,
			Selectable: !soldOut && utils.CompareDates(d, s.today) >= 0,
		}

		if s.state != Empty && utils.CompareDates(d, s.checkIn) == 0 {
			cell.IsCheckIn = true
		}
		if s.state == RangeSet {
			if utils.CompareDates(d, s.checkOut) == 0 {
				cell.IsCheckOut = true
			}
			if utils.CompareDates(d, s.checkIn) >= 0 && utils.CompareDates(d, lastNight) <= 0 {
				cell.InRange = true
			}
		}
		cells = append(cells, cell)
	}
	return cells
}
