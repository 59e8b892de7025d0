// controllers/calendar_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/TommyTam2012/hotel-booking-api/calendar"
	"github.com/TommyTam2012/hotel-booking-api/services"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

// CalendarController serves the painted two-month grid for the booking
// widget. It rebuilds the guest's selection from query params, primes it with
// authoritative availability and returns the cells ready to render, so the
// widget stays a dumb painter.
type CalendarController struct {
	Availability *services.AvailabilityService
}

func NewCalendarController(availability *services.AvailabilityService) *CalendarController {
	return &CalendarController{Availability: availability}
}

// GetCalendar handles
// GET /api/calendar?room_type_id=&quantity=&check_in=&check_out=
// check_in/check_out are optional; when both are present the completed range
// is re-validated against the store and reverts to check-in-only if any night
// can no longer cover the quantity.
func (ctrl *CalendarController) GetCalendar(c *gin.Context) {
	roomTypeID, ok := parseUintQuery(c, "room_type_id")
	if !ok {
		return
	}

	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		q, ok := parseUintQuery(c, "quantity")
		if !ok {
			return
		}
		quantity = int(q)
	}

	today := utils.Day(time.Now().UTC())
	sel := calendar.NewSelection(roomTypeID, quantity, today)

	// Prime the grid window so every visible cell paints from authoritative
	// data rather than the default-open fallback alone.
	start, end := calendar.GridRange(today)
	days, err := ctrl.fetch(roomTypeID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sel.Prime(days)

	invalidated := false
	if rawIn := c.Query("check_in"); rawIn != "" {
		ci, err := utils.ParseDate(rawIn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := sel.Pick(ci); err != nil {
			utils.JSONError(c, http.StatusConflict, "check-in date not selectable")
			return
		}

		if rawOut := c.Query("check_out"); rawOut != "" {
			co, err := utils.ParseDate(rawOut)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, err.Error())
				return
			}
			rev, err := sel.Pick(co)
			if err != nil {
				utils.JSONError(c, http.StatusConflict, "check-out date not selectable")
				return
			}
			if rev != nil {
				rangeDays, fetchErr := ctrl.fetch(rev.RoomTypeID, rev.Start, rev.End)
				if sel.Resolve(rev, rangeDays, fetchErr) == calendar.Invalidated {
					invalidated = true
				}
			}
		}
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_type_id": roomTypeID,
		"quantity":     quantity,
		"state":        sel.State().String(),
		"nights":       sel.Nights(),
		"invalidated":  invalidated,
		"cells":        sel.Grid(),
	})
}

// fetch adapts the availability store's answer to the calendar's cache type.
func (ctrl *CalendarController) fetch(roomTypeID uint, start, end time.Time) (map[string]calendar.Day, error) {
	answer, err := ctrl.Availability.Query(roomTypeID, start, end)
	if err != nil {
		return nil, err
	}
	days := make(map[string]calendar.Day, len(answer))
	for key, a := range answer {
		d, err := utils.ParseDate(key)
		if err != nil {
			continue
		}
		days[key] = calendar.Day{Date: d, Price: a.Price, Remaining: a.Remaining, Known: a.Known}
	}
	return days, nil
}
