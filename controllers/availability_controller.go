// controllers/availability_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TommyTam2012/hotel-booking-api/services"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Svc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Svc: svc}
}

// QueryAvailability handles GET /api/availability?room_type_id=&start=&end=
// The range is inclusive on both ends; dates the store has never priced come
// back with known=false and the default-open remaining count.
func (ctrl *AvailabilityController) QueryAvailability(c *gin.Context) {
	roomTypeID, ok := parseUintQuery(c, "room_type_id")
	if !ok {
		return
	}

	start, err := utils.ParseDate(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := utils.ParseDate(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	days, err := ctrl.Svc.Query(roomTypeID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_type_id": roomTypeID,
		"start":        utils.FormatDate(start),
		"end":          utils.FormatDate(end),
		"days":         days,
	})
}

func parseUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, key+" is required")
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		utils.JSONError(c, http.StatusBadRequest, key+" must be a positive integer")
		return 0, false
	}
	return uint(v), true
}

// respondServiceError maps service errors onto the response envelope.
func respondServiceError(c *gin.Context, err error) {
	var fe *utils.FormatError
	switch {
	case errors.As(err, &fe):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case services.AsValidationError(err) != nil:
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrRoomTypeNotFound):
		utils.JSONError(c, http.StatusNotFound, "room type not found")
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found")
	case errors.Is(err, services.ErrInsufficientInventory):
		// The guest's selection went stale between painting and committing.
		utils.JSONError(c, http.StatusConflict, "selection no longer available")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}
