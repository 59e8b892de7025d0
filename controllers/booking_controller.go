// controllers/booking_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/TommyTam2012/hotel-booking-api/services"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// CreateBooking handles POST /api/bookings.
//
// Precondition failures map to 400 with the offending field; a range that
// lost its inventory between the guest's grid paint and this commit maps to
// 409 so the client invalidates the selection and asks for a new range.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var in services.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if in.RoomTypeID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "room_type_id is required")
		return
	}

	booking, err := ctrl.BookingSvc.Create(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookings handles GET /api/bookings.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetBookingDetails handles GET /api/bookings/:id.
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "booking id must be numeric")
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
