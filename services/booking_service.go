// services/booking_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/TommyTam2012/hotel-booking-api/models"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService owns the one write path into the availability table: a
// booking and its inventory decrement commit in the same transaction.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Availability: availability}
}

type CreateBookingInput struct {
	RoomTypeID   uint   `json:"room_type_id"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"` // exclusive
	Quantity     int    `json:"quantity"`
	GuestName    string `json:"guest_name"`
	GuestContact string `json:"guest_contact"`
}

// Create validates the request, reserves inventory for every night in range
// and persists the booking, all inside one transaction.
//
// Precondition order is part of the contract: range presence, date format,
// range direction, quantity, guest identity. Each failure is terminal for
// this request and happens before any store access.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	if strings.TrimSpace(in.CheckIn) == "" || strings.TrimSpace(in.CheckOut) == "" {
		return nil, &ValidationError{Field: "range", Reason: "check_in and check_out are required"}
	}
	ci, err := utils.ParseDate(strings.TrimSpace(in.CheckIn))
	if err != nil {
		return nil, err
	}
	co, err := utils.ParseDate(strings.TrimSpace(in.CheckOut))
	if err != nil {
		return nil, err
	}
	if utils.CompareDates(co, ci) <= 0 {
		return nil, &ValidationError{Field: "range", Reason: "check_out must be after check_in"}
	}
	if in.Quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	guestName := strings.TrimSpace(in.GuestName)
	if guestName == "" {
		return nil, &ValidationError{Field: "guest_name", Reason: "is required"}
	}

	nights := utils.NightsBetween(ci, co)

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		breakdown, rErr := s.Availability.reserve(tx, in.RoomTypeID, ci, co, in.Quantity)
		if rErr != nil {
			return rErr
		}

		total := 0.0
		for _, night := range breakdown {
			total += night.Price * float64(in.Quantity)
		}
		nightlyJSON, mErr := json.Marshal(breakdown)
		if mErr != nil {
			return fmt.Errorf("failed to marshal nightly breakdown: %w", mErr)
		}

		booking = models.Booking{
			RoomTypeID:   in.RoomTypeID,
			CheckIn:      utils.FormatDate(ci),
			CheckOut:     utils.FormatDate(co),
			Nights:       nights,
			Quantity:     in.Quantity,
			GuestName:    guestName,
			GuestContact: strings.TrimSpace(in.GuestContact),
			TotalPrice:   total,
			Status:       "Confirmed",
			Nightly:      datatypes.JSON(nightlyJSON),
		}

		// Retry on reference collision; the code is short enough that two
		// bookings can land on the same prefix.
		maxRetries := 5
		var createErr error
		for attempt := 0; attempt < maxRetries; attempt++ {
			booking.ReferenceCode = newReferenceCode()
			createErr = tx.Create(&booking).Error
			if createErr == nil {
				return nil
			}
			if !isDuplicateKey(createErr) {
				return fmt.Errorf("failed to create booking: %w", createErr)
			}
		}
		return fmt.Errorf("failed to create booking after retries: %w", createErr)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Reload with relations so the caller gets the full confirmation payload.
	if err := s.DB.Preload("RoomType").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", booking.ID, err)
	}
	return &booking, nil
}

// GetAllWithRelations lists bookings newest first.
func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("RoomType").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// GetByID returns one booking or ErrBookingNotFound.
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.Preload("RoomType").First(&bk, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &bk, nil
}

func newReferenceCode() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}
