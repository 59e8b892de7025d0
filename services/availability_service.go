// services/availability_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/TommyTam2012/hotel-booking-api/models"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultRemaining is the "unknown, assume open" allotment used for dates
// that have never been explicitly priced. Absence of a row means open, not
// sold out. That is a product decision, not a bug to fix here.
const DefaultRemaining = 5

// WeekendSurcharge is added to a room type's base price on Saturdays and
// Sundays, matching the seeded price model.
const WeekendSurcharge = 100

// AvailabilityService is the single source of truth for per-night inventory.
// Everything else reads it through Query; only Reserve (and seeding) mutates it.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// DayAvailability is one answered date: the price and remaining count a
// caller paints into a grid cell. Known is false when the record was
// synthesized from the default-open policy rather than read from storage.
type DayAvailability struct {
	Day       string  `json:"day"`
	Price     float64 `json:"price"`
	Remaining int     `json:"remaining"`
	Known     bool    `json:"known"`
}

// Query returns every date in the closed range [start, end] for a room type.
// Dates absent from storage are synthesized with the default-open fallback so
// the caller can always render a full grid.
func (s *AvailabilityService) Query(roomTypeID uint, start, end time.Time) (map[string]DayAvailability, error) {
	if utils.CompareDates(end, start) < 0 {
		return nil, &ValidationError{Field: "range", Reason: "end date before start date"}
	}

	rt, err := s.loadRoomType(s.DB, roomTypeID)
	if err != nil {
		return nil, err
	}

	var rows []models.Availability
	if err := s.DB.
		Where("room_type_id = ? AND day BETWEEN ? AND ?",
			roomTypeID, utils.FormatDate(start), utils.FormatDate(end)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}

	byDay := make(map[string]models.Availability, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r
	}

	out := make(map[string]DayAvailability)
	for _, d := range utils.DaysIn(start, end) {
		key := utils.FormatDate(d)
		if r, ok := byDay[key]; ok {
			out[key] = DayAvailability{Day: key, Price: r.Price, Remaining: r.Remaining, Known: true}
			continue
		}
		out[key] = DayAvailability{Day: key, Price: defaultPriceFor(rt, d), Remaining: DefaultRemaining}
	}
	return out, nil
}

// Reserve validates and decrements every night of [checkIn, checkOut) as one
// atomic unit and returns the finalized nightly breakdown.
//
// Validation and mutation are fused on purpose: the cache painted from Query
// is untrusted at commit time, so each night's remaining is re-checked by the
// guarded UPDATE itself (remaining >= quantity in the WHERE clause). Any
// single failing night rolls the whole transaction back, so concurrent
// overlapping reserves can never drive a shared night below zero.
func (s *AvailabilityService) Reserve(roomTypeID uint, checkIn, checkOut time.Time, quantity int) ([]DayAvailability, error) {
	var breakdown []DayAvailability
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		breakdown, err = s.reserve(tx, roomTypeID, checkIn, checkOut, quantity)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return breakdown, nil
}

// reserve runs inside the caller's transaction so a booking insert and its
// inventory decrement commit (or roll back) together.
func (s *AvailabilityService) reserve(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time, quantity int) ([]DayAvailability, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	nights := utils.NightsBetween(checkIn, checkOut)
	if nights == 0 {
		return nil, &ValidationError{Field: "range", Reason: "check_out must be after check_in"}
	}

	rt, err := s.loadRoomType(tx, roomTypeID)
	if err != nil {
		return nil, err
	}

	breakdown := make([]DayAvailability, 0, nights)
	for d := utils.Day(checkIn); utils.CompareDates(d, checkOut) < 0; d = utils.AddDays(d, 1) {
		key := utils.FormatDate(d)

		// Materialize the default-open row for a never-priced date so the
		// guarded decrement below has a row to bite on.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Availability{
			RoomTypeID: roomTypeID,
			Day:        key,
			Price:      defaultPriceFor(rt, d),
			Remaining:  DefaultRemaining,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to materialize availability for %s: %w", key, err)
		}

		res := tx.Model(&models.Availability{}).
			Where("room_type_id = ? AND day = ? AND remaining >= ?", roomTypeID, key, quantity).
			UpdateColumn("remaining", gorm.Expr("remaining - ?", quantity))
		if res.Error != nil {
			return nil, fmt.Errorf("failed to decrement availability for %s: %w", key, res.Error)
		}
		if res.RowsAffected == 0 {
			// This night can't cover the quantity; the transaction unwinds
			// every decrement already made for earlier nights.
			return nil, ErrInsufficientInventory
		}

		var row models.Availability
		if err := tx.Where("room_type_id = ? AND day = ?", roomTypeID, key).First(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to reload availability for %s: %w", key, err)
		}
		breakdown = append(breakdown, DayAvailability{Day: key, Price: row.Price, Remaining: row.Remaining, Known: true})
	}
	return breakdown, nil
}

func (s *AvailabilityService) loadRoomType(tx *gorm.DB, roomTypeID uint) (models.RoomType, error) {
	var rt models.RoomType
	if err := tx.First(&rt, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rt, ErrRoomTypeNotFound
		}
		return rt, fmt.Errorf("failed to load room type %d: %w", roomTypeID, err)
	}
	return rt, nil
}

// defaultPriceFor mirrors the seeder's price model so synthesized cells carry
// a usable price instead of zero.
func defaultPriceFor(rt models.RoomType, d time.Time) float64 {
	price := rt.BasePrice
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		price += WeekendSurcharge
	}
	return price
}
