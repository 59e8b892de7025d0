package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/TommyTam2012/hotel-booking-api/models"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingService(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewBookingService(db, NewAvailabilityService(db)), db
}

func validInput(roomTypeID uint) CreateBookingInput {
	return CreateBookingInput{
		RoomTypeID:   roomTypeID,
		CheckIn:      "2025-03-10",
		CheckOut:     "2025-03-13",
		Quantity:     2,
		GuestName:    "Ada Wong",
		GuestContact: "ada@example.com",
	}
}

func TestCreateBookingPreconditionOrder(t *testing.T) {
	t.Parallel()

	svc, db := newBookingService(t)
	rt := seedRoomType(t, db, "Deluxe", 980)

	cases := []struct {
		name  string
		in    CreateBookingInput
		field string
	}{
		{
			name: "missing range",
			in: func() CreateBookingInput {
				in := validInput(rt.ID)
				in.CheckIn = ""
				in.Quantity = 0 // range must win over quantity
				return in
			}(),
			field: "range",
		},
		{
			name: "inverted range",
			in: func() CreateBookingInput {
				in := validInput(rt.ID)
				in.CheckIn = "2025-03-13"
				in.CheckOut = "2025-03-10"
				return in
			}(),
			field: "range",
		},
		{
			name: "non-positive quantity",
			in: func() CreateBookingInput {
				in := validInput(rt.ID)
				in.Quantity = 0
				in.GuestName = "" // quantity must win over identity
				return in
			}(),
			field: "quantity",
		},
		{
			name: "missing identity",
			in: func() CreateBookingInput {
				in := validInput(rt.ID)
				in.GuestName = "   "
				return in
			}(),
			field: "guest_name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.in)
			ve := AsValidationError(err)
			require.NotNil(t, ve, "want ValidationError, got %v", err)
			require.Equal(t, tc.field, ve.Field)
		})
	}

	// Precondition failures never touch storage.
	var bookings int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&bookings).Error)
	require.Zero(t, bookings)
	var nights int64
	require.NoError(t, db.Model(&models.Availability{}).Count(&nights).Error)
	require.Zero(t, nights)
}

func TestCreateBookingMalformedDate(t *testing.T) {
	t.Parallel()

	svc, db := newBookingService(t)
	rt := seedRoomType(t, db, "Deluxe", 980)

	in := validInput(rt.ID)
	in.CheckIn = "10/03/2025"
	_, err := svc.Create(in)

	var fe *utils.FormatError
	require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
}

func TestCreateBookingSuccess(t *testing.T) {
	t.Parallel()

	svc, db := newBookingService(t)
	rt := seedRoomType(t, db, "Deluxe", 980)
	for _, day := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		seedNight(t, db, rt.ID, day, 980, 2)
	}

	booking, err := svc.Create(validInput(rt.ID))
	require.NoError(t, err)

	require.Equal(t, 3, booking.Nights)
	require.Equal(t, 2, booking.Quantity)
	require.Equal(t, "2025-03-10", booking.CheckIn)
	require.Equal(t, "2025-03-13", booking.CheckOut)
	require.Equal(t, "Confirmed", booking.Status)
	require.Equal(t, "Ada Wong", booking.GuestName)
	require.Equal(t, 980.0*3*2, booking.TotalPrice)
	require.Contains(t, booking.ReferenceCode, "BK-")
	require.Equal(t, "Deluxe", booking.RoomType.TypeName)

	var nightly []DayAvailability
	require.NoError(t, json.Unmarshal(booking.Nightly, &nightly))
	require.Len(t, nightly, 3)

	// Inventory went to zero for every occupied night; checkout day untouched.
	for _, day := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		require.Equal(t, 0, remainingFor(t, db, rt.ID, day))
	}

	// The same range now fails even for one unit.
	in := validInput(rt.ID)
	in.Quantity = 1
	_, err = svc.Create(in)
	require.ErrorIs(t, err, ErrInsufficientInventory)
}

func TestCreateBookingInsufficientLeavesNoTrace(t *testing.T) {
	t.Parallel()

	svc, db := newBookingService(t)
	rt := seedRoomType(t, db, "Standard", 680)
	seedNight(t, db, rt.ID, "2025-03-10", 680, 5)
	seedNight(t, db, rt.ID, "2025-03-11", 680, 1) // cannot cover quantity 2

	_, err := svc.Create(validInput(rt.ID))
	require.ErrorIs(t, err, ErrInsufficientInventory)

	var bookings int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&bookings).Error)
	require.Zero(t, bookings)
	require.Equal(t, 5, remainingFor(t, db, rt.ID, "2025-03-10"))
	require.Equal(t, 1, remainingFor(t, db, rt.ID, "2025-03-11"))
}

func TestCreateBookingUnknownRoomType(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingService(t)

	_, err := svc.Create(validInput(12345))
	require.ErrorIs(t, err, ErrRoomTypeNotFound)
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	svc, db := newBookingService(t)
	rt := seedRoomType(t, db, "Suite", 1680)

	created, err := svc.Create(validInput(rt.ID))
	require.NoError(t, err)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ReferenceCode, got.ReferenceCode)

	_, err = svc.GetByID(created.ID + 100)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetAllWithRelationsNewestFirst(t *testing.T) {
	t.Parallel()

	svc, db := newBookingService(t)
	rt := seedRoomType(t, db, "Family", 950)

	first, err := svc.Create(validInput(rt.ID))
	require.NoError(t, err)

	in := validInput(rt.ID)
	in.CheckIn = "2025-04-01"
	in.CheckOut = "2025-04-03"
	second, err := svc.Create(in)
	require.NoError(t, err)

	list, err := svc.GetAllWithRelations()
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []uint{list[0].ID, list[1].ID}
	require.Contains(t, ids, first.ID)
	require.Contains(t, ids, second.ID)
}
