package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TommyTam2012/hotel-booking-api/models"
	"github.com/TommyTam2012/hotel-booking-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:controllers_" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.RoomType{}, &models.Availability{}, &models.Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	availabilitySvc := services.NewAvailabilityService(db)
	bookingSvc := services.NewBookingService(db, availabilitySvc)
	ac := NewAvailabilityController(availabilitySvc)
	bc := NewBookingController(bookingSvc)
	cc := NewCalendarController(availabilitySvc)

	r := gin.New()
	r.GET("/api/availability", ac.QueryAvailability)
	r.GET("/api/calendar", cc.GetCalendar)
	r.POST("/api/bookings", bc.CreateBooking)
	r.GET("/api/bookings/:id", bc.GetBookingDetails)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, parsed
}

func TestCreateBookingEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	rt := models.RoomType{TypeName: "Deluxe", BasePrice: 980, MaxGuests: 2}
	require.NoError(t, db.Create(&rt).Error)

	w, body := doJSON(t, r, http.MethodPost, "/api/bookings", gin.H{
		"room_type_id":  rt.ID,
		"check_in":      "2025-06-10",
		"check_out":     "2025-06-12",
		"quantity":      1,
		"guest_name":    "Ada",
		"guest_contact": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	ref := data["reference_code"].(string)
	require.Regexp(t, `^BK-[0-9A-F]{8}$`, ref)
	require.Equal(t, float64(2), data["nights"])

	// The committed booking is retrievable by its row id.
	id := int(data["id"].(float64))
	w, body = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/bookings/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, ref, body["data"].(map[string]any)["reference_code"])
}

func TestCreateBookingStatusMapping(t *testing.T) {
	r, db := newTestRouter(t)
	rt := models.RoomType{TypeName: "Standard", BasePrice: 680, MaxGuests: 2}
	require.NoError(t, db.Create(&rt).Error)
	require.NoError(t, db.Create(&models.Availability{
		RoomTypeID: rt.ID, Day: "2025-06-10", Price: 680, Remaining: 0,
	}).Error)

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{
			name: "malformed date",
			body: gin.H{
				"room_type_id": rt.ID, "check_in": "06/10/2025", "check_out": "2025-06-12",
				"quantity": 1, "guest_name": "Ada",
			},
			want: http.StatusBadRequest,
		},
		{
			name: "inverted range",
			body: gin.H{
				"room_type_id": rt.ID, "check_in": "2025-06-12", "check_out": "2025-06-10",
				"quantity": 1, "guest_name": "Ada",
			},
			want: http.StatusBadRequest,
		},
		{
			name: "missing guest name",
			body: gin.H{
				"room_type_id": rt.ID, "check_in": "2025-06-10", "check_out": "2025-06-12",
				"quantity": 1,
			},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown room type",
			body: gin.H{
				"room_type_id": 9999, "check_in": "2025-06-10", "check_out": "2025-06-12",
				"quantity": 1, "guest_name": "Ada",
			},
			want: http.StatusNotFound,
		},
		{
			name: "sold out night",
			body: gin.H{
				"room_type_id": rt.ID, "check_in": "2025-06-10", "check_out": "2025-06-12",
				"quantity": 1, "guest_name": "Ada",
			},
			want: http.StatusConflict,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doJSON(t, r, http.MethodPost, "/api/bookings", tc.body)
			require.Equal(t, tc.want, w.Code)
			require.Equal(t, false, body["success"])
			require.NotEmpty(t, body["error"])
		})
	}
}

func TestQueryAvailabilityEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	rt := models.RoomType{TypeName: "Suite", BasePrice: 1680, MaxGuests: 4}
	require.NoError(t, db.Create(&rt).Error)
	require.NoError(t, db.Create(&models.Availability{
		RoomTypeID: rt.ID, Day: "2025-06-10", Price: 1500, Remaining: 2,
	}).Error)

	path := fmt.Sprintf("/api/availability?room_type_id=%d&start=2025-06-10&end=2025-06-11", rt.ID)
	w, body := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	days := body["data"].(map[string]any)["days"].(map[string]any)
	require.Len(t, days, 2)

	persisted := days["2025-06-10"].(map[string]any)
	require.Equal(t, true, persisted["known"])
	require.Equal(t, 1500.0, persisted["price"])

	// The second day has never been priced and comes back default-open.
	synthesized := days["2025-06-11"].(map[string]any)
	require.Equal(t, false, synthesized["known"])
	require.Equal(t, float64(services.DefaultRemaining), synthesized["remaining"])
}

func TestQueryAvailabilityBadParams(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/availability?start=2025-06-10&end=2025-06-11", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/availability?room_type_id=1&start=bogus&end=2025-06-11", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	rt := models.RoomType{TypeName: "Family", BasePrice: 950, MaxGuests: 5}
	require.NoError(t, db.Create(&rt).Error)

	path := fmt.Sprintf("/api/calendar?room_type_id=%d&quantity=1", rt.ID)
	w, body := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	require.Equal(t, "empty", data["state"])
	cells := data["cells"].([]any)
	require.GreaterOrEqual(t, len(cells), 59)
}
