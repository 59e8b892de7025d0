package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking is a confirmed reservation. By the time a row exists the inventory
// decrement has already happened; the record is immutable afterwards
// (cancellation is not part of this system).
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	RoomTypeID    uint   `gorm:"index;column:room_type_id" json:"room_type_id"`

	// CheckIn is inclusive, CheckOut exclusive: the night before CheckOut is
	// the last occupied night. ISO dates, no time component.
	CheckIn  string `gorm:"column:check_in;type:varchar(10)" json:"check_in"`
	CheckOut string `gorm:"column:check_out;type:varchar(10)" json:"check_out"`
	Nights   int    `gorm:"column:nights" json:"nights"`
	Quantity int    `gorm:"column:quantity" json:"quantity"`

	GuestName    string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestContact string `gorm:"column:guest_contact;size:255" json:"guest_contact"`

	TotalPrice float64 `gorm:"column:total_price" json:"total_price"`
	Status     string  `gorm:"column:status;size:64" json:"status"`

	// Per-night price/remaining snapshot returned by Reserve at commit time.
	Nightly datatypes.JSON `gorm:"column:nightly" json:"nightly,omitempty"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID;references:ID" json:"room_type,omitempty"`
}
