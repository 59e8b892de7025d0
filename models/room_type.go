package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomType is a sellable category of inventory (a room class, not a physical
// room). Treated as immutable once bookings reference it; the catalog
// endpoints create/remove entries but never touch inventory counts.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string `json:"typeName" gorm:"uniqueIndex;type:varchar(100)"`
	Description string `json:"description"`
	MaxGuests   uint   `json:"max_guests"`

	// BasePrice feeds the synthesized price of dates that have never been
	// explicitly priced (weekend surcharge applied on top).
	BasePrice float64 `json:"basePrice" gorm:"column:base_price"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
