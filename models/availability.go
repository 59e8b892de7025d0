package models

// Availability is one sellable night of one room type: the price and the
// count of units still open for that calendar date. Day is the ISO date
// "YYYY-MM-DD"; keyed unique together with RoomTypeID.
//
// A date with no Availability row is NOT sold out. Readers synthesize an
// open-by-default record for it (see services.AvailabilityService.Query).
// That default-open fallback is a product decision carried over from the
// original system; change it there, not here.
type Availability struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	RoomTypeID uint    `gorm:"column:room_type_id;uniqueIndex:idx_room_type_day" json:"room_type_id"`
	Day        string  `gorm:"column:day;type:varchar(10);uniqueIndex:idx_room_type_day" json:"day"`
	Price      float64 `json:"price"`

	// Remaining never goes negative: the only writer is the guarded
	// decrement in AvailabilityService.Reserve.
	Remaining int `json:"remaining"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID;references:ID" json:"-"`
}
