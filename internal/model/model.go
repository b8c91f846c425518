package model

import (
	"time"
)

type Movie struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:100;not null;uniqueIndex" json:"title"`
	Genre       string  `gorm:"size:100;not null" json:"genre"`
	Duration    int     `gorm:"not null" json:"duration"` // minutes
	Rating      float64 `gorm:"not null" json:"rating"`
	ReleaseYear int     `gorm:"not null" json:"releaseYear"`
}

type Showtime struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MovieID   uint      `gorm:"not null;index" json:"movieId"`
	Theater   string    `gorm:"size:100;not null;index" json:"theater"`
	StartTime time.Time `gorm:"not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`
	Price     float64   `gorm:"not null" json:"price"`

	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
}

// Ticket rows are write-once. The composite unique index on
// (showtime_id, seat_number) is what actually prevents double
// booking under concurrent inserts.
type Ticket struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ShowtimeID uint   `gorm:"not null;uniqueIndex:idx_showtime_seat" json:"showtimeId"`
	SeatNumber int    `gorm:"not null;uniqueIndex:idx_showtime_seat" json:"seatNumber"`
	UserID     string `gorm:"size:64;not null" json:"userId"`
	BookingID  string `gorm:"size:64;not null;uniqueIndex" json:"bookingId"`

	Showtime *Showtime `gorm:"foreignKey:ShowtimeID;constraint:OnDelete:CASCADE" json:"-"`
}
