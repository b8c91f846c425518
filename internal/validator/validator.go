// Package validator performs format and range checks on incoming field
// data before it reaches the services. Business rules (overlap, duration
// matching, seat uniqueness) live in the services, not here.
package validator

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	alphanumericTitleRE = regexp.MustCompile(`^[A-Za-z0-9]+(?: [A-Za-z0-9]+)*$`)
	lettersOnlyRE       = regexp.MustCompile(`^[A-Za-z]+(?: [A-Za-z]+)*$`)
	genreRE             = regexp.MustCompile(`^[A-Za-z]+(?:[\s,\-]+[A-Za-z]+)*$`)
)

type MovieInput struct {
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Duration    int     `json:"duration"`
	Rating      float64 `json:"rating"`
	ReleaseYear int     `json:"releaseYear"`
}

func ValidateMovie(in MovieInput) error {
	if in.Title == "" {
		return errors.New("Title is required.")
	}
	if !alphanumericTitleRE.MatchString(in.Title) {
		return errors.New("Title must contain only letters, numbers, and spaces (no special characters).")
	}
	if in.Genre == "" {
		return errors.New("Genre is required.")
	}
	if !genreRE.MatchString(in.Genre) {
		return errors.New("Genre must contain only letters, spaces, commas, or dashes (no numbers or other special characters).")
	}
	if in.Duration < 30 {
		return errors.New("Duration must be at least 30 minutes.")
	}
	if in.Duration > 300 {
		return errors.New("Duration must not exceed 300 minutes.")
	}
	if in.Rating < 0 || in.Rating > 10 {
		return errors.New("Rating must be between 0 and 10.")
	}
	if in.ReleaseYear < 1800 || in.ReleaseYear > time.Now().Year() {
		return errors.New("Release year must be between 1800 and the current year.")
	}
	return nil
}

type ShowtimeInput struct {
	MovieID   uint      `json:"movieId"`
	Theater   string    `json:"theater"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Price     float64   `json:"price"`
}

func ValidateShowtime(in ShowtimeInput) error {
	if in.MovieID == 0 {
		return errors.New("Movie id is required.")
	}
	if in.Theater == "" {
		return errors.New("Theater is required.")
	}
	if !lettersOnlyRE.MatchString(in.Theater) {
		return errors.New("Theater name must contain only letters and spaces (no numbers or special characters).")
	}
	if in.StartTime.IsZero() {
		return errors.New("Start time is required.")
	}
	if in.StartTime.Before(time.Now()) {
		return errors.New("Start time cannot be in the past.")
	}
	if !in.EndTime.After(in.StartTime) {
		return errors.New("End time must be after start time.")
	}
	if in.Price < 1 {
		return errors.New("Price must be at least 1.")
	}
	if in.Price > 1000 {
		return errors.New("Price must not exceed 1000.")
	}
	return nil
}

type BookingInput struct {
	ShowtimeID uint   `json:"showtimeId"`
	SeatNumber int    `json:"seatNumber"`
	UserID     string `json:"userId"`
}

func ValidateBooking(in BookingInput) error {
	if in.ShowtimeID == 0 {
		return errors.New("Showtime id is required.")
	}
	if in.SeatNumber < 1 {
		return errors.New("Seat number must be at least 1.")
	}
	if in.SeatNumber > 20000 {
		return errors.New("Seat number must not exceed 20000.")
	}
	if _, err := uuid.Parse(in.UserID); err != nil {
		return errors.New("User id must be a valid UUID.")
	}
	return nil
}
