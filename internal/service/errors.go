// Package service defines the error set shared by the domain services.
// Handlers branch on these sentinels (or their Kind) instead of matching
// message text, so the transport mapping stays exhaustive.
package service

import "errors"

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrShowtimeNotFound = errors.New("showtime not found")

	ErrDuplicateTitle    = errors.New("movie already exists with this title")
	ErrRenameNotAllowed  = errors.New("renaming the movie is not allowed")
	ErrScheduleOverlap   = errors.New("showtime overlaps with an existing showtime in the same theater")
	ErrDurationMismatch  = errors.New("showtime length does not match the movie duration")
	ErrShowtimeEnded     = errors.New("showtime has already ended")
	ErrTicketsSold       = errors.New("showtime already has tickets sold")
	ErrSeatAlreadyBooked = errors.New("seat is already booked for this showtime")
	ErrPendingSales      = errors.New("movie has upcoming showtimes for which tickets have already been sold")
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
)

// KindOf classifies err into the closed taxonomy above. Anything that is
// not a known sentinel counts as unexpected and keeps its original message.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrMovieNotFound), errors.Is(err, ErrShowtimeNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateTitle),
		errors.Is(err, ErrRenameNotAllowed),
		errors.Is(err, ErrScheduleOverlap),
		errors.Is(err, ErrDurationMismatch),
		errors.Is(err, ErrShowtimeEnded),
		errors.Is(err, ErrTicketsSold),
		errors.Is(err, ErrSeatAlreadyBooked),
		errors.Is(err, ErrPendingSales):
		return KindConflict
	default:
		return KindUnexpected
	}
}
