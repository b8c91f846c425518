package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	notFound := []error{ErrMovieNotFound, ErrShowtimeNotFound}
	for _, err := range notFound {
		assert.Equal(t, KindNotFound, KindOf(err), err.Error())
	}

	conflicts := []error{
		ErrDuplicateTitle,
		ErrRenameNotAllowed,
		ErrScheduleOverlap,
		ErrDurationMismatch,
		ErrShowtimeEnded,
		ErrTicketsSold,
		ErrSeatAlreadyBooked,
		ErrPendingSales,
	}
	for _, err := range conflicts {
		assert.Equal(t, KindConflict, KindOf(err), err.Error())
	}

	assert.Equal(t, KindUnexpected, KindOf(errors.New("connection reset")))
	assert.Equal(t, KindUnexpected, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("deleting movie: %w", ErrPendingSales)
	assert.Equal(t, KindConflict, KindOf(wrapped))
}
