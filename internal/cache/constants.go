package cache

import (
	"fmt"
	"time"
)

// key names definition
const (
	MoviesCatalogKey = "cache:movies"       // the whole movie catalog, a constant
	ShowtimeKey      = "cache:showtime:%d"  // a single showtime, '%d' is showtime id
)

// cached reads serve stale data for at most this long after a missed
// invalidation
const DefaultTTL = 5 * time.Minute

func MakeShowtimeKey(showtimeID uint) string {
	return fmt.Sprintf(ShowtimeKey, showtimeID)
}
