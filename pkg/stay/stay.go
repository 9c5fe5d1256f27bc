// Package stay holds the hotel's time policy: fixed check-in/check-out hours,
// night counting, read-time status derivation and the interval overlap test.
// Everything here is pure.
package stay

import (
	"math"
	"time"

	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

// Normalize pins the supplied dates to the hotel's check-in and check-out
// hours, discarding any caller-supplied time-of-day. Invalid inputs are not
// rejected here; callers reject them via the night count.
func Normalize(checkIn, checkOut time.Time, checkInHour, checkOutHour int) (time.Time, time.Time) {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), checkInHour, 0, 0, 0, checkIn.Location())
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), checkOutHour, 0, 0, 0, checkOut.Location())
	return in, out
}

// Nights is ceil((checkOut - checkIn) / 24h). Exact for whole-day ranges,
// rounds partial days up. Zero or negative means the range is invalid.
func Nights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	return int(math.Ceil(hours / 24))
}

// EffectiveStatus projects a booking's display status from its stored status
// and the clock. CANCELLED is terminal and overrides the time derivation;
// otherwise the status follows the position of now within [checkIn, checkOut).
func EffectiveStatus(stored model.Status, checkIn, checkOut, now time.Time) model.Status {
	if stored == model.StatusCancelled {
		return model.StatusCancelled
	}
	if now.Before(checkIn) {
		return model.StatusConfirmed
	}
	if now.Before(checkOut) {
		return model.StatusActive
	}
	return model.StatusCompleted
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
