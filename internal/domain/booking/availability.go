package booking

import (
	"time"

	"github.com/google/uuid"
)

// Overlaps reports whether two date ranges conflict once range A has been
// widened by bufferDays whole days on each side. Boundaries are inclusive, so
// two ranges that merely touch inside the buffered window still conflict.
// The check is symmetric: widening A against B gives the same verdict as
// widening B against A.
func Overlaps(startA, endA, startB, endB time.Time, bufferDays int) bool {
	buffer := time.Duration(bufferDays) * 24 * time.Hour
	return !startA.Add(-buffer).After(endB) && !endA.Add(buffer).Before(startB)
}

// IsItemAvailable reports whether the [start, end] range is free of conflicts
// against the item's existing bookings. A zero end is normalized to start +
// 24h, the same effective range an open-ended booking occupies once stored.
// Only open bookings (active or pending) block the calendar; completed and
// cancelled ones never do. A booking whose ID equals excludeID is ignored,
// which lets an edit flow re-check a booking's own dates without colliding
// with itself. Pass uuid.Nil to exclude nothing.
func IsItemAvailable(existing []*Booking, start, end time.Time, bufferDays int, excludeID uuid.UUID) bool {
	if end.IsZero() {
		end = start.Add(24 * time.Hour)
	}
	for _, b := range existing {
		if !b.IsOpen() {
			continue
		}
		if excludeID != uuid.Nil && b.ID == excludeID {
			continue
		}
		if Overlaps(start, end, b.StartDate, b.EffectiveEnd(), bufferDays) {
			return false
		}
	}
	return true
}
