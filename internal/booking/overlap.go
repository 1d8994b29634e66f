package booking

import "time"

// Intersects reports whether the half-open intervals [a1,b1) and [a2,b2)
// overlap. A checkout on the same day as another booking's checkin does not
// count: back-to-back bookings are legal.
func Intersects(a1, b1, a2, b2 time.Time) bool {
	return a1.Before(b2) && a2.Before(b1)
}

// FindConflicts returns the ACTIVE bookings from existing whose date range
// intersects [checkin, checkout), skipping the booking identified by
// excludeID. excludeID is empty on create and set to the booking's own id on
// update so it never conflicts with itself.
//
// The Postgres overlap query in the repository mirrors this function
// clause-for-clause; both must keep the same half-open convention.
func FindConflicts(existing []*Booking, checkin, checkout time.Time, excludeID string) []*Booking {
	var conflicts []*Booking
	for _, b := range existing {
		if b.Status != StatusActive {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if Intersects(b.CheckinDate, b.CheckoutDate, checkin, checkout) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
