package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	require.NoError(t, err)
	return d
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name           string
		a1, b1, a2, b2 string
		want           bool
	}{
		{"identical ranges", "2024-06-10", "2024-06-12", "2024-06-10", "2024-06-12", true},
		{"partial overlap", "2024-06-10", "2024-06-12", "2024-06-11", "2024-06-13", true},
		{"contained range", "2024-06-10", "2024-06-20", "2024-06-12", "2024-06-14", true},
		{"touching boundaries", "2024-06-10", "2024-06-12", "2024-06-12", "2024-06-14", false},
		{"touching boundaries reversed", "2024-06-12", "2024-06-14", "2024-06-10", "2024-06-12", false},
		{"disjoint ranges", "2024-06-10", "2024-06-12", "2024-06-20", "2024-06-22", false},
		{"zero-length candidate strictly inside", "2024-06-10", "2024-06-12", "2024-06-11", "2024-06-11", true},
		{"zero-length candidate on checkin boundary", "2024-06-10", "2024-06-12", "2024-06-10", "2024-06-10", false},
		{"zero-length candidate on checkout boundary", "2024-06-10", "2024-06-12", "2024-06-12", "2024-06-12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersects(date(t, tt.a1), date(t, tt.b1), date(t, tt.a2), date(t, tt.b2))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindConflicts(t *testing.T) {
	existing := []*Booking{
		{ID: "b1", Status: StatusActive, CheckinDate: date(t, "2024-06-10"), CheckoutDate: date(t, "2024-06-12")},
		{ID: "b2", Status: StatusCancelled, CheckinDate: date(t, "2024-06-12"), CheckoutDate: date(t, "2024-06-14")},
		{ID: "b3", Status: StatusActive, CheckinDate: date(t, "2024-06-20"), CheckoutDate: date(t, "2024-06-25")},
	}

	t.Run("overlap with active booking", func(t *testing.T) {
		conflicts := FindConflicts(existing, date(t, "2024-06-11"), date(t, "2024-06-13"), "")
		require.Len(t, conflicts, 1)
		assert.Equal(t, "b1", conflicts[0].ID)
	})

	t.Run("cancelled bookings never conflict", func(t *testing.T) {
		conflicts := FindConflicts(existing, date(t, "2024-06-12"), date(t, "2024-06-14"), "")
		assert.Empty(t, conflicts)
	})

	t.Run("back-to-back booking is allowed", func(t *testing.T) {
		conflicts := FindConflicts(existing, date(t, "2024-06-12"), date(t, "2024-06-20"), "")
		assert.Empty(t, conflicts)
	})

	t.Run("exclude id skips own booking", func(t *testing.T) {
		conflicts := FindConflicts(existing, date(t, "2024-06-11"), date(t, "2024-06-13"), "b1")
		assert.Empty(t, conflicts)
	})

	t.Run("exclude id still reports other conflicts", func(t *testing.T) {
		conflicts := FindConflicts(existing, date(t, "2024-06-11"), date(t, "2024-06-21"), "b1")
		require.Len(t, conflicts, 1)
		assert.Equal(t, "b3", conflicts[0].ID)
	})
}
