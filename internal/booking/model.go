package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/digibook/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotAvailable      = apperror.New(http.StatusConflict, "room is not available for the selected dates")
	ErrDatesRequired         = apperror.New(http.StatusBadRequest, "both checkin and checkout dates are required")
	ErrCheckoutBeforeCheckin = apperror.New(http.StatusBadRequest, "checkout must be on or after checkin")
	ErrInvalidStatus         = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrUserInactive          = apperror.New(http.StatusConflict, "user is inactive")
	ErrConcurrentUpdate      = apperror.New(http.StatusConflict, "booking was rejected by a concurrent update, please retry")
)

// ReferencedError blocks the deletion of a room that still has bookings.
// It carries the id of the first referencing booking so the caller can
// report a precise conflict.
type ReferencedError struct {
	BookingID string
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("room is referenced by booking %s", e.BookingID)
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known booking status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Booking holds a reservation of one room by one user over a half-open
// [checkin, checkout) date range. Cancelled bookings are kept for history
// and never participate in overlap checks.
type Booking struct {
	ID           string
	RoomID       string
	RoomNumber   int
	UserID       string
	UserEmail    string
	CheckinDate  time.Time
	CheckoutDate time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Filter struct {
	RoomID   string
	UserID   string
	Status   string
	Page     int
	PageSize int
}
