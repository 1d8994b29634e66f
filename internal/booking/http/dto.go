package http

import (
	"time"

	"github.com/digibook/room-booking-backend/internal/booking"
	"github.com/digibook/room-booking-backend/internal/pkg/request"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE CANCELLED"`
}

type CreateBookingRequest struct {
	RoomID       string `json:"room_id" binding:"required,uuid"`
	UserID       string `json:"user_id" binding:"required,uuid"`
	CheckinDate  string `json:"checkin_date" binding:"required,datetime=2006-01-02"`
	CheckoutDate string `json:"checkout_date" binding:"required,datetime=2006-01-02"`
}

type UpdateBookingRequest struct {
	RoomID       string `json:"room_id" binding:"required,uuid"`
	UserID       string `json:"user_id" binding:"required,uuid"`
	CheckinDate  string `json:"checkin_date" binding:"required,datetime=2006-01-02"`
	CheckoutDate string `json:"checkout_date" binding:"required,datetime=2006-01-02"`
	Status       string `json:"status" binding:"required,oneof=ACTIVE CANCELLED"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"room_id"`
	RoomNumber   int       `json:"room_number"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	CheckinDate  string    `json:"checkin_date"`
	CheckoutDate string    `json:"checkout_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		RoomNumber:   b.RoomNumber,
		UserID:       b.UserID,
		UserEmail:    b.UserEmail,
		CheckinDate:  b.CheckinDate.Format(dateLayout),
		CheckoutDate: b.CheckoutDate.Format(dateLayout),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// parseDate parses a wire date into a UTC midnight time.Time.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
