package http

import (
	"time"

	"github.com/digibook/room-booking-backend/internal/pkg/request"
	"github.com/digibook/room-booking-backend/internal/room"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	RoomType string `form:"room_type"`
	Active   *bool  `form:"active"`
}

type CreateRoomRequest struct {
	RoomNumber int     `json:"room_number" binding:"required,min=1"`
	RoomType   string  `json:"room_type" binding:"required"`
	Capacity   int     `json:"capacity" binding:"required,min=1"`
	Price      float64 `json:"price" binding:"omitempty,min=0"`
	Amenities  string  `json:"amenities"`
	Active     *bool   `json:"active"`
}

type UpdateRoomRequest struct {
	RoomNumber *int     `json:"room_number" binding:"omitempty,min=1"`
	RoomType   *string  `json:"room_type"`
	Capacity   *int     `json:"capacity" binding:"omitempty,min=1"`
	Price      *float64 `json:"price" binding:"omitempty,min=0"`
	Amenities  *string  `json:"amenities"`
	Active     *bool    `json:"active"`
}

type RoomResponse struct {
	ID         string    `json:"id"`
	RoomNumber int       `json:"room_number"`
	RoomType   string    `json:"room_type"`
	Capacity   int       `json:"capacity"`
	Price      float64   `json:"price"`
	Amenities  string    `json:"amenities"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:         rm.ID,
		RoomNumber: rm.RoomNumber,
		RoomType:   rm.RoomType,
		Capacity:   rm.Capacity,
		Price:      rm.Price,
		Amenities:  rm.Amenities,
		Active:     rm.Active,
		CreatedAt:  rm.CreatedAt,
		UpdatedAt:  rm.UpdatedAt,
	}
}
