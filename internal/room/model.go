package room

import (
	"net/http"
	"time"

	"github.com/digibook/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "room not found")
	ErrRoomNumberTaken   = apperror.New(http.StatusConflict, "room number already in use")
	ErrInvalidRoomNumber = apperror.New(http.StatusBadRequest, "room number must be positive")
	ErrInvalidCapacity   = apperror.New(http.StatusBadRequest, "capacity must be positive")
	ErrEmptyRoomType     = apperror.New(http.StatusBadRequest, "room type is required")
)

// Room is a bookable room in the catalog. RoomNumber is the canonical key
// the overlap check is joined on; it is unique but distinct from the id.
type Room struct {
	ID         string
	RoomNumber int
	RoomType   string
	Capacity   int
	Price      float64
	Amenities  string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Filter struct {
	RoomType string
	Active   *bool
	Page     int
	PageSize int
}
