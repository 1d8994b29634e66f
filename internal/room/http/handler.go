package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digibook/room-booking-backend/internal/booking"
	"github.com/digibook/room-booking-backend/internal/pkg/request"
	"github.com/digibook/room-booking-backend/internal/pkg/response"
	"github.com/digibook/room-booking-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := room.Filter{
		RoomType: req.RoomType,
		Active:   req.Active,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	rooms, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		RoomNumber: body.RoomNumber,
		RoomType:   body.RoomType,
		Capacity:   body.Capacity,
		Price:      body.Price,
		Amenities:  body.Amenities,
		Active:     active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var body UpdateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rm, err := h.service.Update(c.Request.Context(), uri.ID, room.UpdateRequest{
		RoomNumber: body.RoomNumber,
		RoomType:   body.RoomType,
		Capacity:   body.Capacity,
		Price:      body.Price,
		Amenities:  body.Amenities,
		Active:     body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	err := h.service.Delete(c.Request.Context(), uri.ID)
	if err != nil {
		// A vetoed deletion names the booking blocking it.
		var refErr *booking.ReferencedError
		if errors.As(err, &refErr) {
			c.JSON(http.StatusConflict, gin.H{
				"error":      "room is referenced by an existing booking",
				"booking_id": refErr.BookingID,
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
