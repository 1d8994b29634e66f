package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digibook/room-booking-backend/internal/booking"
	"github.com/digibook/room-booking-backend/internal/pkg/request"
	"github.com/digibook/room-booking-backend/internal/pkg/response"
	"github.com/digibook/room-booking-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		RoomID:   req.RoomID,
		UserID:   req.UserID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkin, err := parseDate(body.CheckinDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkin_date"})
		return
	}
	checkout, err := parseDate(body.CheckoutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout_date"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		RoomID:       body.RoomID,
		UserID:       body.UserID,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkin, err := parseDate(body.CheckinDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkin_date"})
		return
	}
	checkout, err := parseDate(body.CheckoutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout_date"})
		return
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, booking.UpdateRequest{
		RoomID:       body.RoomID,
		UserID:       body.UserID,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Status:       booking.Status(body.Status),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), uri.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeServiceError maps booking service errors to HTTP responses. The user
// directory reports absence with a plain sentinel, so it is handled before
// the generic apperror path.
func writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, user.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	response.Error(c, err)
}
