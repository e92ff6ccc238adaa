package handlers

import (
	"fmt"
	"net/http"

	"railres/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /api/bookings
// Создать бронирование
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Bookings.Book(c.Request.Context(), currentUser(c), req.TrainNumber, req.SeatClass)
	if err != nil {
		handleServiceError(c, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, models.CreateBookingResponse{
		PNR:       booking.PNR,
		TrainName: booking.TrainName,
		SeatClass: booking.SeatClass,
		Price:     models.FormatAmount(booking.Price),
		Message:   fmt.Sprintf("Ticket booked successfully! PNR: %d", booking.PNR),
	})
}

// ListBookings - GET /api/bookings
// Получить список бронирований
func (h *Handlers) ListBookings(c *gin.Context) {
	bookings, err := h.services.Bookings.List(c.Request.Context(), currentUser(c))
	if err != nil {
		handleServiceError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, models.NewListBookingsResponse(bookings))
}

// CancelBooking - PATCH /api/bookings/cancel
// Отменить бронирование
func (h *Handlers) CancelBooking(c *gin.Context) {
	var req models.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.services.Bookings.Cancel(c.Request.Context(), currentUser(c), req.PNR)
	if err != nil {
		handleServiceError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, models.CancelBookingResponse{
		PNR:           result.Booking.PNR,
		Refund:        models.FormatAmount(result.Refund),
		RefundPercent: result.RefundPercent,
		Tier:          result.Tier,
		Message:       result.Message,
	})
}

// BookingHistory - GET /api/bookings/history
// Журнал бронирований и отмен пользователя
func (h *Handlers) BookingHistory(c *gin.Context) {
	entries, err := h.services.Bookings.History(c.Request.Context(), currentUser(c))
	if err != nil {
		handleServiceError(c, err, "Failed to read booking history")
		return
	}

	if entries == nil {
		entries = []models.JournalEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
