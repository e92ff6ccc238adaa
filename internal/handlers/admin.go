package handlers

import (
	"net/http"

	"railres/internal/models"

	"github.com/gin-gonic/gin"
)

// AddTrain - POST /api/admin/trains
// Добавить поезд в каталог
func (h *Handlers) AddTrain(c *gin.Context) {
	var req models.AddTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	train := models.Train{
		Number:        req.Number,
		Name:          req.Name,
		FromStation:   req.FromStation,
		ToStation:     req.ToStation,
		DepartureTime: req.DepartureTime,
		Classes:       make([]models.ClassInfo, len(req.Classes)),
	}
	for i, cl := range req.Classes {
		train.Classes[i] = models.ClassInfo{
			Name:           cl.Name,
			Price:          models.AmountFromMajor(cl.Price),
			AvailableSeats: cl.AvailableSeats,
		}
	}

	if err := h.services.Trains.Add(c.Request.Context(), train); err != nil {
		handleServiceError(c, err, "Failed to add train")
		return
	}

	c.JSON(http.StatusCreated, models.NewTrainResponseItem(train))
}

// RemoveTrain - DELETE /api/admin/trains/:number
// Удалить все поезда с указанным номером
func (h *Handlers) RemoveTrain(c *gin.Context) {
	number := c.Param("number")

	removed, err := h.services.Trains.Remove(c.Request.Context(), number)
	if err != nil {
		handleServiceError(c, err, "Failed to remove train")
		return
	}

	c.JSON(http.StatusOK, models.RemoveTrainResponse{Number: number, Removed: removed})
}

// ListAllBookings - GET /api/admin/bookings
// Бронирования всех пользователей
func (h *Handlers) ListAllBookings(c *gin.Context) {
	all, err := h.services.Bookings.ListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to list bookings")
		return
	}

	response := make([]models.AdminBookingsResponseItem, len(all))
	for i, ub := range all {
		response[i] = models.AdminBookingsResponseItem{
			Username: ub.Username,
			Bookings: models.NewListBookingsResponse(ub.Bookings),
		}
	}
	c.JSON(http.StatusOK, response)
}
