package handlers

import (
	"net/http"

	"railres/internal/models"

	"github.com/gin-gonic/gin"
)

// SearchTrains - GET /api/trains?from=&to=
// Найти поезда по станциям отправления и назначения
func (h *Handlers) SearchTrains(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	trains, err := h.services.Trains.Search(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to search trains")
		return
	}

	response := make(models.SearchTrainsResponse, len(trains))
	for i, t := range trains {
		response[i] = models.NewTrainResponseItem(t)
	}
	c.JSON(http.StatusOK, response)
}

// GetTrain - GET /api/trains/:number
func (h *Handlers) GetTrain(c *gin.Context) {
	train, err := h.services.Trains.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		handleServiceError(c, err, "Failed to get train")
		return
	}

	c.JSON(http.StatusOK, models.NewTrainResponseItem(*train))
}
