package handlers

import (
	"errors"
	"net/http"

	"railres/internal/auth"
	"railres/internal/cache"
	apperrors "railres/internal/errors"
	"railres/internal/logger"
	"railres/internal/middleware"
	"railres/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services    *service.Services
	issuer      *auth.TokenIssuer
	revocations cache.RevocationStore
}

func NewHandlers(services *service.Services, issuer *auth.TokenIssuer, revocations cache.RevocationStore) *Handlers {
	return &Handlers{
		services:    services,
		issuer:      issuer,
		revocations: revocations,
	}
}

// currentUser возвращает имя пользователя, выставленное middleware.Auth
func currentUser(c *gin.Context) string {
	return c.GetString(middleware.UsernameKey)
}

// handleServiceError переводит ошибку сервиса в HTTP-ответ
func handleServiceError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNoSeatsAvailable),
		errors.Is(err, apperrors.ErrDuplicateUsername),
		errors.Is(err, apperrors.ErrDuplicateTrain):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrBookingNotFound),
		errors.Is(err, apperrors.ErrTrainNotFound),
		errors.Is(err, apperrors.ErrClassNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidTrain),
		errors.Is(err, apperrors.ErrInvalidUser):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrJournalDisabled),
		errors.Is(err, apperrors.ErrPNRExhausted):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error(msg, "error", err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
