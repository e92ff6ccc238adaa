package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"railres/internal/config"
	"railres/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		GinMode:        gin.TestMode,
		RequestTimeout: 5 * time.Second,
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
			BcryptCost:    bcrypt.MinCost,
			AdminUsername: "admin",
			AdminPassword: "admin123",
			AdminEmail:    "admin@example.com",
		},
		Booking: config.BookingConfig{
			PNRMaxAttempts: 16,
			SeedDemoData:   true,
		},
	}
}

func request(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	buf := &bytes.Buffer{}
	if body != nil {
		require.NoError(t, json.NewEncoder(buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()

	w := request(t, router, "POST", "/api/users/login", "", models.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Token
}

func TestHealthCheck(t *testing.T) {
	server, err := NewServer(testConfig())
	require.NoError(t, err)
	defer server.Cleanup()

	w := request(t, server.GetRouter(), "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBookingFlowIsReflectedInMetrics(t *testing.T) {
	server, err := NewServer(testConfig())
	require.NoError(t, err)
	defer server.Cleanup()
	router := server.GetRouter()

	token := login(t, router, "john", "password123")

	w := request(t, router, "POST", "/api/bookings", token, models.CreateBookingRequest{TrainNumber: "102", SeatClass: "2AC"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = request(t, router, "POST", "/api/bookings", token, models.CreateBookingRequest{TrainNumber: "102", SeatClass: "2AC"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = request(t, router, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `railres_bookings_total{outcome="confirmed"} 1`)
	assert.Contains(t, body, `railres_bookings_total{outcome="no_seats"} 1`)
	assert.Contains(t, body, `railres_seats_available{class="2AC",train="102"} 0`)
	assert.Contains(t, body, `route="/api/bookings"`)
}

func TestSeedingCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Booking.SeedDemoData = false

	server, err := NewServer(cfg)
	require.NoError(t, err)
	defer server.Cleanup()
	router := server.GetRouter()

	w := request(t, router, "POST", "/api/users/login", "", models.LoginRequest{Username: "john", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, router, "admin", "admin123")
	w = request(t, router, "GET", "/api/trains?from=Station+A&to=Station+B", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLogoutWithValkeyRevocation(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Valkey.Enabled = true
	cfg.Valkey.Addr = mr.Addr()
	cfg.Valkey.KeyPrefix = "railres:revoked:"

	server, err := NewServer(cfg)
	require.NoError(t, err)
	defer server.Cleanup()
	router := server.GetRouter()

	token := login(t, router, "john", "password123")

	w := request(t, router, "POST", "/api/users/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, mr.Keys(), 1)

	w = request(t, router, "GET", "/api/bookings", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnreachableValkeyFailsStartup(t *testing.T) {
	cfg := testConfig()
	cfg.Valkey.Enabled = true
	cfg.Valkey.Addr = "127.0.0.1:1"

	_, err := NewServer(cfg)
	assert.Error(t, err)
}
