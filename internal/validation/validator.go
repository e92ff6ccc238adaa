package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"railres/internal/models"

	"github.com/google/uuid"
)

// APIValidator прогоняет сквозной сценарий против запущенного API:
// регистрация, вход, поиск, бронирование, отмена, выход
type APIValidator struct {
	baseURL string
	client  *http.Client
	token   string
}

// NewAPIValidator создает новый валидатор
func NewAPIValidator(baseURL string) *APIValidator {
	return &APIValidator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidateAll проверяет основной пользовательский сценарий
func (v *APIValidator) ValidateAll() error {
	slog.Info("Starting API validation", "base_url", v.baseURL)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"health", v.validateHealth},
		{"users", v.validateUsers},
		{"trains", v.validateTrains},
		{"bookings", v.validateBookings},
		{"logout", v.validateLogout},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s validation failed: %w", step.name, err)
		}
		slog.Info("Endpoints valid", "step", step.name)
	}

	slog.Info("All endpoints passed validation")
	return nil
}

func (v *APIValidator) validateHealth() error {
	return v.do("GET", "/health", nil, http.StatusOK, nil)
}

func (v *APIValidator) validateUsers() error {
	username := "smoke-" + uuid.NewString()[:8]
	password := "smoke-password"

	err := v.do("POST", "/api/users/register", models.RegisterRequest{
		Username: username,
		FullName: "Smoke Test",
		Email:    username + "@example.com",
		Password: password,
	}, http.StatusCreated, nil)
	if err != nil {
		return err
	}

	var login models.LoginResponse
	err = v.do("POST", "/api/users/login", models.LoginRequest{
		Username: username,
		Password: password,
	}, http.StatusOK, &login)
	if err != nil {
		return err
	}
	if login.Token == "" {
		return fmt.Errorf("POST /api/users/login: expected a token")
	}
	v.token = login.Token
	return nil
}

func (v *APIValidator) validateTrains() error {
	var trains models.SearchTrainsResponse
	if err := v.do("GET", "/api/trains?from=Station+A&to=Station+B", nil, http.StatusOK, &trains); err != nil {
		return err
	}
	if len(trains) == 0 {
		return fmt.Errorf("GET /api/trains: expected at least one train from Station A to Station B")
	}
	return nil
}

func (v *APIValidator) validateBookings() error {
	var before models.TrainResponseItem
	if err := v.do("GET", "/api/trains/101", nil, http.StatusOK, &before); err != nil {
		return err
	}
	className, seats := "", 0
	for _, c := range before.Classes {
		if c.AvailableSeats > 0 {
			className, seats = c.Name, c.AvailableSeats
			break
		}
	}
	if className == "" {
		return fmt.Errorf("GET /api/trains/101: no class with free seats")
	}

	var created models.CreateBookingResponse
	err := v.do("POST", "/api/bookings", models.CreateBookingRequest{
		TrainNumber: before.Number,
		SeatClass:   className,
	}, http.StatusCreated, &created)
	if err != nil {
		return err
	}
	if created.PNR < 100000 || created.PNR > 999999 {
		return fmt.Errorf("POST /api/bookings: PNR %d is not 6 digits", created.PNR)
	}

	var list models.ListBookingsResponse
	if err := v.do("GET", "/api/bookings", nil, http.StatusOK, &list); err != nil {
		return err
	}
	if len(list) != 1 || list[0].PNR != created.PNR {
		return fmt.Errorf("GET /api/bookings: expected the new booking %d, got %d bookings", created.PNR, len(list))
	}

	var cancelled models.CancelBookingResponse
	err = v.do("PATCH", "/api/bookings/cancel", models.CancelBookingRequest{PNR: created.PNR}, http.StatusOK, &cancelled)
	if err != nil {
		return err
	}
	if cancelled.Tier != models.RefundFull || cancelled.Refund != created.Price {
		return fmt.Errorf("PATCH /api/bookings/cancel: expected full refund of %s, got %s (%s)",
			created.Price, cancelled.Refund, cancelled.Tier)
	}

	var after models.TrainResponseItem
	if err := v.do("GET", "/api/trains/101", nil, http.StatusOK, &after); err != nil {
		return err
	}
	for _, c := range after.Classes {
		if c.Name == className && c.AvailableSeats != seats {
			return fmt.Errorf("seat count for %s not restored: %d != %d", className, c.AvailableSeats, seats)
		}
	}
	return nil
}

func (v *APIValidator) validateLogout() error {
	if err := v.do("POST", "/api/users/logout", nil, http.StatusNoContent, nil); err != nil {
		return err
	}
	return v.do("GET", "/api/bookings", nil, http.StatusUnauthorized, nil)
}

// do выполняет запрос, проверяет статус и декодирует ответ в out
func (v *APIValidator) do(method, path string, body interface{}, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, v.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if v.token != "" {
		req.Header.Set("Authorization", "Bearer "+v.token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, wantStatus, resp.StatusCode, respBody)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}
	return nil
}

// RunValidation запускает валидацию API
func RunValidation(baseURL string) error {
	return NewAPIValidator(baseURL).ValidateAll()
}
