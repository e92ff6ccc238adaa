package models

import "time"

// RegisterRequest - модель для регистрации пользователя
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterResponse - модель ответа при регистрации
type RegisterResponse struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Message  string `json:"message"`
}

// LoginRequest - модель для входа
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse - модель ответа при входе
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

// TrainClassItem - класс обслуживания в ответе поиска
type TrainClassItem struct {
	Name           string `json:"name"`
	Price          string `json:"price"`
	AvailableSeats int    `json:"available_seats"`
}

// TrainResponseItem - элемент списка поездов
type TrainResponseItem struct {
	Number        string           `json:"train_number"`
	Name          string           `json:"train_name"`
	FromStation   string           `json:"from_station"`
	ToStation     string           `json:"to_station"`
	DepartureTime string           `json:"departure_time"`
	Classes       []TrainClassItem `json:"classes"`
}

// SearchTrainsResponse - результат поиска поездов
type SearchTrainsResponse []TrainResponseItem

// AddTrainClass - класс обслуживания при добавлении поезда
type AddTrainClass struct {
	Name           string  `json:"name" binding:"required"`
	Price          float64 `json:"price" binding:"gte=0"`
	AvailableSeats int     `json:"available_seats" binding:"gte=0"`
}

// AddTrainRequest - модель для добавления поезда администратором
type AddTrainRequest struct {
	Number        string          `json:"train_number" binding:"required"`
	Name          string          `json:"train_name" binding:"required"`
	FromStation   string          `json:"from_station" binding:"required"`
	ToStation     string          `json:"to_station" binding:"required"`
	DepartureTime string          `json:"departure_time" binding:"required"`
	Classes       []AddTrainClass `json:"classes" binding:"required,min=1,dive"`
}

// RemoveTrainResponse - модель ответа при удалении поезда
type RemoveTrainResponse struct {
	Number  string `json:"train_number"`
	Removed int    `json:"removed"`
}

// CreateBookingRequest - модель для создания бронирования
type CreateBookingRequest struct {
	TrainNumber string `json:"train_number" binding:"required"`
	SeatClass   string `json:"seat_class" binding:"required"`
}

// CreateBookingResponse - модель ответа при создании бронирования
type CreateBookingResponse struct {
	PNR       int    `json:"pnr"`
	TrainName string `json:"train_name"`
	SeatClass string `json:"seat_class"`
	Price     string `json:"price"`
	Message   string `json:"message"`
}

// ListBookingsResponseItem - элемент списка бронирований
type ListBookingsResponseItem struct {
	PNR         int       `json:"pnr"`
	TrainNumber string    `json:"train_number"`
	TrainName   string    `json:"train_name"`
	SeatClass   string    `json:"seat_class"`
	Price       string    `json:"price"`
	BookedAt    time.Time `json:"booked_at"`
}

// ListBookingsResponse - список бронирований
type ListBookingsResponse []ListBookingsResponseItem

// AdminBookingsResponseItem - бронирования одного пользователя
type AdminBookingsResponseItem struct {
	Username string                     `json:"username"`
	Bookings []ListBookingsResponseItem `json:"bookings"`
}

// CancelBookingRequest - модель для отмены бронирования
type CancelBookingRequest struct {
	PNR int `json:"pnr" binding:"required"`
}

// CancelBookingResponse - модель ответа при отмене
type CancelBookingResponse struct {
	PNR           int        `json:"pnr"`
	Refund        string     `json:"refund"`
	RefundPercent int        `json:"refund_percent"`
	Tier          RefundTier `json:"tier"`
	Message       string     `json:"message"`
}

// NewTrainResponseItem renders a catalog train for the API.
func NewTrainResponseItem(t Train) TrainResponseItem {
	classes := make([]TrainClassItem, len(t.Classes))
	for i, c := range t.Classes {
		classes[i] = TrainClassItem{
			Name:           c.Name,
			Price:          FormatAmount(c.Price),
			AvailableSeats: c.AvailableSeats,
		}
	}
	return TrainResponseItem{
		Number:        t.Number,
		Name:          t.Name,
		FromStation:   t.FromStation,
		ToStation:     t.ToStation,
		DepartureTime: t.DepartureTime,
		Classes:       classes,
	}
}

// NewListBookingsResponse renders bookings in their stored order.
func NewListBookingsResponse(bookings []Booking) ListBookingsResponse {
	result := make(ListBookingsResponse, len(bookings))
	for i, b := range bookings {
		result[i] = ListBookingsResponseItem{
			PNR:         b.PNR,
			TrainNumber: b.TrainNumber,
			TrainName:   b.TrainName,
			SeatClass:   b.SeatClass,
			Price:       FormatAmount(b.Price),
			BookedAt:    b.BookedAt,
		}
	}
	return result
}
