package models

import "time"

// NATS Event Types
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventTrainAdded       = "train.added"
	EventTrainRemoved     = "train.removed"
)

// BookingCreatedEvent represents a booking creation event
type BookingCreatedEvent struct {
	PNR         int       `json:"pnr"`
	Username    string    `json:"username"`
	TrainNumber string    `json:"train_number"`
	TrainName   string    `json:"train_name"`
	SeatClass   string    `json:"seat_class"`
	Price       int64     `json:"price"`
	Timestamp   time.Time `json:"timestamp"`
}

// BookingCancelledEvent represents a booking cancellation event
type BookingCancelledEvent struct {
	PNR         int        `json:"pnr"`
	Username    string     `json:"username"`
	TrainNumber string     `json:"train_number"`
	TrainName   string     `json:"train_name"`
	SeatClass   string     `json:"seat_class"`
	Price       int64      `json:"price"`
	Refund      int64      `json:"refund"`
	Tier        RefundTier `json:"tier"`
	Timestamp   time.Time  `json:"timestamp"`
}

// TrainAddedEvent represents a train added by an admin
type TrainAddedEvent struct {
	TrainNumber string    `json:"train_number"`
	TrainName   string    `json:"train_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// TrainRemovedEvent represents trains removed by an admin
type TrainRemovedEvent struct {
	TrainNumber string    `json:"train_number"`
	Removed     int       `json:"removed"`
	Timestamp   time.Time `json:"timestamp"`
}
