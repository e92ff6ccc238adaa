package models

import (
	"fmt"
	"math"
	"time"
)

// ClassInfo is the price and remaining capacity of one fare class on a train.
// Price is kept in minor units (paise).
type ClassInfo struct {
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	AvailableSeats int    `json:"available_seats"`
}

// Train represents a train in the catalog. ID is assigned when the train is
// added and differs between a removed train and a later one with the same
// number.
type Train struct {
	ID            string      `json:"id"`
	Number        string      `json:"train_number"`
	Name          string      `json:"train_name"`
	FromStation   string      `json:"from_station"`
	ToStation     string      `json:"to_station"`
	DepartureTime string      `json:"departure_time"`
	Classes       []ClassInfo `json:"classes"` // declaration order
}

// Class returns the fare class with the given name.
func (t *Train) Class(name string) (*ClassInfo, bool) {
	for i := range t.Classes {
		if t.Classes[i].Name == name {
			return &t.Classes[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy safe to hand out of a repository.
func (t Train) Clone() Train {
	t.Classes = append([]ClassInfo(nil), t.Classes...)
	return t
}

// User represents a registered user
type User struct {
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	RegisteredAt time.Time `json:"registered_at"`
	Bookings     []Booking `json:"bookings"` // booking order, most recent last
}

// Clone returns a copy whose booking list does not alias the original.
func (u User) Clone() User {
	u.Bookings = append([]Booking(nil), u.Bookings...)
	return u
}

// Booking represents a reserved seat held by a user. TrainName is a copy
// taken at booking time, not a reference to the catalog entry.
type Booking struct {
	PNR         int       `json:"pnr"`
	TrainID     string    `json:"train_id"`
	TrainNumber string    `json:"train_number"`
	TrainName   string    `json:"train_name"`
	SeatClass   string    `json:"seat_class"`
	Price       int64     `json:"price"`
	BookedAt    time.Time `json:"booked_at"`
}

// RefundTier is the outcome class of the refund policy.
type RefundTier string

const (
	RefundFull    RefundTier = "full"
	RefundPartial RefundTier = "partial"
	RefundNone    RefundTier = "none"
)

// Cancellation is the result of a successful cancel.
type Cancellation struct {
	Booking       Booking
	Refund        int64
	RefundPercent int
	Tier          RefundTier
	Message       string
}

// UserBookings groups bookings by owner for the admin view.
type UserBookings struct {
	Username string
	Bookings []Booking
}

// FormatAmount renders minor units as a decimal string, e.g. 30000 -> "300.00".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// AmountFromMajor converts a price in major units to minor units.
func AmountFromMajor(major float64) int64 {
	return int64(math.Round(major * 100))
}

// Journal actions
const (
	JournalBooked    = "BOOKED"
	JournalCancelled = "CANCELLED"
)

// JournalEntry is one row of the booking audit trail.
type JournalEntry struct {
	ID          int64     `json:"id" db:"id"`
	PNR         int       `json:"pnr" db:"pnr"`
	Username    string    `json:"username" db:"username"`
	TrainNumber string    `json:"train_number" db:"train_number"`
	TrainName   string    `json:"train_name" db:"train_name"`
	SeatClass   string    `json:"seat_class" db:"seat_class"`
	Action      string    `json:"action" db:"action"`
	Amount      int64     `json:"amount" db:"amount"`
	RefundTier  *string   `json:"refund_tier,omitempty" db:"refund_tier"`
	OccurredAt  time.Time `json:"occurred_at" db:"occurred_at"`
}
