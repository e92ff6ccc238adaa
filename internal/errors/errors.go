package errors

import "errors"

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

// Booking domain
var (
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPNRExhausted     = errors.New("could not allocate a unique PNR")
	ErrJournalDisabled  = errors.New("booking journal is not configured")
)

// Catalog domain
var (
	ErrTrainNotFound  = errors.New("train not found")
	ErrClassNotFound  = errors.New("seat class not found")
	ErrDuplicateTrain = errors.New("train number already exists")
	ErrInvalidTrain   = errors.New("invalid train")
)

// Directory domain
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUser        = errors.New("invalid user")
	ErrUserNotFound       = errors.New("user not found")
)
