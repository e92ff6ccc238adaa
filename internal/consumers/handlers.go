package consumers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"railres/internal/models"
)

// Handlers turns booking events into passenger notices. Notices are written
// to the structured log; a mail or SMS gateway would plug in here.
type Handlers struct {
	log *slog.Logger
}

func NewHandlers(log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{log: log}
}

func (h *Handlers) HandleBookingCreated(data []byte) error {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// A malformed payload will never decode; ack it so it is not redelivered.
		h.log.Error("Failed to unmarshal booking created event", "error", err)
		return nil
	}

	h.log.Info("Booking confirmation",
		"username", event.Username,
		"pnr", event.PNR,
		"train_number", event.TrainNumber,
		"notice", fmt.Sprintf("Ticket booked on %s (%s class) for %s. PNR: %d",
			event.TrainName, event.SeatClass, models.FormatAmount(event.Price), event.PNR))
	return nil
}

func (h *Handlers) HandleBookingCancelled(data []byte) error {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.log.Error("Failed to unmarshal booking cancelled event", "error", err)
		return nil
	}

	notice := fmt.Sprintf("Booking %d on %s cancelled. No refund issued.", event.PNR, event.TrainName)
	if event.Tier != models.RefundNone {
		notice = fmt.Sprintf("Booking %d on %s cancelled. Refund of %s issued.",
			event.PNR, event.TrainName, models.FormatAmount(event.Refund))
	}

	h.log.Info("Refund notice",
		"username", event.Username,
		"pnr", event.PNR,
		"tier", event.Tier,
		"notice", notice)
	return nil
}

func (h *Handlers) HandleTrainRemoved(data []byte) error {
	var event models.TrainRemovedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.log.Error("Failed to unmarshal train removed event", "error", err)
		return nil
	}

	h.log.Warn("Train withdrawn from catalog",
		"train_number", event.TrainNumber,
		"removed", event.Removed)
	return nil
}
