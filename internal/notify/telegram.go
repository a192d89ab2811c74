package notify

import (
	"encoding/json"
	"fmt"

	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier forwards booking lifecycle events to a telegram chat.
// Delivery is best effort: failures are logged and never surfaced to the
// operation that produced the event.
type TelegramNotifier struct {
	sender domain.TelegramSender
	chatID int64
	logger *zerolog.Logger
}

func NewTelegramNotifier(sender domain.TelegramSender, chatID int64, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chatID: chatID, logger: logger}
}

// SubscribeTo registers the notifier on the bus for booking events.
func (n *TelegramNotifier) SubscribeTo(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, n.handleBookingEvent)
	bus.Subscribe(events.EventBookingApproved, n.handleBookingEvent)
	bus.Subscribe(events.EventBookingRejected, n.handleBookingEvent)
}

func (n *TelegramNotifier) handleBookingEvent(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Msg("malformed booking event payload")
		return err
	}

	var text string
	switch event.Type {
	case events.EventBookingCreated:
		text = fmt.Sprintf("New booking #%d: %s requested %q from %s to %s",
			payload.BookingID, payload.BookerName, payload.ItemName,
			payload.Start.Format("2006-01-02"), payload.End.Format("2006-01-02"))
	case events.EventBookingApproved:
		text = fmt.Sprintf("Booking #%d for %q approved", payload.BookingID, payload.ItemName)
	case events.EventBookingRejected:
		text = fmt.Sprintf("Booking #%d for %q rejected", payload.BookingID, payload.ItemName)
	default:
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Error().Err(err).Int64("booking_id", payload.BookingID).Msg("telegram notification failed")
		return err
	}
	return nil
}
