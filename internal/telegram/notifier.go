// Package telegram handles the integration with the Telegram Bot API.
// It delivers grievance lifecycle notifications to the operations chat.
package telegram

import (
	"encoding/json"
	"fmt"
	"log"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier forwards grievance events from the Redis channel to a
// configured Telegram chat. One-way only: inbound updates are ignored.
type Notifier struct {
	BotAPI  *tgbotapi.BotAPI
	Storage storage.Storage
	ChatID  int64
}

// NewNotifier creates a new Notifier instance.
func NewNotifier(token string, chatID int64, s storage.Storage) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	return &Notifier{
		BotAPI:  bot,
		Storage: s,
		ChatID:  chatID,
	}, nil
}

// Run consumes the grievance event channel and pushes notifications until
// the subscription is closed. Intended to run as its own goroutine.
func (n *Notifier) Run() {
	pubsub := n.Storage.SubscribeEvents()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		event, err := decodeEvent(msg.Payload)
		if err != nil {
			log.Printf("ERROR: Failed to decode grievance event: %v", err)
			continue
		}
		if text := FormatEvent(event); text != "" {
			reply := tgbotapi.NewMessage(n.ChatID, text)
			if _, err := n.BotAPI.Send(reply); err != nil {
				log.Printf("ERROR: Failed to send telegram notification: %v", err)
			}
		}
	}
}

// FormatEvent renders an event as a notification line. Only events the
// operations chat cares about produce output: new critical grievances and
// every status change or assignment. Plain comments stay quiet.
func FormatEvent(event models.GrievanceEvent) string {
	switch event.Type {
	case models.EventGrievanceCreated:
		if event.Priority != models.PriorityCritical {
			return ""
		}
		return fmt.Sprintf("🚨 Critical grievance #%d filed: %s", event.GrievanceID, event.Title)
	case models.EventStatusChanged:
		return fmt.Sprintf("Grievance #%d is now %s: %s", event.GrievanceID, event.Status.Label(), event.Title)
	case models.EventAssigned:
		return fmt.Sprintf("Grievance #%d assigned to user %d: %s", event.GrievanceID, event.AssigneeID, event.Title)
	}
	return ""
}

func decodeEvent(payload string) (models.GrievanceEvent, error) {
	var event models.GrievanceEvent
	err := json.Unmarshal([]byte(payload), &event)
	return event, err
}
