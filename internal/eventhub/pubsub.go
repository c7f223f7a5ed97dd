package eventhub

import (
	"encoding/json"
	"log"

	"samadhan/backend/internal/models"
)

// StartPubSubListener запускає goroutine, яка слухає Redis Pub/Sub і
// передає отримані події у BroadcastCh. Через Redis події доходять і від
// інших інстансів сервера.
func (m *Manager) StartPubSubListener() {
	go func() {
		pubsub := m.Storage.SubscribeEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var event models.GrievanceEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("ERROR: Failed to unmarshal grievance event: %v", err)
				continue
			}
			m.BroadcastCh <- event
		}
	}()
}
