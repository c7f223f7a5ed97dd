package eventhub

import (
	"log"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
)

// Manager розсилає події звернень усім підключеним staff-клієнтам.
// Увесь стан (мапа клієнтів) належить goroutine Run; зовнішній код
// взаємодіє з хабом лише через канали.
type Manager struct {
	Clients map[uint]Client

	BroadcastCh  chan models.GrievanceEvent
	RegisterCh   chan Client
	UnregisterCh chan Client

	Storage storage.Storage
}

func NewManager(s storage.Storage) *Manager {
	return &Manager{
		Clients:      make(map[uint]Client),
		BroadcastCh:  make(chan models.GrievanceEvent),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Storage:      s,
	}
}

// Run — головний цикл хаба. Запускається окремою goroutine з main.
// Слухач Redis (StartPubSubListener) запускається окремо, щоб хаб можна
// було тестувати без Redis.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetUserID()] = client
			log.Printf("INFO: Staff client %d connected to event feed.", client.GetUserID())

		case client := <-m.UnregisterCh:
			if _, ok := m.Clients[client.GetUserID()]; ok {
				delete(m.Clients, client.GetUserID())
				client.Close()
				log.Printf("INFO: Staff client %d disconnected from event feed.", client.GetUserID())
			}

		case event := <-m.BroadcastCh:
			for userID, client := range m.Clients {
				select {
				case client.GetSendChannel() <- event:
				default:
					// Повільний клієнт: відключаємо, щоб не блокувати хаб.
					delete(m.Clients, userID)
					client.Close()
					log.Printf("WARNING: Dropped slow event feed client %d.", userID)
				}
			}
		}
	}
}
