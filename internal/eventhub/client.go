package eventhub

import "samadhan/backend/internal/models"

// Client is the interface for any subscriber of the grievance event feed
// (currently websocket connections; the telegram notifier consumes the
// Redis channel directly). It abstracts the underlying transport so the
// hub can manage client types uniformly.
type Client interface {
	// GetUserID returns the id of the staff user behind the connection.
	GetUserID() uint

	// GetSendChannel returns the channel the hub pushes events into.
	GetSendChannel() chan<- models.GrievanceEvent

	// Run starts the client's pumps.
	Run()
	// Close shuts down the client's connection and channels.
	Close()
}
