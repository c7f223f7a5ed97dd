package models

// Event types published on the grievance event channel.
const (
	EventGrievanceCreated = "created"
	EventStatusChanged    = "status_changed"
	EventAssigned         = "assigned"
	EventCommented        = "commented"
)

// GrievanceEvent is a lifecycle notification fanned out to staff clients
// (websocket feed, telegram notifier) through Redis Pub/Sub.
type GrievanceEvent struct {
	Type        string            `json:"type"` // "created", "status_changed", "assigned", "commented"
	GrievanceID uint              `json:"grievance_id"`
	ActorID     uint              `json:"actor_id"`
	AssigneeID  uint              `json:"assignee_id,omitempty"`
	Title       string            `json:"title"`
	Status      GrievanceStatus   `json:"status"`
	Priority    GrievancePriority `json:"priority"`
}
