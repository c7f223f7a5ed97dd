package telegram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/telegram"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name  string
		event models.GrievanceEvent
		want  string
	}{
		{
			name: "critical created",
			event: models.GrievanceEvent{
				Type:        models.EventGrievanceCreated,
				GrievanceID: 11,
				Title:       "Sewage overflow",
				Priority:    models.PriorityCritical,
			},
			want: "🚨 Critical grievance #11 filed: Sewage overflow",
		},
		{
			name: "non-critical created stays quiet",
			event: models.GrievanceEvent{
				Type:     models.EventGrievanceCreated,
				Priority: models.PriorityMedium,
			},
			want: "",
		},
		{
			name: "status change",
			event: models.GrievanceEvent{
				Type:        models.EventStatusChanged,
				GrievanceID: 11,
				Title:       "Sewage overflow",
				Status:      models.StatusInProgress,
			},
			want: "Grievance #11 is now In Progress: Sewage overflow",
		},
		{
			name: "assignment",
			event: models.GrievanceEvent{
				Type:        models.EventAssigned,
				GrievanceID: 11,
				AssigneeID:  5,
				Title:       "Sewage overflow",
			},
			want: "Grievance #11 assigned to user 5: Sewage overflow",
		},
		{
			name: "comments stay quiet",
			event: models.GrievanceEvent{
				Type:        models.EventCommented,
				GrievanceID: 11,
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, telegram.FormatEvent(tt.event))
		})
	}
}
