package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/storage"
)

func TestGrievanceFilterOrderClause(t *testing.T) {
	tests := []struct {
		ordering string
		want     string
	}{
		{"created_at", "created_at asc"},
		{"-created_at", "created_at desc"},
		{"updated_at", "updated_at asc"},
		{"-updated_at", "updated_at desc"},
		{"priority", "priority asc"},
		{"-priority", "priority desc"},
		// Невідомі значення падають назад до типового сортування.
		{"citizen_id", "created_at desc"},
		{"-status", "created_at desc"},
		{"", "created_at desc"},
		{"created_at; DROP TABLE grievances", "created_at desc"},
	}

	for _, tt := range tests {
		t.Run(tt.ordering, func(t *testing.T) {
			filter := storage.GrievanceFilter{Ordering: tt.ordering}
			assert.Equal(t, tt.want, filter.OrderClause())
		})
	}
}

func TestGrievanceFilterLimit(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		want     int
	}{
		{"zero falls back to default", 0, config.DefaultPageSize},
		{"negative falls back to default", -3, config.DefaultPageSize},
		{"ordinary size passes through", 5, 5},
		{"max is allowed", config.MaxPageSize, config.MaxPageSize},
		{"oversized is capped", config.MaxPageSize + 1, config.MaxPageSize},
		{"absurd is capped", 100000, config.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := storage.GrievanceFilter{PageSize: tt.pageSize}
			assert.Equal(t, tt.want, filter.Limit())
		})
	}
}

func TestGrievanceFilterOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page starts at zero", 1, 20, 0},
		{"zero page clamps to first", 0, 20, 0},
		{"negative page clamps to first", -2, 20, 0},
		{"second page skips one page", 2, 20, 20},
		{"offset uses normalized page size", 3, 0, 2 * config.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := storage.GrievanceFilter{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, filter.Offset())
		})
	}
}
