package eventhub_test

import (
	"samadhan/backend/internal/models"
)

type mockClient struct {
	userID      uint
	RecvChannel chan models.GrievanceEvent
	closed      bool
}

func newMockClient(userID uint) *mockClient {
	return &mockClient{
		userID:      userID,
		RecvChannel: make(chan models.GrievanceEvent, 8),
	}
}

func (c *mockClient) GetUserID() uint { return c.userID }

func (c *mockClient) GetSendChannel() chan<- models.GrievanceEvent {
	return c.RecvChannel
}

func (c *mockClient) Run() {}

func (c *mockClient) Close() { c.closed = true }
