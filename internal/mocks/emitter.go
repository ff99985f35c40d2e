package mocks

import (
	"context"

	"github.com/micropay/micropay-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// Emitter is a mock implementation of events.Emitter.
type Emitter struct {
	mock.Mock
}

var _ events.Emitter = (*Emitter)(nil)

func (m *Emitter) EmitEvent(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
