package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campustix/internal/ports/output"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, message any) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func TestFanout_PublishesToAll(t *testing.T) {
	ctx := context.Background()
	msg := output.EventMessage{EventID: 3}

	ok := new(mockPublisher)
	ok.On("Publish", ctx, output.TopicEventApproved, msg).Return(nil)
	failing := new(mockPublisher)
	boom := errors.New("boom")
	failing.On("Publish", ctx, output.TopicEventApproved, msg).Return(boom)
	last := new(mockPublisher)
	last.On("Publish", ctx, output.TopicEventApproved, msg).Return(nil)

	err := Fanout{ok, failing, last}.Publish(ctx, output.TopicEventApproved, msg)

	assert.ErrorIs(t, err, boom)
	ok.AssertExpectations(t)
	failing.AssertExpectations(t)
	last.AssertExpectations(t)
}

func TestFanout_Empty(t *testing.T) {
	assert.NoError(t, Fanout(nil).Publish(context.Background(), output.TopicTicketIssued, nil))
}
