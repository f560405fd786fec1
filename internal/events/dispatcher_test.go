package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	boom := errors.New("boom")

	d.Subscribe(EventOrderCreated, func(context.Context, Event) error {
		calls = append(calls, "first")
		return boom
	})
	d.Subscribe(EventOrderCreated, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventContactReceived, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventOrderCreated, "order-1", Actor{}, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPhoneSuffix(t *testing.T) {
	assert.Equal(t, "5678", PhoneSuffix("+8801712345678"))
	assert.Equal(t, "****", PhoneSuffix("1234"))
	assert.Equal(t, "**", PhoneSuffix("12"))
	assert.Equal(t, "", PhoneSuffix(""))
}
