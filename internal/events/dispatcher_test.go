package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashion-oms/oms-service/internal/events"
)

func TestInMemoryDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribers of the event type", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		var seen []events.Event
		dispatcher.Subscribe(events.EventRoleUpgradeInitiated, func(_ context.Context, event events.Event) error {
			seen = append(seen, event)
			return nil
		})
		dispatcher.Subscribe(events.EventOrderCreated, func(_ context.Context, event events.Event) error {
			t.Fatal("wrong subscription invoked")
			return nil
		})

		require.NoError(t, dispatcher.Publish(ctx, events.Event{ID: "e1", Type: events.EventRoleUpgradeInitiated}))
		require.Len(t, seen, 1)
		assert.Equal(t, "e1", seen[0].ID)
	})

	t.Run("a failing handler does not block the rest", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		invoked := false
		dispatcher.Subscribe(events.EventRoleUpgradeVerified, func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		dispatcher.Subscribe(events.EventRoleUpgradeVerified, func(context.Context, events.Event) error {
			invoked = true
			return nil
		})

		require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventRoleUpgradeVerified}))
		assert.True(t, invoked)
	})
}
