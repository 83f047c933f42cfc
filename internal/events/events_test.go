package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_ApplicationStatusChanged(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan ApplicationStatusChanged, 1)
	require.NoError(t, bus.HandleApplicationStatusChanged(ctx, func(_ context.Context, evt ApplicationStatusChanged) error {
		received <- evt
		return nil
	}))

	want := ApplicationStatusChanged{
		ApplicationID: 5,
		StudentID:     9,
		InternshipID:  3,
		OldStatus:     "pending",
		NewStatus:     "accepted",
		ChangedBy:     2,
	}
	require.NoError(t, bus.PublishApplicationStatusChanged(ctx, want))

	select {
	case got := <-received:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("status change event was not delivered")
	}
}

func TestBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan int64, 2)
	require.NoError(t, bus.HandleApplicationStatusChanged(ctx, func(_ context.Context, evt ApplicationStatusChanged) error {
		calls <- evt.ApplicationID
		return errors.New("smtp down")
	}))

	require.NoError(t, bus.PublishApplicationStatusChanged(ctx, ApplicationStatusChanged{ApplicationID: 1}))
	require.NoError(t, bus.PublishApplicationStatusChanged(ctx, ApplicationStatusChanged{ApplicationID: 2}))

	var got []int64
	for len(got) < 2 {
		select {
		case id := <-calls:
			got = append(got, id)
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 2 events delivered", len(got))
		}
	}
	assert.ElementsMatch(t, []int64{1, 2}, got)
}
