package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenCleanup_SweepCoversBothTables(t *testing.T) {
	refresh := new(MockTokenRepository)
	resets := new(MockResetTokenRepository)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	refresh.On("DeleteExpired", mock.Anything, now).Return(int64(4), nil)
	resets.On("DeleteExpired", mock.Anything, now).Return(int64(2), nil)

	svc := NewTokenCleanupService(map[string]ExpiredTokenStore{
		"refresh_tokens":        refresh,
		"password_reset_tokens": resets,
	}, zerolog.Nop())
	svc.now = func() time.Time { return now }

	deleted, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted)
	refresh.AssertExpectations(t)
	resets.AssertExpectations(t)
}

func TestTokenCleanup_FailingStoreDoesNotStopOthers(t *testing.T) {
	refresh := new(MockTokenRepository)
	resets := new(MockResetTokenRepository)

	refresh.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), errors.New("connection reset"))
	resets.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	svc := NewTokenCleanupService(map[string]ExpiredTokenStore{
		"refresh_tokens":        refresh,
		"password_reset_tokens": resets,
	}, zerolog.Nop())

	deleted, err := svc.Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh_tokens: connection reset")
	assert.Equal(t, int64(3), deleted)
	resets.AssertExpectations(t)
}

func TestTokenCleanup_RunSweepsAtStartAndOnTicks(t *testing.T) {
	refresh := new(MockTokenRepository)
	calls := make(chan struct{}, 16)
	refresh.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil).
		Run(func(mock.Arguments) {
			select {
			case calls <- struct{}{}:
			default:
			}
		})

	svc := NewTokenCleanupService(map[string]ExpiredTokenStore{"refresh_tokens": refresh}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 20*time.Millisecond)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("sweep %d did not happen", i+1)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
