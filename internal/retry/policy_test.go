package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func TestNone_SingleAttempt(t *testing.T) {
	calls := 0
	err := None().Do(context.Background(), isTransient, func(int) error {
		calls++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientUntilSuccess(t *testing.T) {
	p := Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

	var seen []int
	err := p.Do(context.Background(), isTransient, func(attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errTransient
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	p := Policy{MaxAttempts: 2, InitialInterval: time.Millisecond}

	calls := 0
	err := p.Do(context.Background(), isTransient, func(int) error {
		calls++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 2, calls)
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	p := Policy{MaxAttempts: 5, InitialInterval: time.Millisecond}

	calls := 0
	err := p.Do(context.Background(), isTransient, func(int) error {
		calls++
		return errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroAttemptsMeansOne(t *testing.T) {
	calls := 0
	_ = Policy{}.Do(context.Background(), isTransient, func(int) error {
		calls++
		return errTransient
	})
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledContextKeepsOperationError(t *testing.T) {
	for _, p := range []Policy{None(), {MaxAttempts: 3, InitialInterval: time.Millisecond}} {
		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		err := p.Do(ctx, isTransient, func(int) error {
			calls++
			cancel()
			return errTransient
		})

		assert.ErrorIs(t, err, errTransient)
		assert.NotErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	}
}

func TestDo_DeadlineDuringBackoffKeepsOperationError(t *testing.T) {
	p := Policy{MaxAttempts: 5, InitialInterval: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Do(ctx, isTransient, func(int) error {
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
}
