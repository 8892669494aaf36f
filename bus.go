package imu

import (
	"context"
	"fmt"
	"time"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
}

// Delay is the blocking wait capability consumed by initialization sequences.
// The driver never sleeps on its own; the caller decides how waiting happens
// (host sleep, RTOS tick, test no-op).
type Delay interface {
	Delay(ctx context.Context, d time.Duration) error
}

// DelayFunc adapts a plain function to the Delay interface.
type DelayFunc func(ctx context.Context, d time.Duration) error

func (f DelayFunc) Delay(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// SleepDelay returns a timer-backed Delay that aborts early when the context
// is cancelled.
func SleepDelay() Delay {
	return DelayFunc(func(ctx context.Context, d time.Duration) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// NopDelay returns a Delay that does not wait. Intended for tests and
// simulated transports.
func NopDelay() Delay {
	return DelayFunc(func(ctx context.Context, d time.Duration) error {
		return ctx.Err()
	})
}
