package mpu6050

import (
	"errors"
	"fmt"
)

// ErrNoTransport is returned by New when no bus transport is supplied.
var ErrNoTransport = errors.New("mpu6050: no bus transport provided")

// ErrInvalidRange is returned by configuration setters when the requested
// enumeration value is outside the chip's legal set.
var ErrInvalidRange = errors.New("mpu6050: value outside the legal range set")

// TransportError wraps any failure reported by the underlying bus transport.
// The driver never inspects or retries these; it forwards them so the caller
// can tell "bus broken" apart from "chip rejected write" (ConfigError).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mpu6050: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConfigError reports a configuration write that completed on the bus but did
// not read back with the intended value.
type ConfigError struct {
	Reg  byte
	Want byte
	Got  byte
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mpu6050: register %#x readback mismatch: wrote %#08b, read %#08b", e.Reg, e.Want, e.Got)
}

// ChipIDError reports an unexpected WHO_AM_I response, typically another
// device answering on the same address.
type ChipIDError struct {
	Got byte
}

func (e *ChipIDError) Error() string {
	return fmt.Sprintf("mpu6050: unexpected chip ID %#x (want %#x)", e.Got, DefaultAddress)
}

func transportErr(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}
