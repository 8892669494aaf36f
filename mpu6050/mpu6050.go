package mpu6050

import (
	"context"
	"fmt"
	"time"

	imu "github.com/BloodWalrus/mpu6050improved"
)

// settleTime is the wait after reset and after wake before the chip accepts
// further configuration (register map, DEVICE_RESET description).
const settleTime = 100 * time.Millisecond

// MPU6050 represents the InvenSense MPU-6050 six-axis IMU (3-axis
// accelerometer, 3-axis gyroscope, die temperature sensor) behind an I2C
// transport. The handle caches the active ranges and filter settings so
// scaling a sample never needs a configuration re-read; every configuration
// setter verifies its write by reading the register back before touching the
// cache, so the cache and the hardware cannot drift apart.
//
// A handle is not safe for concurrent use; the caller synchronizes or keeps
// it on one goroutine.
type MPU6050 struct {
	transport imu.I2CBus
	addr      byte

	accelRange AccelRange
	gyroRange  GyroRange
	accelHPF   AccelHPF
	dlpf       DLPF
	clock      ClockSource

	accelOffset Vector
	gyroOffset  Vector
}

type Option func(*MPU6050)

// WithAddress selects the alternate slave address (AD0 pulled high).
func WithAddress(addr byte) Option {
	return func(d *MPU6050) {
		d.addr = addr
	}
}

// WithAccelOffset adds a fixed offset (in g, per axis) to every scaled
// accelerometer reading.
func WithAccelOffset(offset Vector) Option {
	return func(d *MPU6050) {
		d.accelOffset = offset
	}
}

// WithGyroOffset adds a fixed offset (in °/s, per axis) to every scaled
// gyroscope reading.
func WithGyroOffset(offset Vector) Option {
	return func(d *MPU6050) {
		d.gyroOffset = offset
	}
}

// New creates a handle over the given transport. The configuration cache
// starts at the chip's power-on-reset defaults (±2g, ±250°/s, HPF reset,
// DLPF 260Hz, internal oscillator); Init brings hardware and cache to the
// driver defaults explicitly.
func New(transport imu.I2CBus, opts ...Option) (*MPU6050, error) {
	if transport == nil {
		return nil, ErrNoTransport
	}
	d := &MPU6050{
		transport:  transport,
		addr:       DefaultAddress,
		accelRange: AccelRange2G,
		gyroRange:  GyroRange250,
		accelHPF:   AccelHPFReset,
		dlpf:       DLPF260Hz,
		clock:      ClockInternal8MHz,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Init sequences the device into a known configured state: reset, settle,
// wake with the PLL X-gyro clock reference, chip identity check, then the
// default range and filter configuration. Any failure aborts the sequence
// and is propagated; calling Init again restarts from reset, so the sequence
// is idempotent.
func (d *MPU6050) Init(ctx context.Context, delay imu.Delay) error {
	if err := d.Reset(ctx, delay); err != nil {
		return err
	}
	if err := d.Wake(ctx, delay); err != nil {
		return err
	}
	if err := d.VerifyChip(ctx); err != nil {
		return err
	}
	if err := d.SetAccelRange(ctx, AccelRange2G); err != nil {
		return err
	}
	if err := d.SetGyroRange(ctx, GyroRange250); err != nil {
		return err
	}
	return d.SetAccelHPF(ctx, AccelHPFReset)
}

// Reset sets the DEVICE_RESET bit and waits out the settle time. The bit
// self-clears, so no readback verification is possible. Reset leaves the
// chip asleep with power-on defaults, so the cache is rolled back to them.
func (d *MPU6050) Reset(ctx context.Context, delay imu.Delay) error {
	if err := d.updateBits(ctx, regPwrMgmt1, fieldDeviceReset, 1); err != nil {
		return err
	}
	if err := delay.Delay(ctx, settleTime); err != nil {
		return fmt.Errorf("mpu6050: reset settle wait interrupted: %w", err)
	}
	d.accelRange = AccelRange2G
	d.gyroRange = GyroRange250
	d.accelHPF = AccelHPFReset
	d.dlpf = DLPF260Hz
	d.clock = ClockInternal8MHz
	return nil
}

// Wake clears the sleep bit and selects the PLL with the X-axis gyroscope as
// clock reference, the configuration the register map recommends for
// stability. The chip powers up asleep, so this must run before any
// measurement.
func (d *MPU6050) Wake(ctx context.Context, delay imu.Delay) error {
	if err := d.writeRegister(ctx, regPwrMgmt1, byte(ClockPLLGyroX)); err != nil {
		return err
	}
	if err := delay.Delay(ctx, settleTime); err != nil {
		return fmt.Errorf("mpu6050: wake settle wait interrupted: %w", err)
	}
	d.clock = ClockPLLGyroX
	return nil
}

// VerifyChip reads WHO_AM_I and checks the MPU-6050 signature.
func (d *MPU6050) VerifyChip(ctx context.Context) error {
	id, err := d.readRegister(ctx, regWhoAmI)
	if err != nil {
		return err
	}
	// WHO_AM_I reports the upper 6 address bits regardless of AD0
	if id != DefaultAddress {
		return &ChipIDError{Got: id}
	}
	return nil
}

// SetAccelRange configures the accelerometer full-scale range, preserving the
// self-test and high-pass filter bits sharing ACCEL_CONFIG. The cached range
// (and with it the scale factor used by ReadAccel) changes only after the
// register reads back correctly.
func (d *MPU6050) SetAccelRange(ctx context.Context, r AccelRange) error {
	if !r.valid() {
		return fmt.Errorf("%w: accel range %d", ErrInvalidRange, byte(r))
	}
	if err := d.updateBitsVerified(ctx, regAccelConfig, fieldAccelFS, byte(r)); err != nil {
		return err
	}
	d.accelRange = r
	return nil
}

// AccelRange returns the cached accelerometer range without a bus
// transaction. In sync with hardware because every mutator verifies.
func (d *MPU6050) AccelRange() AccelRange { return d.accelRange }

// SetGyroRange configures the gyroscope full-scale range, preserving the
// self-test bits sharing GYRO_CONFIG.
func (d *MPU6050) SetGyroRange(ctx context.Context, r GyroRange) error {
	if !r.valid() {
		return fmt.Errorf("%w: gyro range %d", ErrInvalidRange, byte(r))
	}
	if err := d.updateBitsVerified(ctx, regGyroConfig, fieldGyroFS, byte(r)); err != nil {
		return err
	}
	d.gyroRange = r
	return nil
}

// GyroRange returns the cached gyroscope range without a bus transaction.
func (d *MPU6050) GyroRange() GyroRange { return d.gyroRange }

// SetAccelHPF configures the accelerometer high-pass filter corner. The HPF
// bits share ACCEL_CONFIG with the range bits; the read-modify-write leaves
// the configured range untouched.
func (d *MPU6050) SetAccelHPF(ctx context.Context, h AccelHPF) error {
	if !h.valid() {
		return fmt.Errorf("%w: accel HPF %d", ErrInvalidRange, byte(h))
	}
	if err := d.updateBitsVerified(ctx, regAccelConfig, fieldAccelHPF, byte(h)); err != nil {
		return err
	}
	d.accelHPF = h
	return nil
}

// AccelHPF returns the cached high-pass filter setting.
func (d *MPU6050) AccelHPF() AccelHPF { return d.accelHPF }

// SetDLPF configures the digital low-pass filter bandwidth shared by both
// sensor signal paths (CONFIG register).
func (d *MPU6050) SetDLPF(ctx context.Context, f DLPF) error {
	if !f.valid() {
		return fmt.Errorf("%w: DLPF %d", ErrInvalidRange, byte(f))
	}
	if err := d.updateBitsVerified(ctx, regConfig, fieldDLPF, byte(f)); err != nil {
		return err
	}
	d.dlpf = f
	return nil
}

// DLPF returns the cached low-pass filter setting.
func (d *MPU6050) DLPF() DLPF { return d.dlpf }

// SetClockSource selects the chip clock reference.
func (d *MPU6050) SetClockSource(ctx context.Context, src ClockSource) error {
	if src > ClockStopped || src == 6 {
		return fmt.Errorf("%w: clock source %d", ErrInvalidRange, byte(src))
	}
	if err := d.updateBitsVerified(ctx, regPwrMgmt1, fieldClockSel, byte(src)); err != nil {
		return err
	}
	d.clock = src
	return nil
}

// ClockSource returns the cached clock selection.
func (d *MPU6050) ClockSource() ClockSource { return d.clock }

// SetSleepEnabled puts the chip to sleep or wakes it without touching the
// clock selection.
func (d *MPU6050) SetSleepEnabled(ctx context.Context, enable bool) error {
	return d.updateBitsVerified(ctx, regPwrMgmt1, fieldSleep, boolBit(enable))
}

// SleepEnabled reads the sleep bit from hardware.
func (d *MPU6050) SleepEnabled(ctx context.Context) (bool, error) {
	return d.readBit(ctx, regPwrMgmt1, fieldSleep)
}

// SetCycleEnabled toggles low-power cycle mode (periodic single samples
// between sleeps).
func (d *MPU6050) SetCycleEnabled(ctx context.Context, enable bool) error {
	return d.updateBitsVerified(ctx, regPwrMgmt1, fieldCycle, boolBit(enable))
}

// SetTempEnabled enables or disables the temperature sensor. The register
// bit stores the disabled state, hence the inversion.
func (d *MPU6050) SetTempEnabled(ctx context.Context, enable bool) error {
	return d.updateBitsVerified(ctx, regPwrMgmt1, fieldTempDisable, boolBit(!enable))
}

// TempEnabled reads the temperature sensor state from hardware.
func (d *MPU6050) TempEnabled(ctx context.Context) (bool, error) {
	disabled, err := d.readBit(ctx, regPwrMgmt1, fieldTempDisable)
	return !disabled, err
}

// SetAccelSelfTest drives the per-axis accelerometer self-test bits in one
// read-modify-write so the range and HPF bits in ACCEL_CONFIG stay intact.
func (d *MPU6050) SetAccelSelfTest(ctx context.Context, x, y, z bool) error {
	current, err := d.readRegister(ctx, regAccelConfig)
	if err != nil {
		return err
	}
	next := fieldAccelXSelfTest.put(current, boolBit(x))
	next = fieldAccelYSelfTest.put(next, boolBit(y))
	next = fieldAccelZSelfTest.put(next, boolBit(z))
	return d.writeRegisterVerified(ctx, regAccelConfig, next)
}

// AccelSelfTest reads the per-axis self-test bits back from ACCEL_CONFIG.
func (d *MPU6050) AccelSelfTest(ctx context.Context) (x, y, z bool, err error) {
	current, err := d.readRegister(ctx, regAccelConfig)
	if err != nil {
		return false, false, false, err
	}
	return fieldAccelXSelfTest.get(current) != 0,
		fieldAccelYSelfTest.get(current) != 0,
		fieldAccelZSelfTest.get(current) != 0,
		nil
}

// Close releases the underlying transport.
func (d *MPU6050) Close(ctx context.Context) error {
	return d.transport.Release(ctx)
}

// Address returns the configured slave address.
func (d *MPU6050) Address() byte { return d.addr }

// --- register access primitives ---

// readRegisters sets the register pointer and burst-reads len(buf)
// consecutive registers.
func (d *MPU6050) readRegisters(ctx context.Context, reg byte, buf []byte) error {
	if err := d.transport.WriteToAddr(ctx, d.addr, []byte{reg}); err != nil {
		return transportErr(fmt.Sprintf("could not select register %#x", reg), err)
	}
	if err := d.transport.ReadFromAddr(ctx, d.addr, buf); err != nil {
		return transportErr(fmt.Sprintf("could not read %d bytes from register %#x", len(buf), reg), err)
	}
	return nil
}

func (d *MPU6050) readRegister(ctx context.Context, reg byte) (byte, error) {
	var buf [1]byte
	if err := d.readRegisters(ctx, reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *MPU6050) writeRegister(ctx context.Context, reg, value byte) error {
	if err := d.transport.WriteToAddr(ctx, d.addr, []byte{reg, value}); err != nil {
		return transportErr(fmt.Sprintf("could not write register %#x", reg), err)
	}
	return nil
}

// writeRegisterVerified writes value and reads the register back; a mismatch
// yields a ConfigError.
func (d *MPU6050) writeRegisterVerified(ctx context.Context, reg, value byte) error {
	if err := d.writeRegister(ctx, reg, value); err != nil {
		return err
	}
	got, err := d.readRegister(ctx, reg)
	if err != nil {
		return err
	}
	if got != value {
		return &ConfigError{Reg: reg, Want: value, Got: got}
	}
	return nil
}

// updateBits performs an unverified read-modify-write of a single bit field.
func (d *MPU6050) updateBits(ctx context.Context, reg byte, field bitField, value byte) error {
	current, err := d.readRegister(ctx, reg)
	if err != nil {
		return err
	}
	return d.writeRegister(ctx, reg, field.put(current, value))
}

// updateBitsVerified is updateBits followed by readback verification of the
// whole register.
func (d *MPU6050) updateBitsVerified(ctx context.Context, reg byte, field bitField, value byte) error {
	current, err := d.readRegister(ctx, reg)
	if err != nil {
		return err
	}
	return d.writeRegisterVerified(ctx, reg, field.put(current, value))
}

func (d *MPU6050) readBit(ctx context.Context, reg byte, field bitField) (bool, error) {
	current, err := d.readRegister(ctx, reg)
	if err != nil {
		return false, err
	}
	return field.get(current) != 0, nil
}

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
