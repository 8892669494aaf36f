package mpu6050

import (
	"context"
)

// MotionStatus mirrors MOT_DETECT_STATUS: one flag per axis and direction,
// set by the chip when the high-pass filtered acceleration exceeded the
// configured threshold for the configured duration. Any aggregates them.
type MotionStatus struct {
	XNeg bool `yaml:"x_neg"`
	XPos bool `yaml:"x_pos"`
	YNeg bool `yaml:"y_neg"`
	YPos bool `yaml:"y_pos"`
	ZNeg bool `yaml:"z_neg"`
	ZPos bool `yaml:"z_pos"`
	Any  bool `yaml:"any"`
}

func decodeMotionStatus(b byte) MotionStatus {
	s := MotionStatus{
		XNeg: b&motionXNeg != 0,
		XPos: b&motionXPos != 0,
		YNeg: b&motionYNeg != 0,
		YPos: b&motionYPos != 0,
		ZNeg: b&motionZNeg != 0,
		ZPos: b&motionZPos != 0,
	}
	s.Any = s.XNeg || s.XPos || s.YNeg || s.YPos || s.ZNeg || s.ZPos
	return s
}

// EnableMotionDetection arms the chip-internal motion comparator: wake, INT
// pin latched active-high, accelerometer HPF at 5Hz so gravity is filtered
// out of the comparison, threshold and duration, free-fall and motion
// decrements of 1 with 1ms extra start-up delay, and the motion interrupt
// enabled. Threshold is in units of 2mg, duration in ms at the 1kHz rate.
func (d *MPU6050) EnableMotionDetection(ctx context.Context, threshold, duration byte) error {
	// wake on the internal oscillator; the comparator does not need the PLL
	if err := d.writeRegisterVerified(ctx, regPwrMgmt1, byte(ClockInternal8MHz)); err != nil {
		return err
	}
	d.clock = ClockInternal8MHz
	// active high, push-pull, latched until INT_STATUS is read
	if err := d.writeRegister(ctx, regIntPinCfg, 0x20); err != nil {
		return err
	}
	if err := d.SetAccelHPF(ctx, AccelHPF5Hz); err != nil {
		return err
	}
	if err := d.SetMotionThreshold(ctx, threshold); err != nil {
		return err
	}
	if err := d.SetMotionDuration(ctx, duration); err != nil {
		return err
	}
	if err := d.writeRegister(ctx, regMotionCtrl, 0x15); err != nil {
		return err
	}
	return d.updateBitsVerified(ctx, regIntEnable, fieldMotionIntEnable, 1)
}

// SetMotionThreshold configures the motion comparator threshold (2mg per
// LSB) with readback verification.
func (d *MPU6050) SetMotionThreshold(ctx context.Context, threshold byte) error {
	return d.writeRegisterVerified(ctx, regMotionThreshold, threshold)
}

// MotionThreshold reads the configured threshold from hardware.
func (d *MPU6050) MotionThreshold(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regMotionThreshold)
}

// SetMotionDuration configures how long the threshold must be exceeded
// before the event fires (1ms per LSB) with readback verification.
func (d *MPU6050) SetMotionDuration(ctx context.Context, duration byte) error {
	return d.writeRegisterVerified(ctx, regMotionDuration, duration)
}

// MotionDuration reads the configured duration from hardware.
func (d *MPU6050) MotionDuration(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regMotionDuration)
}

// Motion reads MOT_DETECT_STATUS once and decodes the per-axis flags. The
// hardware threshold and duration counters are the sole source of truth;
// no software debouncing happens here.
func (d *MPU6050) Motion(ctx context.Context) (MotionStatus, error) {
	b, err := d.readRegister(ctx, regMotionStatus)
	if err != nil {
		return MotionStatus{}, err
	}
	return decodeMotionStatus(b), nil
}

// MotionDetected reads the latched motion interrupt flag from INT_STATUS.
// Reading clears the latch.
func (d *MPU6050) MotionDetected(ctx context.Context) (bool, error) {
	return d.readBit(ctx, regIntStatus, fieldMotionInt)
}
