package mpu6050

import (
	"context"
	"encoding/binary"
	"math"
)

// Vector holds one three-axis measurement in physical units.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// Magnitude returns the euclidean norm of the vector.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// RawSample holds one three-axis measurement as signed 16-bit register
// counts, before scaling.
type RawSample struct {
	X int16
	Y int16
	Z int16
}

// Angles is a single-sample tilt estimate in degrees.
type Angles struct {
	Roll  float64
	Pitch float64
}

// readSample burst-reads the six data registers starting at reg and
// reassembles three big-endian two's-complement words. The chip latches all
// six registers from the same internal sample, so one burst read is also a
// consistency guarantee.
func (d *MPU6050) readSample(ctx context.Context, reg byte) (RawSample, error) {
	var buf [6]byte
	if err := d.readRegisters(ctx, reg, buf[:]); err != nil {
		return RawSample{}, err
	}
	return RawSample{
		X: int16(binary.BigEndian.Uint16(buf[0:2])),
		Y: int16(binary.BigEndian.Uint16(buf[2:4])),
		Z: int16(binary.BigEndian.Uint16(buf[4:6])),
	}, nil
}

// ReadAccelRaw returns one unscaled accelerometer sample.
func (d *MPU6050) ReadAccelRaw(ctx context.Context) (RawSample, error) {
	return d.readSample(ctx, regAccelXOutH)
}

// ReadGyroRaw returns one unscaled gyroscope sample.
func (d *MPU6050) ReadGyroRaw(ctx context.Context) (RawSample, error) {
	return d.readSample(ctx, regGyroXOutH)
}

// ReadTempRaw returns the unscaled die temperature word.
func (d *MPU6050) ReadTempRaw(ctx context.Context) (int16, error) {
	var buf [2]byte
	if err := d.readRegisters(ctx, regTempOutH, buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

// ReadAccel returns one accelerometer sample in g, scaled by the cached
// range's LSB-per-g factor, with the configured offset applied.
func (d *MPU6050) ReadAccel(ctx context.Context) (Vector, error) {
	raw, err := d.ReadAccelRaw(ctx)
	if err != nil {
		return Vector{}, err
	}
	return raw.scale(d.accelRange.Sensitivity(), d.accelOffset), nil
}

// ReadGyro returns one gyroscope sample in °/s, scaled by the cached range's
// LSB per °/s factor, with the configured offset applied.
func (d *MPU6050) ReadGyro(ctx context.Context) (Vector, error) {
	raw, err := d.ReadGyroRaw(ctx)
	if err != nil {
		return Vector{}, err
	}
	return raw.scale(d.gyroRange.Sensitivity(), d.gyroOffset), nil
}

// ReadTemp returns the die temperature in °C (register map rev 4.2 linear
// formula).
func (d *MPU6050) ReadTemp(ctx context.Context) (float64, error) {
	raw, err := d.ReadTempRaw(ctx)
	if err != nil {
		return 0, err
	}
	return float64(raw)/tempSensitivity + tempOffset, nil
}

func (s RawSample) scale(sensitivity float64, offset Vector) Vector {
	return Vector{
		X: float64(s.X)/sensitivity + offset.X,
		Y: float64(s.Y)/sensitivity + offset.Y,
		Z: float64(s.Z)/sensitivity + offset.Z,
	}
}

// Angles reads one accelerometer sample and estimates roll and pitch from the
// gravity direction. Only meaningful while the device is static or moving
// slowly: linear acceleration is indistinguishable from gravity in a single
// sample, so that precondition is documented, not checked.
func (d *MPU6050) Angles(ctx context.Context) (Angles, error) {
	acc, err := d.ReadAccel(ctx)
	if err != nil {
		return Angles{}, err
	}
	return AnglesFrom(acc), nil
}

// AnglesFrom computes roll = atan2(y, z) and pitch = atan2(-x, sqrt(y²+z²))
// in degrees from a scaled accelerometer sample (NXP AN3461, equations 28
// and 29). A zero-magnitude vector (sensor fault) yields the atan2(0,0)=0
// convention rather than a panic or NaN.
func AnglesFrom(acc Vector) Angles {
	return Angles{
		Roll:  math.Atan2(acc.Y, acc.Z) * 180 / math.Pi,
		Pitch: math.Atan2(-acc.X, math.Sqrt(acc.Y*acc.Y+acc.Z*acc.Z)) * 180 / math.Pi,
	}
}
