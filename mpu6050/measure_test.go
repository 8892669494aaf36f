package mpu6050

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imu "github.com/BloodWalrus/mpu6050improved"
)

func TestReadAccelRaw_BigEndianTwosComplement(t *testing.T) {
	tests := []struct {
		name     string
		x, y, z  int16
	}{
		{"zero", 0, 0, 0},
		{"positive", 16384, 1, 255},
		{"negative", -16384, -1, -32768},
		{"extremes", 32767, -32768, 256},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dev, bus := newTestDevice(t)
			bus.SetWord(regAccelXOutH, test.x)
			bus.SetWord(regAccelXOutH+2, test.y)
			bus.SetWord(regAccelXOutH+4, test.z)

			raw, err := dev.ReadAccelRaw(context.Background())
			require.NoError(t, err)
			assert.Equal(t, RawSample{X: test.x, Y: test.y, Z: test.z}, raw)
		})
	}
}

func TestReadAccel_ZeroRawIsZeroForAllRanges(t *testing.T) {
	for _, r := range []AccelRange{AccelRange2G, AccelRange4G, AccelRange8G, AccelRange16G} {
		t.Run(r.String(), func(t *testing.T) {
			dev, _ := newTestDevice(t)
			require.NoError(t, dev.SetAccelRange(context.Background(), r))
			acc, err := dev.ReadAccel(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Vector{}, acc)
		})
	}
}

func TestReadAccel_ScaleFactors(t *testing.T) {
	tests := []struct {
		r    AccelRange
		lsb  int16
	}{
		{AccelRange2G, 16384},
		{AccelRange4G, 8192},
		{AccelRange8G, 4096},
		{AccelRange16G, 2048},
	}
	for _, test := range tests {
		t.Run(test.r.String(), func(t *testing.T) {
			dev, bus := newTestDevice(t)
			require.NoError(t, dev.SetAccelRange(context.Background(), test.r))
			bus.SetWord(regAccelXOutH, test.lsb)
			bus.SetWord(regAccelXOutH+4, -test.lsb)

			acc, err := dev.ReadAccel(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1.0, acc.X)
			assert.Equal(t, 0.0, acc.Y)
			assert.Equal(t, -1.0, acc.Z)
		})
	}
}

func TestReadGyro_ScaleFactors(t *testing.T) {
	tests := []struct {
		r        GyroRange
		raw      int16
		expected float64
	}{
		{GyroRange250, 131, 1.0},
		{GyroRange500, 131, 2.0},
		{GyroRange1000, 328, 10.0},
		{GyroRange2000, 164, 10.0},
	}
	for _, test := range tests {
		t.Run(test.r.String(), func(t *testing.T) {
			dev, bus := newTestDevice(t)
			require.NoError(t, dev.SetGyroRange(context.Background(), test.r))
			bus.SetWord(regGyroXOutH, test.raw)

			gyro, err := dev.ReadGyro(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, test.expected, gyro.X, 1e-9)
		})
	}
}

func TestReadGyro_UsesCachedRangeAfterFailedSwitch(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()
	require.NoError(t, dev.SetGyroRange(ctx, GyroRange500))

	// chip rejects the switch to ±2000°/s; scaling must keep using ±500
	bus.ReadOnly[regGyroConfig] = true
	require.Error(t, dev.SetGyroRange(ctx, GyroRange2000))

	bus.SetWord(regGyroXOutH, 131)
	gyro, err := dev.ReadGyro(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, gyro.X, 1e-9)
}

func TestReadTemp_DatasheetFormula(t *testing.T) {
	tests := []struct {
		name     string
		raw      int16
		expected float64
	}{
		{"zero is offset", 0, 36.53},
		{"room temperature", -521, 34.99},
		{"one degree above offset", 340, 37.53},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dev, bus := newTestDevice(t)
			bus.SetWord(regTempOutH, test.raw)
			temp, err := dev.ReadTemp(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, test.expected, temp, 0.01)
		})
	}
}

func TestReadAccel_AppliesOffset(t *testing.T) {
	bus := NewSimBus()
	dev, err := New(bus, WithAccelOffset(Vector{X: 0.05, Y: -0.02}))
	require.NoError(t, err)
	bus.SetWord(regAccelXOutH+4, 16384)

	acc, err := dev.ReadAccel(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.05, acc.X, 1e-9)
	assert.InDelta(t, -0.02, acc.Y, 1e-9)
	assert.InDelta(t, 1.0, acc.Z, 1e-9)
}

func TestReadAccel_TransportFailure(t *testing.T) {
	dev, bus := newTestDevice(t)
	stuck := errors.New("arbitration lost")
	bus.ReadErr = stuck

	_, err := dev.ReadAccel(context.Background())
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.ErrorIs(t, err, stuck)
}

func TestAnglesFrom(t *testing.T) {
	tests := []struct {
		name  string
		acc   Vector
		roll  float64
		pitch float64
	}{
		{"flat z-up", Vector{Z: 1}, 0, 0},
		{"nose down", Vector{X: 1}, 0, -90},
		{"nose up", Vector{X: -1}, 0, 90},
		{"right side down", Vector{Y: 1}, 90, 0},
		{"upside down", Vector{Z: -1}, 180, 0},
		{"45 degree roll", Vector{Y: 0.7071067811865476, Z: 0.7071067811865476}, 45, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			angles := AnglesFrom(test.acc)
			assert.InDelta(t, test.roll, angles.Roll, 1e-6)
			assert.InDelta(t, test.pitch, angles.Pitch, 1e-6)
		})
	}
}

func TestAnglesFrom_ZeroVectorDoesNotPanic(t *testing.T) {
	angles := AnglesFrom(Vector{})
	assert.False(t, angles.Roll != angles.Roll, "roll must not be NaN for the documented zero convention")
	assert.Equal(t, 0.0, angles.Roll)
	assert.Equal(t, 0.0, angles.Pitch)
}

func TestVector_Magnitude(t *testing.T) {
	assert.InDelta(t, 3.0, Vector{X: 1, Y: 2, Z: 2}.Magnitude(), 1e-12)
	assert.Zero(t, Vector{}.Magnitude())
}

func TestSimBus_SeedSurvivesInit(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.SeedFlat()
	ctx := context.Background()
	require.NoError(t, dev.Init(ctx, imu.NopDelay()))

	acc, err := dev.ReadAccel(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, acc.X, 1e-9)
	assert.InDelta(t, 0.0, acc.Y, 1e-9)
	assert.InDelta(t, 1.0, acc.Z, 1e-9)

	tmp, err := dev.ReadTemp(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, tmp, 0.01)
}

func TestAngles_ReadsAccelerometer(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.SetWord(regAccelXOutH+4, 16384) // 1g on z, device flat

	angles, err := dev.Angles(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, angles.Roll, 1e-6)
	assert.InDelta(t, 0.0, angles.Pitch, 1e-6)
}
