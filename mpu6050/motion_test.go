package mpu6050

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imu "github.com/BloodWalrus/mpu6050improved"
)

func TestMotion_DecodesSingleAxisFlag(t *testing.T) {
	tests := []struct {
		name     string
		status   byte
		expected MotionStatus
	}{
		{"x positive", motionXPos, MotionStatus{XPos: true, Any: true}},
		{"x negative", motionXNeg, MotionStatus{XNeg: true, Any: true}},
		{"y positive", motionYPos, MotionStatus{YPos: true, Any: true}},
		{"y negative", motionYNeg, MotionStatus{YNeg: true, Any: true}},
		{"z positive", motionZPos, MotionStatus{ZPos: true, Any: true}},
		{"z negative", motionZNeg, MotionStatus{ZNeg: true, Any: true}},
		{"quiet", 0x00, MotionStatus{}},
		{"two axes", motionXPos | motionZNeg, MotionStatus{XPos: true, ZNeg: true, Any: true}},
		// reserved bits must not leak into the flags
		{"reserved bits only", 0x03, MotionStatus{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dev, bus := newTestDevice(t)
			bus.Set(regMotionStatus, test.status)

			status, err := dev.Motion(context.Background())
			require.NoError(t, err)
			assert.Equal(t, test.expected, status)
		})
	}
}

func TestSetMotionThreshold_Verifies(t *testing.T) {
	dev, bus := newTestDevice(t)
	require.NoError(t, dev.SetMotionThreshold(context.Background(), 20))
	assert.Equal(t, byte(20), bus.Get(regMotionThreshold))

	got, err := dev.MotionThreshold(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte(20), got)
}

func TestSetMotionThreshold_RejectedWrite(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.ReadOnly[regMotionThreshold] = true

	err := dev.SetMotionThreshold(context.Background(), 20)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, regMotionThreshold, cfgErr.Reg)
}

func TestSetMotionDuration_Verifies(t *testing.T) {
	dev, bus := newTestDevice(t)
	require.NoError(t, dev.SetMotionDuration(context.Background(), 40))
	assert.Equal(t, byte(40), bus.Get(regMotionDuration))
}

func TestEnableMotionDetection_ProgramsComparator(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()
	require.NoError(t, dev.Init(ctx, imu.NopDelay()))

	require.NoError(t, dev.EnableMotionDetection(ctx, 10, 40))

	assert.Equal(t, byte(0x20), bus.Get(regIntPinCfg))
	assert.Equal(t, byte(AccelHPF5Hz), fieldAccelHPF.get(bus.Get(regAccelConfig)))
	assert.Equal(t, AccelHPF5Hz, dev.AccelHPF())
	assert.Equal(t, byte(10), bus.Get(regMotionThreshold))
	assert.Equal(t, byte(40), bus.Get(regMotionDuration))
	assert.Equal(t, byte(0x15), bus.Get(regMotionCtrl))
	assert.Equal(t, byte(1), fieldMotionIntEnable.get(bus.Get(regIntEnable)))
	// arming the detector must not disturb the configured range
	assert.Equal(t, byte(AccelRange2G), fieldAccelFS.get(bus.Get(regAccelConfig)))
}

func TestEnableMotionDetection_SwitchesClockWithCache(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()
	require.NoError(t, dev.Init(ctx, imu.NopDelay()))
	require.Equal(t, ClockPLLGyroX, dev.ClockSource())

	require.NoError(t, dev.EnableMotionDetection(ctx, 10, 40))

	// arming wakes on the internal oscillator; the cached clock must follow
	assert.Equal(t, byte(ClockInternal8MHz), fieldClockSel.get(bus.Get(regPwrMgmt1)))
	assert.Equal(t, ClockInternal8MHz, dev.ClockSource())
}

func TestMotionDetected_ReadsInterruptFlag(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	detected, err := dev.MotionDetected(ctx)
	require.NoError(t, err)
	assert.False(t, detected)

	bus.Set(regIntStatus, 1<<6)
	detected, err = dev.MotionDetected(ctx)
	require.NoError(t, err)
	assert.True(t, detected)
}
