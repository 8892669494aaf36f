package mpu6050

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imu "github.com/BloodWalrus/mpu6050improved"
)

func newTestDevice(t *testing.T) (*MPU6050, *SimBus) {
	t.Helper()
	bus := NewSimBus()
	dev, err := New(bus)
	require.NoError(t, err)
	return dev, bus
}

func TestNew_RequiresTransport(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoTransport)
}

func TestInit_ConfiguresDefaults(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	require.NoError(t, dev.Init(ctx, imu.NopDelay()))

	// awake, PLL X-gyro clock
	assert.Equal(t, byte(0x01), bus.Get(regPwrMgmt1))
	assert.Equal(t, byte(AccelRange2G), fieldAccelFS.get(bus.Get(regAccelConfig)))
	assert.Equal(t, byte(GyroRange250), fieldGyroFS.get(bus.Get(regGyroConfig)))
	assert.Equal(t, byte(AccelHPFReset), fieldAccelHPF.get(bus.Get(regAccelConfig)))
	assert.Equal(t, AccelRange2G, dev.AccelRange())
	assert.Equal(t, GyroRange250, dev.GyroRange())
	assert.Equal(t, ClockPLLGyroX, dev.ClockSource())
}

func TestInit_Idempotent(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	require.NoError(t, dev.Init(ctx, imu.NopDelay()))
	require.NoError(t, dev.SetAccelRange(ctx, AccelRange16G))
	require.NoError(t, dev.Init(ctx, imu.NopDelay()))

	assert.Equal(t, byte(AccelRange2G), fieldAccelFS.get(bus.Get(regAccelConfig)))
	assert.Equal(t, AccelRange2G, dev.AccelRange())
}

func TestInit_RejectsForeignChip(t *testing.T) {
	bus := NewSimBus()
	bus.ChipID = 0x12
	dev, err := New(bus)
	require.NoError(t, err)

	err = dev.Init(context.Background(), imu.NopDelay())
	var idErr *ChipIDError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, byte(0x12), idErr.Got)
}

func TestSetAccelRange_RoundTrip(t *testing.T) {
	ranges := []AccelRange{AccelRange2G, AccelRange4G, AccelRange8G, AccelRange16G}
	for _, r := range ranges {
		t.Run(r.String(), func(t *testing.T) {
			dev, bus := newTestDevice(t)
			require.NoError(t, dev.SetAccelRange(context.Background(), r))
			assert.Equal(t, r, dev.AccelRange())
			assert.Equal(t, byte(r), fieldAccelFS.get(bus.Get(regAccelConfig)))
		})
	}
}

func TestSetGyroRange_RoundTrip(t *testing.T) {
	ranges := []GyroRange{GyroRange250, GyroRange500, GyroRange1000, GyroRange2000}
	for _, r := range ranges {
		t.Run(r.String(), func(t *testing.T) {
			dev, bus := newTestDevice(t)
			require.NoError(t, dev.SetGyroRange(context.Background(), r))
			assert.Equal(t, r, dev.GyroRange())
			assert.Equal(t, byte(r), fieldGyroFS.get(bus.Get(regGyroConfig)))
		})
	}
}

func TestSetAccelRange_PreservesFilterBits(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	require.NoError(t, dev.SetAccelHPF(ctx, AccelHPF5Hz))
	require.NoError(t, dev.SetAccelRange(ctx, AccelRange8G))

	assert.Equal(t, byte(AccelHPF5Hz), fieldAccelHPF.get(bus.Get(regAccelConfig)))
	assert.Equal(t, byte(AccelRange8G), fieldAccelFS.get(bus.Get(regAccelConfig)))
	assert.Equal(t, AccelHPF5Hz, dev.AccelHPF())
}

func TestSetAccelHPF_PreservesRangeBits(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	require.NoError(t, dev.SetAccelRange(ctx, AccelRange16G))
	require.NoError(t, dev.SetAccelHPF(ctx, AccelHPF2_5Hz))

	assert.Equal(t, byte(AccelRange16G), fieldAccelFS.get(bus.Get(regAccelConfig)))
	assert.Equal(t, AccelRange16G, dev.AccelRange())
}

func TestSetDLPF_Idempotent(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	require.NoError(t, dev.SetDLPF(ctx, DLPF44Hz))
	after1 := bus.Get(regConfig)
	require.NoError(t, dev.SetDLPF(ctx, DLPF44Hz))
	after2 := bus.Get(regConfig)

	assert.Equal(t, after1, after2)
	assert.Equal(t, DLPF44Hz, dev.DLPF())
}

func TestSetAccelRange_InvalidValue(t *testing.T) {
	dev, bus := newTestDevice(t)
	err := dev.SetAccelRange(context.Background(), AccelRange(7))
	assert.ErrorIs(t, err, ErrInvalidRange)
	// rejected before touching the bus
	assert.Zero(t, bus.Writes)
	assert.Equal(t, AccelRange2G, dev.AccelRange())
}

func TestSetAccelRange_VerificationMismatch(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.ReadOnly[regAccelConfig] = true

	err := dev.SetAccelRange(context.Background(), AccelRange4G)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, regAccelConfig, cfgErr.Reg)
	// unverified write must not move the cache
	assert.Equal(t, AccelRange2G, dev.AccelRange())
}

func TestSetGyroRange_TransportFailure(t *testing.T) {
	dev, bus := newTestDevice(t)
	nack := errors.New("nack")
	bus.WriteErr = nack

	err := dev.SetGyroRange(context.Background(), GyroRange1000)

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.ErrorIs(t, err, nack)
	assert.Equal(t, GyroRange250, dev.GyroRange())
}

func TestInit_TransportFailurePropagates(t *testing.T) {
	dev, bus := newTestDevice(t)
	nack := errors.New("bus stuck")
	bus.WriteErr = nack

	err := dev.Init(context.Background(), imu.NopDelay())

	var tErr *TransportError
	assert.ErrorAs(t, err, &tErr)
	assert.ErrorIs(t, err, nack)
}

func TestSleepToggle(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()
	require.NoError(t, dev.Init(ctx, imu.NopDelay()))

	require.NoError(t, dev.SetSleepEnabled(ctx, true))
	asleep, err := dev.SleepEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, asleep)
	// sleep toggle must not disturb the clock selection
	assert.Equal(t, byte(ClockPLLGyroX), fieldClockSel.get(bus.Get(regPwrMgmt1)))

	require.NoError(t, dev.SetSleepEnabled(ctx, false))
	asleep, err = dev.SleepEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, asleep)
}

func TestTempEnableInvertsDisableBit(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	require.NoError(t, dev.SetTempEnabled(ctx, false))
	assert.Equal(t, byte(1), fieldTempDisable.get(bus.Get(regPwrMgmt1)))
	enabled, err := dev.TempEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, dev.SetTempEnabled(ctx, true))
	enabled, err = dev.TempEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestSetAccelSelfTest_PreservesConfig(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()
	require.NoError(t, dev.SetAccelRange(ctx, AccelRange8G))

	require.NoError(t, dev.SetAccelSelfTest(ctx, true, false, true))

	cfg := bus.Get(regAccelConfig)
	assert.Equal(t, byte(1), fieldAccelXSelfTest.get(cfg))
	assert.Equal(t, byte(0), fieldAccelYSelfTest.get(cfg))
	assert.Equal(t, byte(1), fieldAccelZSelfTest.get(cfg))
	assert.Equal(t, byte(AccelRange8G), fieldAccelFS.get(cfg))
}

func TestAccelSelfTest_ReadsBack(t *testing.T) {
	dev, _ := newTestDevice(t)
	ctx := context.Background()
	require.NoError(t, dev.SetAccelSelfTest(ctx, true, false, true))

	x, y, z, err := dev.AccelSelfTest(ctx)
	require.NoError(t, err)
	assert.True(t, x)
	assert.False(t, y)
	assert.True(t, z)
}
