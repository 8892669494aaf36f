package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"periph.io/x/conn/v3/physic"

	imu "github.com/BloodWalrus/mpu6050improved"
	"github.com/BloodWalrus/mpu6050improved/adapter"
	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
	"github.com/BloodWalrus/mpu6050improved/gobotadapter"
	"github.com/BloodWalrus/mpu6050improved/i2c"
	"github.com/BloodWalrus/mpu6050improved/mpu6050"
)

func adapterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Value:   "mcp2221",
			Usage:   "transport adapter: mcp2221, generic, gobot or sim",
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Value:   "/dev/i2c-0",
			Usage:   "i2c device path for the generic adapter",
		},
		&cli.IntFlag{
			Name:  "bus",
			Value: 0,
			Usage: "i2c bus number for the gobot adapter",
		},
		&cli.IntFlag{
			Name:  "speed",
			Value: 400,
			Usage: "bus clock in kHz for the generic adapter",
		},
		&cli.BoolFlag{
			Name:  "alt-address",
			Usage: "talk to 0x69 instead of 0x68 (AD0 pulled high)",
		},
	}
}

// openBus builds the transport selected on the command line. The returned
// cleanup releases adapter resources and is safe to defer even on error.
func openBus(c *cli.Context) (imu.I2CBus, func(), error) {
	nop := func() {}
	switch c.String("adapter") {
	case "mcp2221":
		a := adapter.NewMCP2221()
		if err := a.Init(); err != nil {
			return nil, nop, err
		}
		return a, func() { _ = a.Release(context.Background()) }, nil
	case "generic":
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nop, err
		}
		if err = bus.SetSpeed(physic.Frequency(c.Int("speed")) * physic.KiloHertz); err != nil {
			_ = bus.Close()
			return nil, nop, err
		}
		return bus, func() { _ = bus.Close() }, nil
	case "gobot":
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			return nil, nop, err
		}
		bus := gobotadapter.New(npi, c.Int("bus"))
		return bus, func() { _ = npi.I2cBusAdaptor.Finalize() }, nil
	case "sim":
		bus := mpu6050.NewSimBus()
		bus.SeedFlat()
		return bus, nop, nil
	}
	return nil, nop, fmt.Errorf("unsupported adapter: %s", c.String("adapter"))
}

// openDevice opens the selected transport and runs the power-on sequence.
func openDevice(ctx context.Context, c *cli.Context) (*mpu6050.MPU6050, func(), error) {
	bus, cleanup, err := openBus(c)
	if err != nil {
		return nil, cleanup, err
	}
	var opts []mpu6050.Option
	if c.Bool("alt-address") {
		opts = append(opts, mpu6050.WithAddress(mpu6050.AltAddress))
	}
	dev, err := mpu6050.New(bus, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	if err = dev.Init(ctx, imu.SleepDelay()); err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return dev, cleanup, nil
}

func parseAccelRange(g int) (mpu6050.AccelRange, error) {
	switch g {
	case 2:
		return mpu6050.AccelRange2G, nil
	case 4:
		return mpu6050.AccelRange4G, nil
	case 8:
		return mpu6050.AccelRange8G, nil
	case 16:
		return mpu6050.AccelRange16G, nil
	}
	return 0, fmt.Errorf("accel range must be 2, 4, 8 or 16 g, got %d", g)
}

func parseGyroRange(dps int) (mpu6050.GyroRange, error) {
	switch dps {
	case 250:
		return mpu6050.GyroRange250, nil
	case 500:
		return mpu6050.GyroRange500, nil
	case 1000:
		return mpu6050.GyroRange1000, nil
	case 2000:
		return mpu6050.GyroRange2000, nil
	}
	return 0, fmt.Errorf("gyro range must be 250, 500, 1000 or 2000 dps, got %d", dps)
}

// applyRanges pushes the range flags to the chip when they differ from the
// defaults Init left behind.
func applyRanges(ctx context.Context, c *cli.Context, dev *mpu6050.MPU6050) error {
	if c.IsSet("accel-range") {
		r, err := parseAccelRange(c.Int("accel-range"))
		if err != nil {
			return err
		}
		if err = dev.SetAccelRange(ctx, r); err != nil {
			return err
		}
	}
	if c.IsSet("gyro-range") {
		r, err := parseGyroRange(c.Int("gyro-range"))
		if err != nil {
			return err
		}
		if err = dev.SetGyroRange(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func format3(v float64) string {
	return fmt.Sprintf("%8.3f", v)
}

func format2(v float64) string {
	return fmt.Sprintf("%6.2f", v)
}

func fail(err error) error {
	console.Error(err.Error())
	return console.Exit(1, "")
}
