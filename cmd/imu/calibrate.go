package main

import (
	"time"

	"github.com/urfave/cli/v2"

	imu "github.com/BloodWalrus/mpu6050improved"
	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
	"github.com/BloodWalrus/mpu6050improved/mpu6050"
)

var calibrateCmd = cli.Command{
	Name:    "calibrate",
	Aliases: []string{"cal"},
	Usage:   "estimate accel and gyro offsets for a flat, still device",
	Flags: append(adapterFlags(),
		&cli.IntFlag{
			Name:    "samples",
			Aliases: []string{"n"},
			Value:   200,
			Usage:   "number of samples to average",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Value: 5 * time.Millisecond,
			Usage: "time between samples",
		},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
		bus, cleanup, err := openBus(c)
		if err != nil {
			return fail(err)
		}
		defer cleanup()
		var opts []mpu6050.Option
		if c.Bool("alt-address") {
			opts = append(opts, mpu6050.WithAddress(mpu6050.AltAddress))
		}
		dev, err := mpu6050.New(bus, opts...)
		if err != nil {
			return fail(err)
		}
		if err = dev.Init(ctx, imu.SleepDelay()); err != nil {
			return fail(err)
		}

		console.Warnf("keep the device flat and still")
		n := c.Int("samples")
		var accSum, gyrSum mpu6050.Vector
		for i := 0; i < n; i++ {
			acc, err := dev.ReadAccel(ctx)
			if err != nil {
				return fail(err)
			}
			gyr, err := dev.ReadGyro(ctx)
			if err != nil {
				return fail(err)
			}
			accSum.X += acc.X
			accSum.Y += acc.Y
			accSum.Z += acc.Z
			gyrSum.X += gyr.X
			gyrSum.Y += gyr.Y
			gyrSum.Z += gyr.Z
			time.Sleep(c.Duration("interval"))
		}
		fn := float64(n)
		accMean := mpu6050.Vector{X: accSum.X / fn, Y: accSum.Y / fn, Z: accSum.Z / fn}
		if console.IsVerbose(ctx) {
			console.Infof("averaged %s samples, gravity magnitude %s g",
				console.White(n), console.White(format3(accMean.Magnitude())))
		}
		if g := accMean.Magnitude(); g < 0.8 || g > 1.2 {
			console.Warnf("averaged gravity magnitude is %s g, the device was probably moving", format3(g))
		}
		// flat and still means zero rotation and one g straight down
		accOffset := mpu6050.Vector{
			X: -accMean.X,
			Y: -accMean.Y,
			Z: 1.0 - accMean.Z,
		}
		gyrOffset := mpu6050.Vector{
			X: -gyrSum.X / fn,
			Y: -gyrSum.Y / fn,
			Z: -gyrSum.Z / fn,
		}
		console.PInfof(console.PictoCompass, "accel offset [g]:     %s %s %s",
			console.White(format3(accOffset.X)), console.White(format3(accOffset.Y)), console.White(format3(accOffset.Z)))
		console.PInfof(console.PictoCompass, "gyro offset [deg/s]:  %s %s %s",
			console.White(format3(gyrOffset.X)), console.White(format3(gyrOffset.Y)), console.White(format3(gyrOffset.Z)))

		answer, err := console.YesOrNo("take a verification reading with offsets applied?")
		if err != nil || answer != console.Yes {
			return nil
		}
		verify, err := mpu6050.New(bus,
			append(opts, mpu6050.WithAccelOffset(accOffset), mpu6050.WithGyroOffset(gyrOffset))...)
		if err != nil {
			return fail(err)
		}
		acc, err := verify.ReadAccel(ctx)
		if err != nil {
			return fail(err)
		}
		gyr, err := verify.ReadGyro(ctx)
		if err != nil {
			return fail(err)
		}
		console.PInfof(console.PictoCompass, "corrected accel:      %s %s %s",
			console.White(format3(acc.X)), console.White(format3(acc.Y)), console.White(format3(acc.Z)))
		console.PInfof(console.PictoCompass, "corrected gyro:       %s %s %s",
			console.White(format3(gyr.X)), console.White(format3(gyr.Y)), console.White(format3(gyr.Z)))
		return nil
	},
}
