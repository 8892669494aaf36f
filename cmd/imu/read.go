package main

import (
	"github.com/urfave/cli/v2"

	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "read a full accel, gyro and temperature sample",
	Flags: append(adapterFlags(),
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print unscaled register values",
		},
		&cli.IntFlag{
			Name:  "accel-range",
			Value: 2,
			Usage: "accelerometer full-scale range in g",
		},
		&cli.IntFlag{
			Name:  "gyro-range",
			Value: 250,
			Usage: "gyroscope full-scale range in deg/s",
		},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return fail(err)
		}
		defer cleanup()
		if err = applyRanges(ctx, c, dev); err != nil {
			return fail(err)
		}
		if c.Bool("raw") {
			acc, err := dev.ReadAccelRaw(ctx)
			if err != nil {
				return fail(err)
			}
			gyr, err := dev.ReadGyroRaw(ctx)
			if err != nil {
				return fail(err)
			}
			tmp, err := dev.ReadTempRaw(ctx)
			if err != nil {
				return fail(err)
			}
			console.Printf("accel: %s %s %s\n", console.White(acc.X), console.White(acc.Y), console.White(acc.Z))
			console.Printf("gyro:  %s %s %s\n", console.White(gyr.X), console.White(gyr.Y), console.White(gyr.Z))
			console.Printf("temp:  %s\n", console.White(tmp))
			return nil
		}
		acc, err := dev.ReadAccel(ctx)
		if err != nil {
			return fail(err)
		}
		gyr, err := dev.ReadGyro(ctx)
		if err != nil {
			return fail(err)
		}
		tmp, err := dev.ReadTemp(ctx)
		if err != nil {
			return fail(err)
		}
		console.PInfof(console.PictoCompass, "accel [g]:     %s %s %s",
			console.White(format3(acc.X)), console.White(format3(acc.Y)), console.White(format3(acc.Z)))
		console.PInfof(console.PictoCompass, "gyro [deg/s]:  %s %s %s",
			console.White(format3(gyr.X)), console.White(format3(gyr.Y)), console.White(format3(gyr.Z)))
		console.PInfof(console.PictoThermometer, "temp [degC]:   %s", console.White(format2(tmp)))
		return nil
	},
}

var tempCmd = cli.Command{
	Name:  "temp",
	Usage: "read the die temperature",
	Flags: adapterFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return fail(err)
		}
		defer cleanup()
		tmp, err := dev.ReadTemp(ctx)
		if err != nil {
			return fail(err)
		}
		console.PInfof(console.PictoThermometer, "temperature: %s degC", console.White(format2(tmp)))
		return nil
	},
}
