package main

import (
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
)

var motionCmd = cli.Command{
	Name:    "motion",
	Aliases: []string{"mo"},
	Usage:   "hardware motion detection",
	Subcommands: cli.Commands{
		{
			Name:  "init",
			Usage: "arm the motion detection engine",
			Flags: append(adapterFlags(),
				&cli.UintFlag{
					Name:    "threshold",
					Aliases: []string{"t"},
					Value:   8,
					Usage:   "detection threshold in 2 mg steps",
				},
				&cli.UintFlag{
					Name:  "duration",
					Value: 1,
					Usage: "time above threshold in ms before the interrupt fires",
				},
			),
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
				dev, cleanup, err := openDevice(ctx, c)
				if err != nil {
					return fail(err)
				}
				defer cleanup()
				err = dev.EnableMotionDetection(ctx, byte(c.Uint("threshold")), byte(c.Uint("duration")))
				if err != nil {
					return fail(err)
				}
				console.PInfof(console.PictoMotion, "motion detection %s, threshold %s duration %s",
					console.Green("armed"), console.White(c.Uint("threshold")), console.White(c.Uint("duration")))
				return nil
			},
		},
		{
			Name:  "check",
			Usage: "check and decode the motion status register",
			Flags: adapterFlags(),
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
				dev, cleanup, err := openDevice(ctx, c)
				if err != nil {
					return fail(err)
				}
				defer cleanup()
				fired, err := dev.MotionDetected(ctx)
				if err != nil {
					return fail(err)
				}
				status, err := dev.Motion(ctx)
				if err != nil {
					return fail(err)
				}
				if !fired && !status.Any {
					console.Print("no motion")
					return nil
				}
				out, err := yaml.Marshal(status)
				if err != nil {
					return fail(err)
				}
				console.PInfof(console.PictoMotion, "motion detected")
				console.Print(string(out))
				return nil
			},
		},
		{
			Name:  "threshold",
			Usage: "show or change the detection threshold",
			Flags: append(adapterFlags(),
				&cli.UintFlag{
					Name:    "set",
					Aliases: []string{"s"},
					Usage:   "new threshold in 2 mg steps",
				},
			),
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
				dev, cleanup, err := openDevice(ctx, c)
				if err != nil {
					return fail(err)
				}
				defer cleanup()
				if c.IsSet("set") {
					if err = dev.SetMotionThreshold(ctx, byte(c.Uint("set"))); err != nil {
						return fail(err)
					}
				}
				thr, err := dev.MotionThreshold(ctx)
				if err != nil {
					return fail(err)
				}
				console.Printf("threshold: %s\n", console.White(thr))
				return nil
			},
		},
	},
}
