package main

import (
	"github.com/urfave/cli/v2"

	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
)

var anglesCmd = cli.Command{
	Name:    "angles",
	Aliases: []string{"an"},
	Usage:   "estimate roll and pitch from gravity",
	Flags:   adapterFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return fail(err)
		}
		defer cleanup()
		an, err := dev.Angles(ctx)
		if err != nil {
			return fail(err)
		}
		console.PInfof(console.PictoLevel, "roll:  %s deg", console.White(format2(an.Roll)))
		console.PInfof(console.PictoLevel, "pitch: %s deg", console.White(format2(an.Pitch)))
		return nil
	},
}
