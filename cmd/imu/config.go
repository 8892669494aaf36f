package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
	"github.com/BloodWalrus/mpu6050improved/mpu6050"
)

type deviceConfig struct {
	Address    string `yaml:"address"`
	AccelRange string `yaml:"accel_range"`
	GyroRange  string `yaml:"gyro_range"`
	Sleep      bool   `yaml:"sleep"`
	TempSensor bool   `yaml:"temp_sensor"`
}

var configCmd = cli.Command{
	Name:    "config",
	Aliases: []string{"cf"},
	Usage:   "show and change device configuration",
	Subcommands: cli.Commands{
		{
			Name:  "show",
			Usage: "dump the current configuration",
			Flags: adapterFlags(),
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
				dev, cleanup, err := openDevice(ctx, c)
				if err != nil {
					return fail(err)
				}
				defer cleanup()
				sleep, err := dev.SleepEnabled(ctx)
				if err != nil {
					return fail(err)
				}
				temp, err := dev.TempEnabled(ctx)
				if err != nil {
					return fail(err)
				}
				cfg := deviceConfig{
					Address:    fmt.Sprintf("0x%02X", dev.Address()),
					AccelRange: dev.AccelRange().String(),
					GyroRange:  dev.GyroRange().String(),
					Sleep:      sleep,
					TempSensor: temp,
				}
				out, err := yaml.Marshal(cfg)
				if err != nil {
					return fail(err)
				}
				console.Print(string(out))
				return nil
			},
		},
		{
			Name:  "range",
			Usage: "change the full-scale ranges",
			Flags: append(adapterFlags(),
				&cli.IntFlag{
					Name:  "accel",
					Usage: "accelerometer range in g",
				},
				&cli.IntFlag{
					Name:  "gyro",
					Usage: "gyroscope range in deg/s",
				},
			),
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
				dev, cleanup, err := openDevice(ctx, c)
				if err != nil {
					return fail(err)
				}
				defer cleanup()
				if c.IsSet("accel") {
					r, err := parseAccelRange(c.Int("accel"))
					if err != nil {
						return fail(err)
					}
					if err = dev.SetAccelRange(ctx, r); err != nil {
						return fail(err)
					}
					console.Infof("accel range set to %s", console.White(r.String()))
				}
				if c.IsSet("gyro") {
					r, err := parseGyroRange(c.Int("gyro"))
					if err != nil {
						return fail(err)
					}
					if err = dev.SetGyroRange(ctx, r); err != nil {
						return fail(err)
					}
					console.Infof("gyro range set to %s", console.White(r.String()))
				}
				return nil
			},
		},
		{
			Name:  "filter",
			Usage: "change the digital low-pass filter",
			Flags: append(adapterFlags(),
				&cli.UintFlag{
					Name:     "dlpf",
					Usage:    "filter setting, 0 (260Hz) through 6 (5Hz)",
					Required: true,
				},
			),
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(c.Context, c.Bool("verbose"))
				dev, cleanup, err := openDevice(ctx, c)
				if err != nil {
					return fail(err)
				}
				defer cleanup()
				if err = dev.SetDLPF(ctx, mpu6050.DLPF(c.Uint("dlpf"))); err != nil {
					return fail(err)
				}
				console.Infof("low-pass filter set to %s", console.White(c.Uint("dlpf")))
				return nil
			},
		},
	},
}
