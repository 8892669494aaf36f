package main

import (
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/BloodWalrus/mpu6050improved/adapter"
	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
)

var adapterCmd = cli.Command{
	Name:    "adapter",
	Aliases: []string{"ad"},
	Usage:   "mcp2221 usb adapter maintenance",
	Subcommands: cli.Commands{
		{
			Name:  "status",
			Usage: "query the adapter's i2c engine state",
			Action: func(c *cli.Context) error {
				a := adapter.NewMCP2221()
				if err := a.Init(); err != nil {
					return fail(err)
				}
				defer func() { _ = a.Release(c.Context) }()
				status, err := a.Status(c.Context)
				if err != nil {
					return fail(err)
				}
				out, err := yaml.Marshal(status)
				if err != nil {
					return fail(err)
				}
				console.Print(string(out))
				return nil
			},
		},
		{
			Name:  "release",
			Usage: "cancel a stuck i2c transfer and free the bus",
			Action: func(c *cli.Context) error {
				a := adapter.NewMCP2221()
				if err := a.Init(); err != nil {
					return fail(err)
				}
				defer func() { _ = a.Release(c.Context) }()
				status, err := a.ReleaseBus(c.Context)
				if err != nil {
					return fail(err)
				}
				out, err := yaml.Marshal(status)
				if err != nil {
					return fail(err)
				}
				console.Infof("bus %s", console.Green("released"))
				console.Print(string(out))
				return nil
			},
		},
	},
}
