package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/urfave/cli/v2"

	"github.com/BloodWalrus/mpu6050improved/cmd/imu/console"
	"github.com/BloodWalrus/mpu6050improved/mpu6050"
)

type sample struct {
	Time  time.Time      `json:"time"`
	Accel mpu6050.Vector `json:"accel"`
	Gyro  mpu6050.Vector `json:"gyro"`
	Temp  float64        `json:"temp"`
	Roll  float64        `json:"roll"`
	Pitch float64        `json:"pitch"`
}

var monitorCmd = cli.Command{
	Name:    "monitor",
	Aliases: []string{"mon"},
	Usage:   "stream samples to the console or an mqtt broker",
	Flags: append(adapterFlags(),
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Value:   time.Second,
			Usage:   "time between samples",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Value:   0,
			Usage:   "number of samples to take, 0 runs until interrupted",
		},
		&cli.StringFlag{
			Name:  "broker",
			Usage: "mqtt broker address, e.g. tcp://localhost:1883; empty prints to the console",
		},
		&cli.StringFlag{
			Name:  "topic",
			Value: "imu/sample",
			Usage: "mqtt topic to publish samples on",
		},
		&cli.StringFlag{
			Name:  "client-id",
			Value: "imu-monitor",
			Usage: "mqtt client identifier",
		},
	),
	Action: func(c *cli.Context) error {
		ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = console.SetVerbose(ctx, c.Bool("verbose"))

		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return fail(err)
		}
		defer cleanup()

		var client mqtt.Client
		if broker := c.String("broker"); broker != "" {
			opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(c.String("client-id"))
			client = mqtt.NewClient(opts)
			if token := client.Connect(); token.Wait() && token.Error() != nil {
				return fail(fmt.Errorf("mqtt connect: %w", token.Error()))
			}
			defer client.Disconnect(250)
			slog.Info("publishing samples", "broker", broker, "topic", c.String("topic"))
		}

		ticker := time.NewTicker(c.Duration("interval"))
		defer ticker.Stop()
		taken := 0
		for {
			s, err := takeSample(ctx, dev)
			if err != nil {
				return fail(err)
			}
			if client != nil {
				payload, err := json.Marshal(s)
				if err != nil {
					return fail(err)
				}
				if token := client.Publish(c.String("topic"), 0, false, payload); token.Wait() && token.Error() != nil {
					slog.Error("publish failed", "error", token.Error())
				}
			} else {
				console.Printf("%s accel %s %s %s  gyro %s %s %s  temp %s  roll %s pitch %s\n",
					s.Time.Format(time.TimeOnly),
					format3(s.Accel.X), format3(s.Accel.Y), format3(s.Accel.Z),
					format3(s.Gyro.X), format3(s.Gyro.Y), format3(s.Gyro.Z),
					format2(s.Temp), format2(s.Roll), format2(s.Pitch))
			}
			taken++
			if n := c.Int("count"); n > 0 && taken >= n {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func takeSample(ctx context.Context, dev *mpu6050.MPU6050) (*sample, error) {
	acc, err := dev.ReadAccel(ctx)
	if err != nil {
		return nil, err
	}
	gyr, err := dev.ReadGyro(ctx)
	if err != nil {
		return nil, err
	}
	tmp, err := dev.ReadTemp(ctx)
	if err != nil {
		return nil, err
	}
	an := mpu6050.AnglesFrom(acc)
	return &sample{
		Time:  time.Now(),
		Accel: acc,
		Gyro:  gyr,
		Temp:  tmp,
		Roll:  an.Roll,
		Pitch: an.Pitch,
	}, nil
}
