package mpu6050

import "fmt"

// AccelRange selects the accelerometer full-scale range (ACCEL_CONFIG AFS_SEL).
type AccelRange byte

const (
	AccelRange2G AccelRange = iota
	AccelRange4G
	AccelRange8G
	AccelRange16G
)

// Sensitivity returns the LSB-per-g scale factor for the range
// (datasheet section 6.2).
func (r AccelRange) Sensitivity() float64 {
	switch r {
	case AccelRange4G:
		return 8192
	case AccelRange8G:
		return 4096
	case AccelRange16G:
		return 2048
	default:
		return 16384
	}
}

func (r AccelRange) valid() bool { return r <= AccelRange16G }

func (r AccelRange) String() string {
	switch r {
	case AccelRange2G:
		return "±2g"
	case AccelRange4G:
		return "±4g"
	case AccelRange8G:
		return "±8g"
	case AccelRange16G:
		return "±16g"
	}
	return fmt.Sprintf("AccelRange(%d)", byte(r))
}

// GyroRange selects the gyroscope full-scale range (GYRO_CONFIG FS_SEL).
type GyroRange byte

const (
	GyroRange250 GyroRange = iota
	GyroRange500
	GyroRange1000
	GyroRange2000
)

// Sensitivity returns the LSB per °/s scale factor for the range
// (datasheet section 6.1).
func (r GyroRange) Sensitivity() float64 {
	switch r {
	case GyroRange500:
		return 65.5
	case GyroRange1000:
		return 32.8
	case GyroRange2000:
		return 16.4
	default:
		return 131
	}
}

func (r GyroRange) valid() bool { return r <= GyroRange2000 }

func (r GyroRange) String() string {
	switch r {
	case GyroRange250:
		return "±250°/s"
	case GyroRange500:
		return "±500°/s"
	case GyroRange1000:
		return "±1000°/s"
	case GyroRange2000:
		return "±2000°/s"
	}
	return fmt.Sprintf("GyroRange(%d)", byte(r))
}

// AccelHPF selects the accelerometer high-pass filter corner
// (ACCEL_CONFIG ACCEL_HPF). The filter output feeds the motion detector.
type AccelHPF byte

const (
	AccelHPFReset AccelHPF = 0x00
	AccelHPF5Hz   AccelHPF = 0x01
	AccelHPF2_5Hz AccelHPF = 0x02
	AccelHPF1_2Hz AccelHPF = 0x03
	AccelHPF0_6Hz AccelHPF = 0x04
	AccelHPFHold  AccelHPF = 0x07
)

func (h AccelHPF) valid() bool { return h <= AccelHPF0_6Hz || h == AccelHPFHold }

func (h AccelHPF) String() string {
	switch h {
	case AccelHPFReset:
		return "reset"
	case AccelHPF5Hz:
		return "5Hz"
	case AccelHPF2_5Hz:
		return "2.5Hz"
	case AccelHPF1_2Hz:
		return "1.25Hz"
	case AccelHPF0_6Hz:
		return "0.63Hz"
	case AccelHPFHold:
		return "hold"
	}
	return fmt.Sprintf("AccelHPF(%d)", byte(h))
}

// DLPF selects the digital low-pass filter bandwidth shared by the
// accelerometer and gyroscope signal paths (CONFIG DLPF_CFG).
type DLPF byte

const (
	DLPF260Hz DLPF = iota
	DLPF184Hz
	DLPF94Hz
	DLPF44Hz
	DLPF21Hz
	DLPF10Hz
	DLPF5Hz
)

func (d DLPF) valid() bool { return d <= DLPF5Hz }

func (d DLPF) String() string {
	switch d {
	case DLPF260Hz:
		return "260Hz"
	case DLPF184Hz:
		return "184Hz"
	case DLPF94Hz:
		return "94Hz"
	case DLPF44Hz:
		return "44Hz"
	case DLPF21Hz:
		return "21Hz"
	case DLPF10Hz:
		return "10Hz"
	case DLPF5Hz:
		return "5Hz"
	}
	return fmt.Sprintf("DLPF(%d)", byte(d))
}

// ClockSource selects the chip clock reference (PWR_MGMT_1 CLKSEL).
type ClockSource byte

const (
	ClockInternal8MHz ClockSource = iota
	ClockPLLGyroX
	ClockPLLGyroY
	ClockPLLGyroZ
	ClockPLLExt32K
	ClockPLLExt19MHz
	_
	ClockStopped
)

// Temperature conversion constants (register map rev 4.2):
// T(°C) = raw/340 + 36.53.
const (
	tempSensitivity = 340.0
	tempOffset      = 36.53
)
