package mpu6050

// Register map of the MPU-6050 (InvenSense document RM-MPU-6000A-00, rev 4.2).
// This is the single source of truth for addresses and bit layouts; nothing
// else in the package spells out a register address or a shift.
const (
	regSampleRateDiv   byte = 0x19
	regConfig          byte = 0x1A
	regGyroConfig      byte = 0x1B
	regAccelConfig     byte = 0x1C
	regMotionThreshold byte = 0x1F
	regMotionDuration  byte = 0x20
	regIntPinCfg       byte = 0x37
	regIntEnable       byte = 0x38
	regIntStatus       byte = 0x3A
	regAccelXOutH      byte = 0x3B
	regTempOutH        byte = 0x41
	regGyroXOutH       byte = 0x43
	regMotionStatus    byte = 0x61
	regSignalPathReset byte = 0x68
	regMotionCtrl      byte = 0x69
	regPwrMgmt1        byte = 0x6B
	regPwrMgmt2        byte = 0x6C
	regWhoAmI          byte = 0x75
)

// bitField describes a contiguous run of bits inside a one-byte register.
// start is the highest bit of the run, MSB first, matching the numbering used
// in the register map document (e.g. FS_SEL occupies bits 4:3 -> start 4,
// length 2).
type bitField struct {
	start  uint8
	length uint8
}

func (f bitField) mask() byte {
	return byte((1<<f.length)-1) << (f.start - f.length + 1)
}

// put replaces the field's bits inside reg with value, preserving all other
// bits. Values wider than the field are truncated.
func (f bitField) put(reg, value byte) byte {
	shifted := value << (f.start - f.length + 1)
	return reg&^f.mask() | shifted&f.mask()
}

// get extracts the field's bits from reg, shifted down to bit zero.
func (f bitField) get(reg byte) byte {
	return (reg & f.mask()) >> (f.start - f.length + 1)
}

// single-bit helpers
func bit(n uint8) bitField { return bitField{start: n, length: 1} }

// PWR_MGMT_1 (0x6B)
var (
	fieldDeviceReset = bit(7)
	fieldSleep       = bit(6)
	fieldCycle       = bit(5)
	fieldTempDisable = bit(3)
	fieldClockSel    = bitField{start: 2, length: 3}
)

// GYRO_CONFIG (0x1B)
var (
	fieldGyroXSelfTest = bit(7)
	fieldGyroYSelfTest = bit(6)
	fieldGyroZSelfTest = bit(5)
	fieldGyroFS        = bitField{start: 4, length: 2}
)

// ACCEL_CONFIG (0x1C)
var (
	fieldAccelXSelfTest = bit(7)
	fieldAccelYSelfTest = bit(6)
	fieldAccelZSelfTest = bit(5)
	fieldAccelFS        = bitField{start: 4, length: 2}
	fieldAccelHPF       = bitField{start: 2, length: 3}
)

// CONFIG (0x1A)
var fieldDLPF = bitField{start: 2, length: 3}

// INT_ENABLE (0x38) / INT_STATUS (0x3A)
var (
	fieldMotionIntEnable = bit(6)
	fieldMotionInt       = bit(6)
)

// MOT_DETECT_STATUS (0x61) axis flags
const (
	motionXNeg byte = 1 << 7
	motionXPos byte = 1 << 6
	motionYNeg byte = 1 << 5
	motionYPos byte = 1 << 4
	motionZNeg byte = 1 << 3
	motionZPos byte = 1 << 2
)

// DefaultAddress is the 7-bit I2C address with AD0 tied low. Pulling AD0 high
// selects AltAddress.
const (
	DefaultAddress byte = 0x68
	AltAddress     byte = 0x69
)
