package mpu6050

import (
	"context"
	"sync"
)

// SimBus is an in-memory register-level stand-in for the chip behind an I2C
// transport. It understands the pointer-write/burst-read transaction shape
// the driver uses, emulates the self-clearing DEVICE_RESET bit, and lets
// callers inject transport failures and read-only registers. It backs the
// package tests and the CLI's hardware-free adapter.
type SimBus struct {
	mx      sync.Mutex
	regs    [256]byte
	pointer byte

	// WriteErr and ReadErr, when set, fail every subsequent transaction.
	WriteErr error
	ReadErr  error
	// ReadOnly registers silently drop writes, the way a chip ignores a
	// rejected configuration value.
	ReadOnly map[byte]bool
	// ChipID overrides the WHO_AM_I answer; zero means the genuine part.
	ChipID byte

	Writes int
	Reads  int
}

// NewSimBus returns a simulator in the chip's power-on state: asleep, all
// configuration at defaults, WHO_AM_I answering.
func NewSimBus() *SimBus {
	b := &SimBus{ReadOnly: map[byte]bool{}}
	b.powerOn()
	return b
}

func (b *SimBus) powerOn() {
	var fresh [256]byte
	// the sample registers survive a reset: the chip resumes measuring the
	// same simulated world as soon as it is back up
	copy(fresh[regAccelXOutH:regGyroXOutH+6], b.regs[regAccelXOutH:regGyroXOutH+6])
	b.regs = fresh
	b.regs[regWhoAmI] = DefaultAddress
	if b.ChipID != 0 {
		b.regs[regWhoAmI] = b.ChipID
	}
	b.regs[regPwrMgmt1] = 0x40 // sleep set
}

func (b *SimBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.Writes++
	if b.WriteErr != nil {
		return b.WriteErr
	}
	if len(buffer) == 0 {
		return nil
	}
	b.pointer = buffer[0]
	for i, v := range buffer[1:] {
		reg := buffer[0] + byte(i)
		if b.ReadOnly[reg] {
			continue
		}
		if reg == regPwrMgmt1 && fieldDeviceReset.get(v) != 0 {
			b.powerOn()
			continue
		}
		b.regs[reg] = v
	}
	return nil
}

func (b *SimBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.Reads++
	if b.ReadErr != nil {
		return b.ReadErr
	}
	for i := range buffer {
		buffer[i] = b.regs[b.pointer+byte(i)]
	}
	return nil
}

func (b *SimBus) Release(ctx context.Context) error {
	return nil
}

// Set stores a register value directly, bypassing the transaction path.
func (b *SimBus) Set(reg, value byte) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.regs[reg] = value
}

// Get returns a register value directly, bypassing the transaction path.
func (b *SimBus) Get(reg byte) byte {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.regs[reg]
}

// SeedFlat loads the sample registers with a device lying flat and still:
// one g on the Z axis, no rotation, temperature registers at 25 degrees.
func (b *SimBus) SeedFlat() {
	b.SetWord(regAccelXOutH, 0)
	b.SetWord(regAccelXOutH+2, 0)
	b.SetWord(regAccelXOutH+4, 16384)
	b.SetWord(regGyroXOutH, 0)
	b.SetWord(regGyroXOutH+2, 0)
	b.SetWord(regGyroXOutH+4, 0)
	roomTemp := (25.0 - tempOffset) * tempSensitivity
	b.SetWord(regTempOutH, int16(roomTemp))
}

// SetWord stores a big-endian 16-bit sample in two consecutive registers.
func (b *SimBus) SetWord(reg byte, value int16) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.regs[reg] = byte(uint16(value) >> 8)
	b.regs[reg+1] = byte(uint16(value))
}
