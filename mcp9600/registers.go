// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp9600

import (
	"fmt"
)

// The 16 bit registers are big-endian. Read-only and read-write registers
// carry distinct types so that a write to a read-only register does not
// compile.

type wordReg uint8   // read-only 16 bit register
type wordRWReg uint8 // read-write 16 bit register

const (
	regHotJunction    wordReg = 0x00
	regJunctionsDelta wordReg = 0x01
	regColdJunction   wordReg = 0x02
	regRawADC         wordReg = 0x03
	regDeviceID       wordReg = 0x20

	// Alert 1 registers; alerts 2-4 occupy the following addresses.
	regAlertHysteresis wordRWReg = 0x0C
	regAlertLimit      wordRWReg = 0x10
)

// Byte-wide registers holding packed bit-fields.
const (
	regStatus       uint8 = 0x04
	regSensorConfig uint8 = 0x05
	regDeviceConfig uint8 = 0x06
	regAlertConfig  uint8 = 0x08 // alert 1; alerts 2-4 follow
)

// field describes a contiguous run of bits inside a byte-wide register.
// A plain field is read-only; rwField adds the write capability.
type field struct {
	reg   uint8
	shift uint8
	width uint8
}

type rwField field

func (f field) mask() uint8 {
	return (1<<f.width - 1) << f.shift
}

// Status register fields. The alert flags are produced by alertFlag.
var (
	fieldBurstComplete = rwField{regStatus, 7, 1}
	fieldTempUpdate    = rwField{regStatus, 6, 1}
	fieldInputRange    = field{regStatus, 4, 1}
)

// Thermocouple sensor configuration fields.
var (
	fieldThermocoupleType  = rwField{regSensorConfig, 4, 3}
	fieldFilterCoefficient = rwField{regSensorConfig, 0, 3}
)

// Device configuration fields.
var (
	fieldColdJunctionResolution = rwField{regDeviceConfig, 7, 1}
	fieldADCResolution          = rwField{regDeviceConfig, 5, 2}
	fieldBurstSamples           = rwField{regDeviceConfig, 2, 3}
	fieldShutdownMode           = rwField{regDeviceConfig, 0, 2}
)

// Bit positions within an alert configuration register.
const (
	alertBitEnable     uint8 = 0
	alertBitMode       uint8 = 1
	alertBitActiveHigh uint8 = 2
	alertBitRise       uint8 = 3
	alertBitColdSource uint8 = 4
	alertBitIntClear   uint8 = 7
)

// alertFlag returns the read-only status flag for alert channel ch.
func alertFlag(ch int) field {
	return field{regStatus, uint8(ch - 1), 1}
}

// alertField returns the configuration bit of alert channel ch at the
// given position.
func alertField(ch int, bit uint8) rwField {
	return rwField{regAlertConfig + uint8(ch-1), bit, 1}
}

func alertHysteresisReg(ch int) wordRWReg {
	return regAlertHysteresis + wordRWReg(ch-1)
}

func alertLimitReg(ch int) wordRWReg {
	return regAlertLimit + wordRWReg(ch-1)
}

func (d *Dev) readWord(r wordReg) (uint16, error) {
	return d.m.ReadUint16(uint8(r))
}

func (d *Dev) readWordRW(r wordRWReg) (uint16, error) {
	return d.m.ReadUint16(uint8(r))
}

func (d *Dev) writeWord(r wordRWReg, v uint16) error {
	return d.m.WriteUint16(uint8(r), v)
}

// readField extracts a bit-field from its register byte.
func (d *Dev) readField(f field) (uint8, error) {
	b, err := d.m.ReadUint8(f.reg)
	if err != nil {
		return 0, err
	}
	return (b & f.mask()) >> f.shift, nil
}

// writeField updates a bit-field with a read-modify-write so sibling
// fields in the same byte keep their value. The sequence is not atomic
// on the bus; Dev's mutex serializes it.
func (d *Dev) writeField(f rwField, v uint8) error {
	if v >= 1<<f.width {
		return fmt.Errorf("mcp9600: value %d does not fit a %d bit field", v, f.width)
	}
	b, err := d.m.ReadUint8(f.reg)
	if err != nil {
		return err
	}
	b = b&^field(f).mask() | v<<f.shift
	return d.m.WriteUint8(f.reg, b)
}

func (d *Dev) readBit(f field) (bool, error) {
	v, err := d.readField(f)
	return v != 0, err
}

func (d *Dev) writeBit(f rwField, set bool) error {
	var v uint8
	if set {
		v = 1
	}
	return d.writeField(f, v)
}
