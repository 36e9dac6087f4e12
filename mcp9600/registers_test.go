// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp9600

import (
	"testing"
)

func TestFieldMask(t *testing.T) {
	tests := []struct {
		name string
		f    field
		want uint8
	}{
		{"thermocouple type", field(fieldThermocoupleType), 0x70},
		{"filter coefficient", field(fieldFilterCoefficient), 0x07},
		{"cold junction resolution", field(fieldColdJunctionResolution), 0x80},
		{"adc resolution", field(fieldADCResolution), 0x60},
		{"burst samples", field(fieldBurstSamples), 0x1C},
		{"shutdown mode", field(fieldShutdownMode), 0x03},
		{"burst complete", field(fieldBurstComplete), 0x80},
		{"temperature update", field(fieldTempUpdate), 0x40},
		{"input range", fieldInputRange, 0x10},
	}
	for _, tt := range tests {
		if got := tt.f.mask(); got != tt.want {
			t.Errorf("%s: got %#02x, want %#02x", tt.name, got, tt.want)
		}
	}
}

// TestAlertChannelAddresses verifies the per-channel register layout:
// one configuration byte per channel from 0x08 and one hysteresis and
// limit word per channel from 0x0C and 0x10.
func TestAlertChannelAddresses(t *testing.T) {
	for ch := 1; ch <= 4; ch++ {
		if got := alertField(ch, alertBitEnable).reg; got != 0x08+uint8(ch-1) {
			t.Errorf("config %d: got %#02x", ch, got)
		}
		if got := uint8(alertHysteresisReg(ch)); got != 0x0C+uint8(ch-1) {
			t.Errorf("hysteresis %d: got %#02x", ch, got)
		}
		if got := uint8(alertLimitReg(ch)); got != 0x10+uint8(ch-1) {
			t.Errorf("limit %d: got %#02x", ch, got)
		}
		flag := alertFlag(ch)
		if flag.reg != regStatus || flag.shift != uint8(ch-1) || flag.width != 1 {
			t.Errorf("flag %d: got %+v", ch, flag)
		}
	}
}
