// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp9600

import (
	"errors"
	"fmt"
)

// DeviceNotFoundError is returned by NewI2C when the identity register
// does not identify an MCP9600, usually a wrong address or wiring.
type DeviceNotFoundError struct {
	// Addr is the bus address that was probed.
	Addr uint16
	// ID is the device ID byte that was read back.
	ID uint8
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("mcp9600: no MCP9600 at address %#02x: device id %#02x, want %#02x", e.Addr, e.ID, deviceID)
}

// ErrInvalidChannel is returned by the alert accessors when the channel
// number is outside 1-4.
var ErrInvalidChannel = errors.New("mcp9600: alert channel must be 1 to 4")
