// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// mcp9600 provides a package for interfacing a Microchip MCP9600
// thermocouple EMF to temperature converter over I²C. The MCP9600
// integrates the thermocouple amplifier, a cold-junction compensation
// sensor and the conversion math for eight standard thermocouple types.
//
// Resolution: 0.0625°C per count on the hot and cold junctions.
//
// The four alert outputs of the chip can be configured through the
// per-channel alert accessors. To react to an alert, wire the matching
// ALERTn pin to a GPIO with edge detection, or poll AlertStatus.
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://ww1.microchip.com/downloads/en/DeviceDoc/MCP960X-Data-Sheet-20005426.pdf
package mcp9600
