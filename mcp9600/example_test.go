// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp9600_test

import (
	"fmt"
	"log"

	"github.com/thermosense/devices/mcp9600"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	// Connect a J-type probe with moderate filtering.
	dev, err := mcp9600.NewI2C(bus, mcp9600.DefaultAddress, &mcp9600.Opts{
		Type:   mcp9600.TypeJ,
		Filter: 4,
	})
	if err != nil {
		log.Fatal(err)
	}
	// Take a reading.
	env := physic.Env{}
	if err := dev.Sense(&env); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("hot junction: %s\n", env.Temperature)

	cold, err := dev.ColdJunctionTemperature()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("cold junction: %s\n", cold)
}
