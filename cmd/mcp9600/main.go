// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// mcp9600 reads the hot and cold junction temperatures from an MCP9600
// thermocouple amplifier.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/thermosense/devices/mcp9600"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var (
	busName = flag.String("bus", "", "I²C bus name, empty for the first available")
	addr    = flag.Uint("addr", uint(mcp9600.DefaultAddress), "I²C device address")
	tcType  = flag.String("type", "K", "thermocouple type (K, J, T, N, S, E, B or R)")
	delta   = flag.Bool("delta", false, "also print the junctions temperature delta")
)

func parseType(s string) (mcp9600.ThermocoupleType, error) {
	i := strings.Index("KJTNSEBR", strings.ToUpper(s))
	if len(s) != 1 || i < 0 {
		return 0, fmt.Errorf("unknown thermocouple type %q", s)
	}
	return mcp9600.ThermocoupleType(i), nil
}

func mainImpl() error {
	flag.Parse()
	t, err := parseType(*tcType)
	if err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer bus.Close()

	dev, err := mcp9600.NewI2C(bus, uint16(*addr), &mcp9600.Opts{Type: t})
	if err != nil {
		return err
	}
	var e physic.Env
	if err := dev.Sense(&e); err != nil {
		return err
	}
	fmt.Printf("hot junction:  %s\n", e.Temperature)
	cold, err := dev.ColdJunctionTemperature()
	if err != nil {
		return err
	}
	fmt.Printf("cold junction: %s\n", cold)
	if *delta {
		dt, err := dev.JunctionsTemperatureDelta()
		if err != nil {
			return err
		}
		fmt.Printf("delta:         %.4f\n", dt)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "mcp9600: %v\n", err)
		os.Exit(1)
	}
}
