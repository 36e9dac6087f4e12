// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp9600

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/mmr"
	"periph.io/x/conn/v3/physic"
)

// DefaultAddress is the address of parts strapped to the factory default.
// The ADDR pin allows 0x60-0x67.
const DefaultAddress uint16 = 0x67

// Value of the device ID byte in the identity register.
const deviceID uint8 = 0x40

// One temperature count is 0.0625 degrees Celsius.
const degreesResolution physic.Temperature = 62_500 * physic.MicroKelvin

// ThermocoupleType selects the probe type used for the EMF conversion.
type ThermocoupleType uint8

const (
	TypeK ThermocoupleType = iota
	TypeJ
	TypeT
	TypeN
	TypeS
	TypeE
	TypeB
	TypeR
)

func (t ThermocoupleType) String() string {
	if t > TypeR {
		return fmt.Sprintf("ThermocoupleType(%d)", uint8(t))
	}
	return string("KJTNSEBR"[t]) + "-type"
}

// FilterCoefficient sets the strength of the low-pass filter applied to
// successive conversions, FilterOff (none) to FilterMax.
type FilterCoefficient uint8

const (
	FilterOff FilterCoefficient = 0
	FilterMax FilterCoefficient = 7
)

// ADCResolution selects the conversion bit depth. Lower resolutions
// convert faster.
type ADCResolution uint8

const (
	ADC18Bit ADCResolution = iota
	ADC16Bit
	ADC14Bit
	ADC12Bit
)

// BurstSamples is the number of conversions averaged per burst in burst
// mode.
type BurstSamples uint8

const (
	Burst1 BurstSamples = iota
	Burst2
	Burst4
	Burst8
	Burst16
	Burst32
	Burst64
	Burst128
)

// ShutdownMode selects the operating mode of the chip.
type ShutdownMode uint8

const (
	// ModeNormal converts continuously.
	ModeNormal ShutdownMode = iota
	// ModeShutdown stops conversions; registers stay accessible.
	ModeShutdown
	// ModeBurst averages BurstSamples conversions, raises the burst
	// complete flag, then idles.
	ModeBurst
)

func (m ShutdownMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeShutdown:
		return "shutdown"
	case ModeBurst:
		return "burst"
	}
	return fmt.Sprintf("ShutdownMode(%d)", uint8(m))
}

// ColdJunctionResolution selects the sensing resolution of the
// cold-junction compensation sensor.
type ColdJunctionResolution uint8

const (
	// 0.0625°C per count.
	ColdJunctionHighRes ColdJunctionResolution = iota
	// 0.25°C per count, faster conversions.
	ColdJunctionLowRes
)

// AlertMode selects comparator or interrupt behavior for an alert output.
type AlertMode uint8

const (
	// AlertComparator deasserts the output as soon as the temperature
	// crosses back past the limit minus hysteresis.
	AlertComparator AlertMode = iota
	// AlertInterrupt latches the output until ClearAlertInterrupt.
	AlertInterrupt
)

// AlertSource selects which junction an alert channel monitors.
type AlertSource uint8

const (
	SourceHotJunction AlertSource = iota
	SourceColdJunction
)

// Opts holds the configuration applied to the device at construction.
// The zero value matches the power-on defaults of the chip: K-type,
// filter off, 18 bit conversions, single sample, normal mode.
type Opts struct {
	Type         ThermocoupleType
	Filter       FilterCoefficient
	Resolution   ADCResolution
	Samples      BurstSamples
	Mode         ShutdownMode
	ColdJunction ColdJunctionResolution
}

// DefaultOpts is the configuration used when NewI2C is given nil options.
var DefaultOpts = Opts{}

// Dev represents an MCP9600 on an I²C bus.
type Dev struct {
	c   *i2c.Dev
	m   mmr.Dev8
	rev uint8

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewI2C returns a handle to an MCP9600 on the given bus. addr is the
// 7 bit device address, normally DefaultAddress. If opts is nil the
// power-on defaults are kept.
//
// The identity register is read first; a part that does not identify as
// an MCP9600 fails with *DeviceNotFoundError.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	c := &i2c.Dev{Bus: b, Addr: addr}
	d := &Dev{c: c, m: mmr.Dev8{Conn: c, Order: binary.BigEndian}}
	idrev, err := d.readWord(regDeviceID)
	if err != nil {
		return nil, err
	}
	if id := uint8(idrev >> 8); id != deviceID {
		return nil, &DeviceNotFoundError{Addr: addr, ID: id}
	}
	d.rev = uint8(idrev)
	if err := d.configure(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// configure composes the packed configuration registers and writes each
// one as a single byte, so that sibling bit-fields land on the chip in
// one bus transaction.
func (d *Dev) configure(opts *Opts) error {
	if err := checkType(opts.Type); err != nil {
		return err
	}
	if err := checkFilter(opts.Filter); err != nil {
		return err
	}
	if err := checkResolution(opts.Resolution); err != nil {
		return err
	}
	if err := checkSamples(opts.Samples); err != nil {
		return err
	}
	if err := checkMode(opts.Mode); err != nil {
		return err
	}
	if err := checkColdJunction(opts.ColdJunction); err != nil {
		return err
	}
	sensor := uint8(opts.Type)<<4 | uint8(opts.Filter)
	if err := d.m.WriteUint8(regSensorConfig, sensor); err != nil {
		return err
	}
	device := uint8(opts.ColdJunction)<<7 | uint8(opts.Resolution)<<5 |
		uint8(opts.Samples)<<2 | uint8(opts.Mode)
	return d.m.WriteUint8(regDeviceConfig, device)
}

// Revision returns the silicon revision byte read at construction.
func (d *Dev) Revision() uint8 {
	return d.rev
}

func (d *Dev) temperature(r wordReg) (physic.Temperature, error) {
	raw, err := d.readWord(r)
	if err != nil {
		return 0, err
	}
	return physic.ZeroCelsius + physic.Temperature(int16(raw))*degreesResolution, nil
}

// Temperature returns the hot junction (thermocouple tip) temperature.
func (d *Dev) Temperature() (physic.Temperature, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.temperature(regHotJunction)
}

// ColdJunctionTemperature returns the temperature of the cold-junction
// compensation sensor at the chip's terminals.
func (d *Dev) ColdJunctionTemperature() (physic.Temperature, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.temperature(regColdJunction)
}

// JunctionsTemperatureDelta returns the difference between the hot and
// cold junction temperatures in degrees Celsius.
//
// When the hot junction reads negative, the raw delta count carries a
// 4096 offset. Per the vendor's correction, the offset is subtracted
// from the raw count and the result is returned without applying the
// 0.0625 per-count scale.
func (d *Dev) JunctionsTemperatureDelta() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	hot, err := d.temperature(regHotJunction)
	if err != nil {
		return 0, err
	}
	raw, err := d.readWord(regJunctionsDelta)
	if err != nil {
		return 0, err
	}
	if hot >= physic.ZeroCelsius {
		return float64(raw) * 0.0625, nil
	}
	return float64(raw) - 4096, nil
}

// RawADC returns the uncorrected conversion data of the thermocouple ADC.
func (d *Dev) RawADC() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readWord(regRawADC)
}

// BurstComplete reports whether a burst of conversions has finished.
func (d *Dev) BurstComplete() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readBit(field(fieldBurstComplete))
}

// SetBurstComplete writes the burst complete flag. Write false to clear
// the flag after servicing a completed burst.
func (d *Dev) SetBurstComplete(set bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeBit(fieldBurstComplete, set)
}

// TemperatureUpdate reports whether a new conversion has been posted to
// the temperature registers since the flag was last cleared.
func (d *Dev) TemperatureUpdate() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readBit(field(fieldTempUpdate))
}

// SetTemperatureUpdate writes the temperature update flag. Write false
// to rearm it.
func (d *Dev) SetTemperatureUpdate(set bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeBit(fieldTempUpdate, set)
}

// InputRangeExceeded reports whether the EMF input is outside the range
// the ADC can convert.
func (d *Dev) InputRangeExceeded() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readBit(fieldInputRange)
}

// AlertStatus reports whether alert channel ch (1-4) is asserted.
func (d *Dev) AlertStatus(ch int) (bool, error) {
	if err := checkChannel(ch); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readBit(alertFlag(ch))
}

// ThermocoupleType returns the configured probe type.
func (d *Dev) ThermocoupleType() (ThermocoupleType, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readField(field(fieldThermocoupleType))
	return ThermocoupleType(v), err
}

// SetThermocoupleType selects the probe type used for the EMF conversion.
func (d *Dev) SetThermocoupleType(t ThermocoupleType) error {
	if err := checkType(t); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(fieldThermocoupleType, uint8(t))
}

// FilterCoefficient returns the configured filter strength.
func (d *Dev) FilterCoefficient() (FilterCoefficient, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readField(field(fieldFilterCoefficient))
	return FilterCoefficient(v), err
}

// SetFilterCoefficient sets the low-pass filter strength, FilterOff to
// FilterMax.
func (d *Dev) SetFilterCoefficient(fc FilterCoefficient) error {
	if err := checkFilter(fc); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(fieldFilterCoefficient, uint8(fc))
}

// ADCResolution returns the configured conversion bit depth.
func (d *Dev) ADCResolution() (ADCResolution, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readField(field(fieldADCResolution))
	return ADCResolution(v), err
}

// SetADCResolution sets the conversion bit depth.
func (d *Dev) SetADCResolution(r ADCResolution) error {
	if err := checkResolution(r); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(fieldADCResolution, uint8(r))
}

// BurstSamples returns the configured burst sample count.
func (d *Dev) BurstSamples() (BurstSamples, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readField(field(fieldBurstSamples))
	return BurstSamples(v), err
}

// SetBurstSamples sets the number of conversions averaged per burst.
func (d *Dev) SetBurstSamples(s BurstSamples) error {
	if err := checkSamples(s); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(fieldBurstSamples, uint8(s))
}

// ShutdownMode returns the current operating mode.
func (d *Dev) ShutdownMode() (ShutdownMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readField(field(fieldShutdownMode))
	return ShutdownMode(v), err
}

// SetShutdownMode sets the operating mode. Entering ModeBurst starts a
// burst.
func (d *Dev) SetShutdownMode(m ShutdownMode) error {
	if err := checkMode(m); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(fieldShutdownMode, uint8(m))
}

// ColdJunctionResolution returns the cold-junction sensing resolution.
func (d *Dev) ColdJunctionResolution() (ColdJunctionResolution, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readField(field(fieldColdJunctionResolution))
	return ColdJunctionResolution(v), err
}

// SetColdJunctionResolution sets the cold-junction sensing resolution.
func (d *Dev) SetColdJunctionResolution(r ColdJunctionResolution) error {
	if err := checkColdJunction(r); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(fieldColdJunctionResolution, uint8(r))
}

// AlertEnabled reports whether alert output ch (1-4) is enabled.
func (d *Dev) AlertEnabled(ch int) (bool, error) {
	return d.alertBit(ch, alertBitEnable)
}

// SetAlertEnabled enables or disables alert output ch (1-4).
func (d *Dev) SetAlertEnabled(ch int, enable bool) error {
	return d.setAlertBit(ch, alertBitEnable, enable)
}

// AlertMode returns the comparator/interrupt setting of channel ch.
func (d *Dev) AlertMode(ch int) (AlertMode, error) {
	set, err := d.alertBit(ch, alertBitMode)
	if set {
		return AlertInterrupt, err
	}
	return AlertComparator, err
}

// SetAlertMode selects comparator or interrupt behavior for channel ch.
func (d *Dev) SetAlertMode(ch int, m AlertMode) error {
	if m > AlertInterrupt {
		return fmt.Errorf("mcp9600: invalid alert mode %d", m)
	}
	return d.setAlertBit(ch, alertBitMode, m == AlertInterrupt)
}

// AlertActiveHigh reports whether the output of channel ch drives high
// when asserted.
func (d *Dev) AlertActiveHigh(ch int) (bool, error) {
	return d.alertBit(ch, alertBitActiveHigh)
}

// SetAlertActiveHigh selects the active level of the alert output.
func (d *Dev) SetAlertActiveHigh(ch int, high bool) error {
	return d.setAlertBit(ch, alertBitActiveHigh, high)
}

// AlertOnRise reports whether channel ch alerts on rising temperature
// crossing the limit; false means falling.
func (d *Dev) AlertOnRise(ch int) (bool, error) {
	return d.alertBit(ch, alertBitRise)
}

// SetAlertOnRise selects the temperature direction that asserts the
// alert.
func (d *Dev) SetAlertOnRise(ch int, rise bool) error {
	return d.setAlertBit(ch, alertBitRise, rise)
}

// AlertSource returns the junction monitored by channel ch.
func (d *Dev) AlertSource(ch int) (AlertSource, error) {
	set, err := d.alertBit(ch, alertBitColdSource)
	if set {
		return SourceColdJunction, err
	}
	return SourceHotJunction, err
}

// SetAlertSource selects the junction monitored by channel ch.
func (d *Dev) SetAlertSource(ch int, src AlertSource) error {
	if src > SourceColdJunction {
		return fmt.Errorf("mcp9600: invalid alert source %d", src)
	}
	return d.setAlertBit(ch, alertBitColdSource, src == SourceColdJunction)
}

// ClearAlertInterrupt clears a latched interrupt on channel ch. Only
// meaningful in AlertInterrupt mode.
func (d *Dev) ClearAlertInterrupt(ch int) error {
	return d.setAlertBit(ch, alertBitIntClear, true)
}

// AlertHysteresis returns the raw hysteresis word of channel ch.
func (d *Dev) AlertHysteresis(ch int) (uint16, error) {
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readWordRW(alertHysteresisReg(ch))
}

// SetAlertHysteresis sets the raw hysteresis word of channel ch.
func (d *Dev) SetAlertHysteresis(ch int, v uint16) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeWord(alertHysteresisReg(ch), v)
}

// AlertLimit returns the raw limit word of channel ch.
func (d *Dev) AlertLimit(ch int) (uint16, error) {
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readWordRW(alertLimitReg(ch))
}

// SetAlertLimit sets the raw limit word of channel ch.
func (d *Dev) SetAlertLimit(ch int, v uint16) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeWord(alertLimitReg(ch), v)
}

func (d *Dev) alertBit(ch int, bit uint8) (bool, error) {
	if err := checkChannel(ch); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readBit(field(alertField(ch, bit)))
}

func (d *Dev) setAlertBit(ch int, bit uint8, set bool) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeBit(alertField(ch, bit), set)
}

// Sense reads the hot junction temperature. Implements physic.SenseEnv.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.temperature(regHotJunction)
	if err != nil {
		return err
	}
	e.Temperature = t
	return nil
}

// SenseContinuous reads the hot junction at the given interval and
// writes the values to the returned channel. Implements physic.SenseEnv.
// Call Halt to terminate the continuous read.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("mcp9600: already sensing continuously")
	}
	d.stop = make(chan struct{})
	d.wg.Add(1)
	sensing := make(chan physic.Env, 16)
	go func(stop <-chan struct{}) {
		defer d.wg.Done()
		defer close(sensing)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				var e physic.Env
				if err := d.Sense(&e); err == nil && len(sensing) < cap(sensing) {
					sensing <- e
				}
			}
		}
	}(d.stop)
	return sensing, nil
}

// Precision returns the smallest temperature step the device resolves,
// 0.0625°C. Implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = degreesResolution
	e.Pressure = 0
	e.Humidity = 0
}

// Halt stops any continuous sensing and puts the chip in shutdown mode.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(fieldShutdownMode, uint8(ModeShutdown))
}

func (d *Dev) String() string {
	return fmt.Sprintf("mcp9600: %s", d.c.String())
}

func checkType(t ThermocoupleType) error {
	if t > TypeR {
		return fmt.Errorf("mcp9600: invalid thermocouple type %d", t)
	}
	return nil
}

func checkFilter(fc FilterCoefficient) error {
	if fc > FilterMax {
		return fmt.Errorf("mcp9600: invalid filter coefficient %d", fc)
	}
	return nil
}

func checkResolution(r ADCResolution) error {
	if r > ADC12Bit {
		return fmt.Errorf("mcp9600: invalid adc resolution %d", r)
	}
	return nil
}

func checkSamples(s BurstSamples) error {
	if s > Burst128 {
		return fmt.Errorf("mcp9600: invalid burst sample count %d", s)
	}
	return nil
}

func checkMode(m ShutdownMode) error {
	if m > ModeBurst {
		return fmt.Errorf("mcp9600: invalid shutdown mode %d", m)
	}
	return nil
}

func checkColdJunction(r ColdJunctionResolution) error {
	if r > ColdJunctionLowRes {
		return fmt.Errorf("mcp9600: invalid cold junction resolution %d", r)
	}
	return nil
}

func checkChannel(ch int) error {
	if ch < 1 || ch > 4 {
		return ErrInvalidChannel
	}
	return nil
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
