// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"strconv"
	"time"

	"github.com/nucwmi/nucwmi/internal/exporter"
	"github.com/nucwmi/nucwmi/pkg/asuswmi"
	"github.com/nucwmi/nucwmi/pkg/nucwmi"
)

// ledSnapshot is the state of one LED at one point in time.
type ledSnapshot struct {
	LED       string
	ColorType string
	Indicator string
	Settings  []nucwmi.ControlItemSetting

	Brightness    int
	HasBrightness bool

	Err error
}

// snapshot is the state of every LED, read under one lock.
type snapshot struct {
	Time    time.Time
	Version string
	LEDs    []ledSnapshot

	// Results holds the outcome of each firmware function called. A function
	// called several times keeps its first failure.
	Results map[string]error
}

func newSnapshot(now time.Time) snapshot {
	return snapshot{Time: now, Results: make(map[string]error)}
}

func (s *snapshot) record(function string, err error) error {
	if prev, ok := s.Results[function]; !ok || prev == nil {
		s.Results[function] = err
	}
	return err
}

// Failures counts the functions that failed at least once.
func (s *snapshot) Failures() int {
	n := 0
	for _, err := range s.Results {
		if err != nil {
			n++
		}
	}
	return n
}

// brightnessItems are the control items reported as the LED brightness, in
// order of preference.
var brightnessItems = []string{"Brightness", "S0 Indicator Brightness"}

// takeSnapshot reads the interface version, then the indicator option, color
// type and every control item of each LED the board reports.
func takeSnapshot(c *nucwmi.Client, now time.Time) snapshot {
	snap := newSnapshot(now)

	version, err := c.WMIInterfaceSpecComplianceVersion()
	if snap.record("wmi_interface_spec_compliance_version", err) == nil && version.Raw == nil {
		snap.Version = version.String()
	}

	leds, err := c.QueryLEDs()
	if snap.record("query_leds", err) != nil || leds.Raw != nil {
		return snap
	}

	for _, led := range leds.Indexes {
		snap.LEDs = append(snap.LEDs, snapshotLED(c, &snap, led))
	}
	return snap
}

func snapshotLED(c *nucwmi.Client, snap *snapshot, led int) ledSnapshot {
	state := ledSnapshot{LED: nucwmi.LEDTypes[led]}

	colorType, err := c.QueryLEDColorType(led)
	if state.Err = snap.record("query_led_color_type", err); err != nil {
		return state
	}
	if colorType.Raw == nil {
		state.ColorType = nucwmi.ColorTypes[colorType.Index]
	}

	indicator, err := c.GetLEDIndicatorOption(led)
	if state.Err = snap.record("get_led_indicator_option", err); err != nil || indicator.Raw != nil {
		return state
	}
	state.Indicator = nucwmi.IndicatorOptions[indicator.Value]

	settings, err := c.GetLEDControlItemLabels(led, indicator.Value)
	if errors.Is(err, nucwmi.ErrNoControlItems) {
		return state
	}
	if state.Err = snap.record("get_led_control_item", err); err != nil {
		return state
	}
	state.Settings = settings

	for _, item := range brightnessItems {
		for _, s := range settings {
			if s.Item != item || state.HasBrightness {
				continue
			}
			if v, err := strconv.Atoi(s.Value); err == nil {
				state.Brightness, state.HasBrightness = v, true
			}
		}
	}
	return state
}

// takeAsusSnapshot reads the version and the Power Button LED group.
func takeAsusSnapshot(c *asuswmi.Client, now time.Time) snapshot {
	snap := newSnapshot(now)

	version, err := c.VersionControl()
	if snap.record("version_control", err) == nil && version.Raw == nil {
		snap.Version = version.String()
	}

	snap.LEDs = append(snap.LEDs, snapshotGroup(c, &snap))
	return snap
}

func snapshotGroup(c *asuswmi.Client, snap *snapshot) ledSnapshot {
	state := ledSnapshot{LED: asuswmi.LED}

	attributes, err := c.QueryLEDGroupAttribute()
	if err == nil && attributes.Raw == nil {
		err = asuswmi.ValidateGroupAttributes(attributes)
	}
	if state.Err = snap.record("query_led_group_attribute", err); err != nil || attributes.Raw != nil {
		return state
	}

	labels := attributes.Labels()
	state.Indicator = labels["indicator_option"]
	for _, f := range asuswmi.GroupFields[1:] {
		state.Settings = append(state.Settings, nucwmi.ControlItemSetting{Item: f.Name, Value: labels[f.Key]})
	}
	state.Brightness, state.HasBrightness = attributes.Brightness, true
	return state
}

// observe copies a snapshot into the exporter gauges.
func observe(e *exporter.Exporter, iface string, snap snapshot) {
	for function, err := range snap.Results {
		e.ObserveResult(function, err)
	}
	if snap.Version != "" {
		e.ObserveVersion(iface, snap.Version)
	}

	for _, led := range snap.LEDs {
		if led.Indicator != "" {
			e.ObserveIndicator(led.LED, led.Indicator)
		}
		if led.ColorType != "" {
			e.ObserveSetting(led.LED, "Color Type", led.ColorType)
		}
		if led.HasBrightness {
			e.ObserveBrightness(led.LED, led.Brightness)
		}
		for _, s := range led.Settings {
			e.ObserveSetting(led.LED, s.Item, s.Value)
		}
	}

	e.MarkSnapshot(snap.Time)
}
