// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import (
	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// LEDState is the state of a legacy LED as indexes into LegacyBrightness,
// LegacyFrequencies and the color table of the LED.
type LEDState struct {
	Brightness int
	Frequency  int
	Color      int

	// Raw holds the whole response when the device spec asks for raw_bytes.
	Raw wmi.Response
}

// GetLED reads the brightness, blink frequency and color of a legacy LED.
func (c *Client) GetLED(led int) (LEDState, error) {
	spec, response, err := c.call("get_led", intContract, []int{MethodGetLED, led})
	if err != nil {
		return LEDState{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return LEDState{Raw: response}, nil
	}

	return LEDState{
		Brightness: int(response.Byte(1)),
		Frequency:  int(response.Byte(2)),
		Color:      int(response.Byte(3)),
	}, nil
}

// SetLED sets the brightness, blink frequency and color of a legacy LED.
func (c *Client) SetLED(led, brightness, frequency, color int) error {
	_, _, err := c.call("set_led", noneContract, []int{MethodSetLED, led, brightness, frequency, color})
	return err
}

// Labels maps the state indexes to their labels for a legacy LED, failing
// with an IntegrityError on an index outside its table.
func (s LEDState) Labels(led int) (brightness, frequency, color string, err error) {
	if err = LegacyBrightness.Check("get_led", "brightness", s.Brightness); err != nil {
		return
	}
	if err = LegacyFrequencies.Check("get_led", "frequency", s.Frequency); err != nil {
		return
	}
	colors, ok := LegacyColors(led)
	if !ok {
		err = LegacyLEDTypes.Check("get_led", "led", led)
		return
	}
	if err = colors.Check("get_led", "color", s.Color); err != nil {
		return
	}
	return LegacyBrightness[s.Brightness], LegacyFrequencies[s.Frequency], colors[s.Color], nil
}
