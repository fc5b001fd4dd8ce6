// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import (
	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// Capabilities is the decoded result of a query function: the table indexes
// whose bits are set in the capability bitmap.
type Capabilities struct {
	Indexes []int

	// Raw holds the whole response when the device spec asks for raw_bytes.
	Raw wmi.Response
}

// query runs one query sub-function and expands its bitmap against table.
func (c *Client) query(function, field string, table wmi.Table, request []int) (Capabilities, error) {
	spec, response, err := c.call(function, bitmapContract, request)
	if err != nil {
		return Capabilities{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return Capabilities{Raw: response}, nil
	}

	indexes, err := table.BitmapIndexes(function, field, response.Bitmap24(1), spec.RecoverOOB)
	if err != nil {
		return Capabilities{}, err
	}

	return Capabilities{Indexes: indexes}, nil
}

// QueryLEDs lists the LEDs present on the board as LEDTypes indexes.
func (c *Client) QueryLEDs() (Capabilities, error) {
	return c.query("query_leds", "led type", LEDTypes,
		[]int{MethodQueryLED, QueryLEDs})
}

// QueryLEDIndicatorOptions lists the indicator options an LED supports.
func (c *Client) QueryLEDIndicatorOptions(led int) (Capabilities, error) {
	return c.query("query_led_indicator_options", "indicator option", IndicatorOptions,
		[]int{MethodQueryLED, QueryLEDIndicatorOptions, led})
}

// QueryLEDControlItems lists which of items the firmware exposes for an
// indicator option on an LED. items is the list for the LED color type.
func (c *Client) QueryLEDControlItems(led, indicator int, items ControlItems) (Capabilities, error) {
	return c.query("query_led_control_items", "control item", items.Table(),
		[]int{MethodQueryLED, QueryLEDControlItems, led, indicator})
}

// ColorType is the decoded result of query_led_color_type.
type ColorType struct {
	Index int

	// Raw holds the whole response when the device spec asks for raw_bytes.
	Raw wmi.Response
}

// QueryLEDColorType returns the single color type of an LED. The bitmap must
// select exactly one defined color type; with recovery enabled undefined bits
// are dropped and the lowest remaining one wins.
func (c *Client) QueryLEDColorType(led int) (ColorType, error) {
	const function = "query_led_color_type"

	spec, response, err := c.call(function, bitmapContract, []int{MethodQueryLED, QueryLEDColorType, led})
	if err != nil {
		return ColorType{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return ColorType{Raw: response}, nil
	}

	bitmap := response.Bitmap24(1)
	indexes, err := ColorTypes.BitmapIndexes(function, "color type", bitmap, spec.RecoverOOB)
	if err != nil {
		return ColorType{}, err
	}

	if len(indexes) == 1 || (len(indexes) > 1 && spec.RecoverOOB) {
		return ColorType{Index: indexes[0]}, nil
	}

	return ColorType{}, &wmi.IntegrityError{
		Function: function, Field: "color type bitmap", Value: int(bitmap), Valid: ColorTypes.Defined(),
	}
}
