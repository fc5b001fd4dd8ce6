// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import (
	"errors"
	"slices"

	"github.com/nucwmi/nucwmi/pkg/wmi"
)

// Control item flow errors
var (
	ErrIndicatorUnavailable = errors.New("Invalid indicator option for the selected LED")
	ErrInvalidControlItem   = errors.New("Invalid control item specified for the selected LED and indicator option")
	ErrInvalidControlValue  = errors.New("Invalid control item value for the specified control item")
)

// ControlItemTarget is a control item resolved against the live capabilities
// of an LED.
type ControlItemTarget struct {
	LED       int
	Indicator int
	ColorType int
	Item      int
	Items     ControlItems
	Values    wmi.Table
}

// ledControl is the control item list of one indicator option on one LED,
// resolved against the live capabilities of the LED.
type ledControl struct {
	led       int
	indicator int
	label     string
	colorType int
	items     ControlItems

	// available holds the item indexes the firmware reports, once queried.
	available []int
	queried   bool

	// dims is the RGB color dimensionality, 0 until first needed.
	dims int
}

// resolveLEDControl checks that the indicator option is available on the LED
// and picks the item list for its color type.
func (c *Client) resolveLEDControl(led, indicator int) (*ledControl, error) {
	options, err := c.QueryLEDIndicatorOptions(led)
	if err != nil {
		return nil, err
	}
	if options.Raw != nil {
		return nil, c.rawFlowError("query_led_indicator_options")
	}
	if !slices.Contains(options.Indexes, indicator) {
		return nil, ErrIndicatorUnavailable
	}

	colorType, err := c.QueryLEDColorType(led)
	if err != nil {
		return nil, err
	}
	if colorType.Raw != nil {
		return nil, c.rawFlowError("query_led_color_type")
	}

	items, err := ControlItemsFor(indicator, colorType.Index)
	if err != nil {
		return nil, err
	}

	label, _ := LEDTypes.Label(led)
	return &ledControl{
		led:       led,
		indicator: indicator,
		label:     label,
		colorType: colorType.Index,
		items:     items,
	}, nil
}

// availableItems runs query_led_control_items once per resolution.
func (c *Client) availableItems(lc *ledControl) ([]int, error) {
	if lc.queried {
		return lc.available, nil
	}

	caps, err := c.QueryLEDControlItems(lc.led, lc.indicator, lc.items)
	if err != nil {
		return nil, err
	}
	if caps.Raw != nil {
		return nil, c.rawFlowError("query_led_control_items")
	}

	lc.available, lc.queried = caps.Indexes, true
	return lc.available, nil
}

// values resolves the value table of one item. The RGB dimensionality comes
// from the device spec hint, or else from query_led_control_items.
func (c *Client) values(lc *ledControl, item int) (wmi.Table, error) {
	if lc.items[item].Kind == OptColor && lc.colorType == ColorTypeRGB && lc.dims == 0 {
		hint, hinted := c.device.RGBDimensionsHint(lc.label)

		var available []int
		if !hinted {
			var err error
			if available, err = c.availableItems(lc); err != nil {
				return nil, err
			}
		}
		lc.dims = RGBDimensions(hint, hinted, lc.items, available)
	}

	dims := lc.dims
	if dims == 0 {
		dims = 1
	}
	return lc.items[item].Values(lc.colorType, lc.label, dims)
}

// ResolveControlItem discovers the indicator options and color type of an LED,
// picks the item list for the indicator option, and resolves the value table
// of the named item. It runs several transactions, so the caller must hold the
// lock for the whole call.
func (c *Client) ResolveControlItem(led, indicator int, itemLabel string) (ControlItemTarget, error) {
	lc, err := c.resolveLEDControl(led, indicator)
	if err != nil {
		return ControlItemTarget{}, err
	}

	item, ok := lc.items.Index(itemLabel)
	if !ok {
		return ControlItemTarget{}, ErrInvalidControlItem
	}

	values, err := c.values(lc, item)
	if err != nil {
		return ControlItemTarget{}, err
	}

	return ControlItemTarget{
		LED:       led,
		Indicator: indicator,
		ColorType: lc.colorType,
		Item:      item,
		Items:     lc.items,
		Values:    values,
	}, nil
}

// SetLEDControlItemLabel sets a control item by its labels.
func (c *Client) SetLEDControlItemLabel(led, indicator int, itemLabel, valueLabel string) (ControlItemTarget, error) {
	target, err := c.ResolveControlItem(led, indicator, itemLabel)
	if err != nil {
		return target, err
	}

	value, ok := target.Values.Index(valueLabel)
	if !ok {
		return target, ErrInvalidControlValue
	}

	return target, c.SetLEDControlItem(led, indicator, target.Item, value)
}

// GetLEDControlItemLabel reads a control item and maps its value to a label.
func (c *Client) GetLEDControlItemLabel(led, indicator int, itemLabel string) (string, error) {
	target, err := c.ResolveControlItem(led, indicator, itemLabel)
	if err != nil {
		return "", err
	}

	value, err := c.GetLEDControlItem(led, indicator, target.Item)
	if err != nil {
		return "", err
	}
	if value.Raw != nil {
		return "", c.rawFlowError("get_led_control_item")
	}

	if err := target.Values.Check("get_led_control_item", "control item value", value.Value); err != nil {
		return "", err
	}

	return target.Values[value.Value], nil
}

// ControlItemSetting is the current value of one control item.
type ControlItemSetting struct {
	Item  string
	Value string
}

// GetLEDControlItemLabels reads every control item the firmware exposes for
// an indicator option on an LED, in item order, sharing one discovery pass.
func (c *Client) GetLEDControlItemLabels(led, indicator int) ([]ControlItemSetting, error) {
	lc, err := c.resolveLEDControl(led, indicator)
	if err != nil {
		return nil, err
	}

	available, err := c.availableItems(lc)
	if err != nil {
		return nil, err
	}

	settings := make([]ControlItemSetting, 0, len(available))
	for _, item := range available {
		values, err := c.values(lc, item)
		if err != nil {
			return nil, err
		}

		value, err := c.GetLEDControlItem(led, indicator, item)
		if err != nil {
			return nil, err
		}
		if value.Raw != nil {
			return nil, c.rawFlowError("get_led_control_item")
		}
		if err := values.Check("get_led_control_item", lc.items[item].Label, value.Value); err != nil {
			return nil, err
		}

		settings = append(settings, ControlItemSetting{Item: lc.items[item].Label, Value: values[value.Value]})
	}
	return settings, nil
}

func (c *Client) rawFlowError(function string) error {
	alias := ""
	if c.device != nil {
		alias = c.device.Alias
	}
	return &wmi.SpecError{Alias: alias, Function: function, Message: "raw_bytes return type cannot be used to resolve control items"}
}
