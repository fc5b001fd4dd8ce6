// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import (
	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// Value is a single decoded output byte.
type Value struct {
	Value int

	// Raw holds the whole response when the device spec asks for raw_bytes.
	Raw wmi.Response
}

// GetLEDIndicatorOption returns the current indicator option of an LED. An
// index outside IndicatorOptions is always an IntegrityError.
func (c *Client) GetLEDIndicatorOption(led int) (Value, error) {
	const function = "get_led_indicator_option"

	spec, response, err := c.call(function, intContract, []int{MethodGetLEDNew, GetLEDIndicatorOption, led})
	if err != nil {
		return Value{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return Value{Raw: response}, nil
	}

	indicator := int(response.Byte(1))
	if err := IndicatorOptions.Check(function, "indicator option", indicator); err != nil {
		return Value{}, err
	}

	return Value{Value: indicator}, nil
}

// SetLEDIndicatorOption assigns an indicator option to an LED.
func (c *Client) SetLEDIndicatorOption(led, indicator int) error {
	_, _, err := c.call("set_led_indicator_option", noneContract,
		[]int{MethodSetLEDIndicatorOption, led, indicator})
	return err
}

// GetLEDControlItem returns the raw value index of a control item. The value
// table depends on the LED color type, so mapping it is left to the caller.
func (c *Client) GetLEDControlItem(led, indicator, item int) (Value, error) {
	spec, response, err := c.call("get_led_control_item", intContract,
		[]int{MethodGetLEDNew, GetLEDControlItem, led, indicator, item})
	if err != nil {
		return Value{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return Value{Raw: response}, nil
	}

	return Value{Value: int(response.Byte(1))}, nil
}

// SetLEDControlItem sets the value index of a control item.
func (c *Client) SetLEDControlItem(led, indicator, item, value int) error {
	_, _, err := c.call("set_led_control_item", noneContract,
		[]int{MethodSetLEDControlItem, led, indicator, item, value})
	return err
}

// SaveLEDConfig asks the firmware to persist the current LED settings.
func (c *Client) SaveLEDConfig() error {
	_, _, err := c.call("save_led_config", noneContract,
		[]int{MethodNotification, NotificationSaveLEDConfig})
	return err
}

// SwitchLEDType switches between the single color and multi color LED groups.
func (c *Client) SwitchLEDType(group int) error {
	_, _, err := c.call("switch_led_type", noneContract,
		[]int{MethodSwitchLEDType, group})
	return err
}
