// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/nucwmi"
)

var getLEDIndicatorOptionCmd = &cobra.Command{
	Use:   "get_led_indicator_option <nuc_wmi_spec_alias> <led>",
	Short: "Get the indicator option of an LED",
	Args:  cobra.ExactArgs(2),
	RunE:  runGetLEDIndicatorOption,
}

var setLEDIndicatorOptionCmd = &cobra.Command{
	Use:   "set_led_indicator_option <nuc_wmi_spec_alias> <led> <led_indicator_option>",
	Short: "Set the indicator option of an LED",
	Args:  cobra.ExactArgs(3),
	RunE:  runSetLEDIndicatorOption,
}

var getLEDControlItemCmd = &cobra.Command{
	Use:   "get_led_control_item <nuc_wmi_spec_alias> <led> <led_indicator_option> <control_item>",
	Short: "Get the value of a control item of an LED indicator option",
	Args:  cobra.ExactArgs(4),
	RunE:  runGetLEDControlItem,
}

var setLEDControlItemCmd = &cobra.Command{
	Use:   "set_led_control_item <nuc_wmi_spec_alias> <led> <led_indicator_option> <control_item> <control_item_value>",
	Short: "Set the value of a control item of an LED indicator option",
	Long: `Set the value of a control item of an LED indicator option.

The LED is queried for its indicator options and color type first, all under
one lock. Color values of an RGB LED are palette names for 1 dimensional LEDs
and 0-255 channel values for 3 dimensional LEDs; the dimension comes from the
NUC WMI spec hint or from the control items the LED reports.`,
	Args: cobra.ExactArgs(5),
	RunE: runSetLEDControlItem,
}

var saveLEDConfigCmd = &cobra.Command{
	Use:   "save_led_config <nuc_wmi_spec_alias>",
	Short: "Ask the firmware to persist the current LED settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runSaveLEDConfig,
}

var switchLEDTypeCmd = &cobra.Command{
	Use:   "switch_led_type <nuc_wmi_spec_alias> <led_color_group>",
	Short: "Switch between the single color and multi color LED groups",
	Args:  cobra.ExactArgs(2),
	RunE:  runSwitchLEDType,
}

func init() {
	rootCmd.AddCommand(getLEDIndicatorOptionCmd)
	rootCmd.AddCommand(setLEDIndicatorOptionCmd)
	rootCmd.AddCommand(getLEDControlItemCmd)
	rootCmd.AddCommand(setLEDControlItemCmd)
	rootCmd.AddCommand(saveLEDConfigCmd)
	rootCmd.AddCommand(switchLEDTypeCmd)
}

func runGetLEDIndicatorOption(cmd *cobra.Command, args []string) error {
	alias, ledLabel := args[0], args[1]

	led, err := parseLabel(nucwmi.LEDTypes, "LED", ledLabel)
	if err != nil {
		return err
	}

	return runIntel(alias, func(c *nucwmi.Client) (object, error) {
		value, err := c.GetLEDIndicatorOption(led)
		if err != nil {
			return nil, err
		}
		if value.Raw != nil {
			return object{"led": object{"type": ledLabel, "raw_bytes": rawBytes(value.Raw)}}, nil
		}
		return object{"led": object{
			"type":             ledLabel,
			"indicator_option": nucwmi.IndicatorOptions[value.Value],
		}}, nil
	})
}

func runSetLEDIndicatorOption(cmd *cobra.Command, args []string) error {
	alias, ledLabel, indicatorLabel := args[0], args[1], args[2]

	led, err := parseLabel(nucwmi.LEDTypes, "LED", ledLabel)
	if err != nil {
		return err
	}
	indicator, err := parseLabel(nucwmi.IndicatorOptions, "indicator option", indicatorLabel)
	if err != nil {
		return err
	}

	return runIntel(alias, func(c *nucwmi.Client) (object, error) {
		if err := c.SetLEDIndicatorOption(led, indicator); err != nil {
			return nil, err
		}
		audit("set_led_indicator_option", "led", ledLabel, "indicator_option", indicatorLabel)

		return object{"led": object{
			"type":             ledLabel,
			"indicator_option": indicatorLabel,
		}}, nil
	})
}

// parseControlItemArgs validates the LED, indicator option and control item
// labels before the lock is taken.
func parseControlItemArgs(args []string) (led, indicator int, err error) {
	if led, err = parseLabel(nucwmi.LEDTypes, "LED", args[1]); err != nil {
		return
	}
	if indicator, err = parseLabel(nucwmi.IndicatorOptions, "indicator option", args[2]); err != nil {
		return
	}
	if !slices.Contains(nucwmi.ControlItemLabels(), args[3]) {
		err = nucwmi.ErrInvalidControlItem
	}
	return
}

func runGetLEDControlItem(cmd *cobra.Command, args []string) error {
	led, indicator, err := parseControlItemArgs(args)
	if err != nil {
		return err
	}

	return runIntel(args[0], func(c *nucwmi.Client) (object, error) {
		value, err := c.GetLEDControlItemLabel(led, indicator, args[3])
		if err != nil {
			return nil, err
		}
		return object{"led": object{
			"type":               args[1],
			"indicator_option":   args[2],
			"control_item":       args[3],
			"control_item_value": value,
		}}, nil
	})
}

func runSetLEDControlItem(cmd *cobra.Command, args []string) error {
	led, indicator, err := parseControlItemArgs(args)
	if err != nil {
		return err
	}

	return runIntel(args[0], func(c *nucwmi.Client) (object, error) {
		if _, err := c.SetLEDControlItemLabel(led, indicator, args[3], args[4]); err != nil {
			return nil, err
		}
		audit("set_led_control_item", "led", args[1], "indicator_option", args[2],
			"control_item", args[3], "control_item_value", args[4])

		return object{"led": object{
			"type":               args[1],
			"indicator_option":   args[2],
			"control_item":       args[3],
			"control_item_value": args[4],
		}}, nil
	})
}

func runSaveLEDConfig(cmd *cobra.Command, args []string) error {
	return runIntel(args[0], func(c *nucwmi.Client) (object, error) {
		if err := c.SaveLEDConfig(); err != nil {
			return nil, err
		}
		audit("save_led_config")

		return object{"led_app_notification": object{"type": "save_led_config"}}, nil
	})
}

func runSwitchLEDType(cmd *cobra.Command, args []string) error {
	alias, groupLabel := args[0], args[1]

	group, err := parseLabel(nucwmi.LEDColorGroups, "LED color group", groupLabel)
	if err != nil {
		return err
	}

	return runIntel(alias, func(c *nucwmi.Client) (object, error) {
		if err := c.SwitchLEDType(group); err != nil {
			return nil, err
		}
		audit("switch_led_type", "led_color_group", groupLabel)

		return object{"led_color_group": object{"type": groupLabel}}, nil
	})
}
