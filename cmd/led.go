// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/nucwmi"
)

var getLEDCmd = &cobra.Command{
	Use:   "get_led <nuc_wmi_spec_alias> <led>",
	Short: "Get the brightness, frequency and color of a legacy LED",
	Long: `Get the brightness, blink frequency and color of a legacy LED.

LEDs: "S0 Power LED", "S0 Ring LED".`,
	Args: cobra.ExactArgs(2),
	RunE: runGetLED,
}

var setLEDCmd = &cobra.Command{
	Use:   "set_led <nuc_wmi_spec_alias> <led> <brightness> <frequency> <color>",
	Short: "Set the brightness, frequency and color of a legacy LED",
	Long: `Set the brightness, blink frequency and color of a legacy LED.

Brightness is 0-100. Frequencies: "1Hz", "0.5Hz", "0.25Hz", "Always on".
The S0 Power LED takes "Off", "Blue", "Amber"; the S0 Ring LED takes "Off",
"Cyan", "Pink", "Yellow", "Blue", "Red", "Green", "White".`,
	Args: cobra.ExactArgs(5),
	RunE: runSetLED,
}

func init() {
	rootCmd.AddCommand(getLEDCmd)
	rootCmd.AddCommand(setLEDCmd)
}

func runGetLED(cmd *cobra.Command, args []string) error {
	alias, ledLabel := args[0], args[1]

	led, err := parseLabel(nucwmi.LegacyLEDTypes, "LED", ledLabel)
	if err != nil {
		return err
	}

	return runIntel(alias, func(c *nucwmi.Client) (object, error) {
		state, err := c.GetLED(led)
		if err != nil {
			return nil, err
		}
		if state.Raw != nil {
			return object{"led": object{"type": ledLabel, "raw_bytes": rawBytes(state.Raw)}}, nil
		}

		brightness, frequency, color, err := state.Labels(led)
		if err != nil {
			return nil, err
		}

		return object{"led": object{
			"type":       ledLabel,
			"brightness": brightness,
			"frequency":  frequency,
			"color":      color,
		}}, nil
	})
}

func runSetLED(cmd *cobra.Command, args []string) error {
	alias, ledLabel := args[0], args[1]

	led, err := parseLabel(nucwmi.LegacyLEDTypes, "LED", ledLabel)
	if err != nil {
		return err
	}
	brightness, err := parseLabel(nucwmi.LegacyBrightness, "brightness", args[2])
	if err != nil {
		return err
	}
	frequency, err := parseLabel(nucwmi.LegacyFrequencies, "frequency", args[3])
	if err != nil {
		return err
	}
	colors, _ := nucwmi.LegacyColors(led)
	color, err := parseLabel(colors, "color", args[4])
	if err != nil {
		return err
	}

	return runIntel(alias, func(c *nucwmi.Client) (object, error) {
		if err := c.SetLED(led, brightness, frequency, color); err != nil {
			return nil, err
		}
		audit("set_led", "led", ledLabel, "brightness", args[2], "frequency", args[3], "color", args[4])

		return object{"led": object{
			"type":       ledLabel,
			"brightness": args[2],
			"frequency":  args[3],
			"color":      args[4],
		}}, nil
	})
}
