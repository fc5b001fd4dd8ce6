// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/nucwmi"
	"github.com/nucwmi/nucwmi/pkg/wmi"
)

var queryLEDsCmd = &cobra.Command{
	Use:   "query_leds <nuc_wmi_spec_alias>",
	Short: "List the LEDs present on the board",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryLEDs,
}

var queryLEDColorTypeCmd = &cobra.Command{
	Use:   "query_led_color_type <nuc_wmi_spec_alias> <led>",
	Short: "Get the color type of an LED",
	Args:  cobra.ExactArgs(2),
	RunE:  runQueryLEDColorType,
}

var queryLEDIndicatorOptionsCmd = &cobra.Command{
	Use:   "query_led_indicator_options <nuc_wmi_spec_alias> <led>",
	Short: "List the indicator options an LED supports",
	Args:  cobra.ExactArgs(2),
	RunE:  runQueryLEDIndicatorOptions,
}

var queryLEDControlItemsCmd = &cobra.Command{
	Use:   "query_led_control_items <nuc_wmi_spec_alias> <led> <led_indicator_option>",
	Short: "List the control items of an LED indicator option",
	Long: `List the control items the firmware exposes for an indicator option of an LED.

The indicator option must be available on the LED, and the item list depends on
the LED color type, so the LED is queried for both first.`,
	Args: cobra.ExactArgs(3),
	RunE: runQueryLEDControlItems,
}

func init() {
	rootCmd.AddCommand(queryLEDsCmd)
	rootCmd.AddCommand(queryLEDColorTypeCmd)
	rootCmd.AddCommand(queryLEDIndicatorOptionsCmd)
	rootCmd.AddCommand(queryLEDControlItemsCmd)
}

// tableLabels maps indexes to their labels.
func tableLabels(table wmi.Table, indexes []int) []string {
	labels := make([]string, 0, len(indexes))
	for _, i := range indexes {
		if label, ok := table.Label(i); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

func runQueryLEDs(cmd *cobra.Command, args []string) error {
	return runIntel(args[0], func(c *nucwmi.Client) (object, error) {
		leds, err := c.QueryLEDs()
		if err != nil {
			return nil, err
		}
		if leds.Raw != nil {
			return object{"leds": object{"raw_bytes": rawBytes(leds.Raw)}}, nil
		}
		return object{"leds": tableLabels(nucwmi.LEDTypes, leds.Indexes)}, nil
	})
}

func runQueryLEDColorType(cmd *cobra.Command, args []string) error {
	alias, ledLabel := args[0], args[1]

	led, err := parseLabel(nucwmi.LEDTypes, "LED", ledLabel)
	if err != nil {
		return err
	}

	return runIntel(alias, func(c *nucwmi.Client) (object, error) {
		colorType, err := c.QueryLEDColorType(led)
		if err != nil {
			return nil, err
		}
		if colorType.Raw != nil {
			return object{"led": object{"type": ledLabel, "raw_bytes": rawBytes(colorType.Raw)}}, nil
		}
		return object{"led": object{
			"type":       ledLabel,
			"color_type": nucwmi.ColorTypes[colorType.Index],
		}}, nil
	})
}

func runQueryLEDIndicatorOptions(cmd *cobra.Command, args []string) error {
	alias, ledLabel := args[0], args[1]

	led, err := parseLabel(nucwmi.LEDTypes, "LED", ledLabel)
	if err != nil {
		return err
	}

	return runIntel(alias, func(c *nucwmi.Client) (object, error) {
		options, err := c.QueryLEDIndicatorOptions(led)
		if err != nil {
			return nil, err
		}
		if options.Raw != nil {
			return object{"led": object{"type": ledLabel, "raw_bytes": rawBytes(options.Raw)}}, nil
		}
		return object{"led": object{
			"type":              ledLabel,
			"indicator_options": tableLabels(nucwmi.IndicatorOptions, options.Indexes),
		}}, nil
	})
}

func runQueryLEDControlItems(cmd *cobra.Command, args []string) error {
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
		options, err := c.QueryLEDIndicatorOptions(led)
		if err != nil {
			return nil, err
		}
		if options.Raw != nil {
			return nil, rawResolveError(alias, "query_led_indicator_options")
		}
		if !slices.Contains(options.Indexes, indicator) {
			return nil, nucwmi.ErrIndicatorUnavailable
		}

		colorType, err := c.QueryLEDColorType(led)
		if err != nil {
			return nil, err
		}
		if colorType.Raw != nil {
			return nil, rawResolveError(alias, "query_led_color_type")
		}

		items, err := nucwmi.ControlItemsFor(indicator, colorType.Index)
		if err != nil {
			return nil, err
		}

		caps, err := c.QueryLEDControlItems(led, indicator, items)
		if err != nil {
			return nil, err
		}

		result := object{"type": ledLabel, "indicator_option": indicatorLabel}
		if caps.Raw != nil {
			result["raw_bytes"] = rawBytes(caps.Raw)
		} else {
			result["control_items"] = tableLabels(items.Table(), caps.Indexes)
		}
		return object{"led": result}, nil
	})
}

// rawResolveError reports a raw_bytes discovery query whose decoded result a
// later step depends on.
func rawResolveError(alias, function string) error {
	return &wmi.SpecError{
		Alias:    alias,
		Function: function,
		Message:  "raw_bytes return type cannot be used to resolve control items",
	}
}
