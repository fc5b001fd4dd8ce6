// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/asuswmi"
)

var asusSpecAlias string

var asusCmd = &cobra.Command{
	Use:   "asus",
	Short: "ASUS NUC WMI LED functions",
	Long: `ASUS NUC WMI LED functions over /proc/acpi/asus_nuc_wmi.

The ASUS control and lock files come from the [asus_nuc_wmi] config table or
NUCWMI_ASUS_* variables unless -c or -l are given. Without --spec-alias every
function uses its default return type.`,
}

var asusVersionControlCmd = &cobra.Command{
	Use:   "version_control",
	Short: "Get the LED interface version",
	Args:  cobra.NoArgs,
	RunE:  runAsusVersionControl,
}

var asusQueryGroupCmd = &cobra.Command{
	Use:   "query_led_group_attribute",
	Short: "Get every attribute of the Power Button LED group",
	Args:  cobra.NoArgs,
	RunE:  runAsusQueryGroup,
}

var asusUpdateGroupCmd = &cobra.Command{
	Use: "update_led_group_attribute <indicator_option> <hdd_activity_behavior> <color> " +
		"<blinking_behavior> <blinking_frequency> <brightness> <sleep_state_color> " +
		"<sleep_state_blinking_behavior> <sleep_state_blinking_frequency> <sleep_state_brightness>",
	Short: "Set every attribute of the Power Button LED group",
	Long:  "Set every attribute of the Power Button LED group in one request.\n\n" + groupFieldHelp(),
	Args:  cobra.ExactArgs(len(asuswmi.GroupFields)),
	RunE:  runAsusUpdateGroup,
}

func init() {
	asusCmd.PersistentFlags().StringVarP(&asusSpecAlias, "spec-alias", "s", "", "NUC WMI spec alias of the device")

	asusCmd.AddCommand(asusVersionControlCmd)
	asusCmd.AddCommand(asusQueryGroupCmd)
	asusCmd.AddCommand(asusUpdateGroupCmd)
	rootCmd.AddCommand(asusCmd)
}

// groupFieldHelp lists the labels each attribute accepts.
func groupFieldHelp() string {
	var b strings.Builder
	b.WriteString("Attributes, in order:\n")
	for _, f := range asuswmi.GroupFields {
		labels := f.Table.Labels()
		if len(labels) > 10 {
			fmt.Fprintf(&b, "  %s: %s-%s\n", f.Key, labels[0], labels[len(labels)-1])
			continue
		}
		fmt.Fprintf(&b, "  %s: %q\n", f.Key, labels)
	}
	return b.String()
}

// groupResult renders attributes as labels, or the raw response.
func groupResult(a asuswmi.GroupAttributes) object {
	led := object{"type": asuswmi.LED}
	if a.Raw != nil {
		led["raw_bytes"] = rawBytes(a.Raw)
		return object{"led": led}
	}
	for key, label := range a.Labels() {
		led[key] = label
	}
	return object{"led": led}
}

func runAsusVersionControl(cmd *cobra.Command, args []string) error {
	return runAsus(cmd, asusSpecAlias, func(c *asuswmi.Client) (object, error) {
		version, err := c.VersionControl()
		if err != nil {
			return nil, err
		}

		result := object{"type": "version"}
		if version.Raw != nil {
			result["raw_bytes"] = rawBytes(version.Raw)
		} else {
			result["semver"] = version.String()
		}
		return object{"version_control": result}, nil
	})
}

func runAsusQueryGroup(cmd *cobra.Command, args []string) error {
	return runAsus(cmd, asusSpecAlias, func(c *asuswmi.Client) (object, error) {
		attributes, err := c.QueryLEDGroupAttribute()
		if err != nil {
			return nil, err
		}
		if attributes.Raw == nil {
			if err := asuswmi.ValidateGroupAttributes(attributes); err != nil {
				return nil, err
			}
		}
		return groupResult(attributes), nil
	})
}

func runAsusUpdateGroup(cmd *cobra.Command, args []string) error {
	attributes, err := asuswmi.ParseGroupAttributes(args)
	if err != nil {
		return err
	}

	return runAsus(cmd, asusSpecAlias, func(c *asuswmi.Client) (object, error) {
		if err := c.UpdateLEDGroupAttribute(attributes); err != nil {
			return nil, err
		}
		audit("update_led_group_attribute", "attributes", strings.Join(args, ", "))

		return groupResult(attributes), nil
	})
}
