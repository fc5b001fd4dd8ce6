// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/nucwmi"
)

var wmiVersionCmd = &cobra.Command{
	Use:     "wmi_interface_spec_compliance_version <nuc_wmi_spec_alias>",
	Aliases: []string{"version"},
	Short:   "Get the WMI interface spec version the firmware complies with",
	Args:    cobra.ExactArgs(1),
	RunE:    runWMIVersion,
}

func init() {
	rootCmd.AddCommand(wmiVersionCmd)
}

func runWMIVersion(cmd *cobra.Command, args []string) error {
	return runIntel(args[0], func(c *nucwmi.Client) (object, error) {
		version, err := c.WMIInterfaceSpecComplianceVersion()
		if err != nil {
			return nil, err
		}

		result := object{"type": "wmi_interface_spec_compliance"}
		if version.Raw != nil {
			result["raw_bytes"] = rawBytes(version.Raw)
		} else {
			result["semver"] = version.String()
		}
		return object{"version": result}, nil
	})
}
