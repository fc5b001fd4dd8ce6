// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

var specsCmd = &cobra.Command{
	Use:   "specs [nuc_wmi_spec_alias]",
	Short: "List the NUC WMI spec aliases, or show one",
	Long: `List the NUC WMI spec aliases built in and loaded from the spec directories
(default /etc/nucwmi/spec.d), or show the function return types, recovery
settings and RGB dimension hints of one alias.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpecs,
}

func init() {
	rootCmd.AddCommand(specsCmd)
}

func runSpecs(cmd *cobra.Command, args []string) error {
	store, err := wmispec.Load(opts.SpecDirs...)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		specs := make([]object, 0)
		for _, alias := range store.Aliases() {
			device, err := store.Device(alias)
			if err != nil {
				return err
			}
			specs = append(specs, object{"alias": alias, "description": device.Description})
		}
		return printJSON(object{"nuc_wmi_specs": specs})
	}

	device, err := store.Device(args[0])
	if err != nil {
		return err
	}

	oob := device.Recover.FunctionOOBReturnValue
	if oob == nil {
		oob = map[string]bool{}
	}
	hints := device.RGBColorTypeDimensionsHint
	if hints == nil {
		hints = map[string]int{}
	}

	return printJSON(object{
		"nuc_wmi_spec_alias": device.Alias,
		"nuc_wmi_spec": object{
			"description":          device.Description,
			"function_return_type": device.FunctionReturnType,
			"recover": object{
				"function_oob_return_value": oob,
			},
			"rgb_color_type_dimensions_hint": hints,
		},
	})
}
