// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/internal/config"
	"github.com/nucwmi/nucwmi/internal/logging"
)

// opts holds the resolved options of the running command.
var opts = config.Defaults()

var rootCmd = &cobra.Command{
	Use:   "nucwmi",
	Short: "NUC WMI LED control",
	Long: `nucwmi - Read and write LED settings through the NUC WMI kernel driver.

Every firmware function is a subcommand. Enumeration arguments are given as
labels and checked before the control file is touched. Each subcommand prints
exactly one JSON object on stdout, {"error": "..."} on failure, and exits 1 on
error.

Intel devices use /proc/acpi/nuc_wmi and take a NUC WMI spec alias as the first
argument (see "nucwmi specs"). ASUS devices use /proc/acpi/asus_nuc_wmi through
the "asus" subcommands.

Options are read from --config (default /etc/nucwmi/config.toml), then NUCWMI_*
environment variables, then flags.`,
	Version:           "1.0.0",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadOptions,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.Config, "config", opts.Config, "Configuration file")
	flags.StringVarP(&opts.ControlFile, "control-file", "c", opts.ControlFile, "NUC WMI control file")
	flags.StringVarP(&opts.LockFile, "lock-file", "l", opts.LockFile, "NUC WMI lock file")
	flags.BoolVarP(&opts.BlockingFileLock, "blocking-file-lock", "b", false, "Wait for the lock file instead of failing when it is held")
	flags.BoolVarP(&opts.Debug, "debug", "d", false, "Log control file reads and writes to stderr")
}

// loadOptions applies the config file and environment under any flags set on
// the command line, then configures logging.
func loadOptions(cmd *cobra.Command, args []string) error {
	if err := config.LoadConfig(&opts, cmd); err != nil {
		return err
	}

	logging.Initialize(config.LoadLoggingConfig(opts.Config))
	if opts.Debug {
		logging.SetModuleLevel("wmi", "debug")
	}

	return nil
}

// Execute runs the root command. A failure is printed as a JSON error object
// and returned so main can exit 1.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}
