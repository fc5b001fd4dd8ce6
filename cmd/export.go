// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/internal/exporter"
	"github.com/nucwmi/nucwmi/pkg/asuswmi"
	"github.com/nucwmi/nucwmi/pkg/nucwmi"
	"github.com/nucwmi/nucwmi/pkg/wmi"
)

var exportAsus bool

var exportCmd = &cobra.Command{
	Use:   "export [nuc_wmi_spec_alias]",
	Short: "Write LED state as a Prometheus textfile",
	Long: `Read the state of every LED under one lock and write it in the Prometheus
text format for the node_exporter textfile collector. Run it from a timer:

  nucwmi export NUC10i7FNH --export-textfile /var/lib/prometheus/node-exporter/nucwmi.prom

The file is replaced atomically. Functions that fail are reported through the
nucwmi_function_failed gauge. The command exits 1 on lock or write failures,
and when every function failed; the textfile is still written then.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportAsus, "asus", false, "Read the ASUS NUC WMI Power Button LED group")
	exportCmd.Flags().StringVar(&opts.ExportTextfile, "export-textfile", opts.ExportTextfile, "Prometheus textfile to write")
	rootCmd.AddCommand(exportCmd)
}

// readSnapshot takes the lock, reads every LED and releases the lock.
func readSnapshot(cmd *cobra.Command, asus bool, alias string) (snapshot, error) {
	protocol, controlFile, lockFile := wmi.Legacy, opts.ControlFile, opts.LockFile
	if asus {
		protocol = wmi.Extended
		controlFile, lockFile = asusPaths(cmd)
	}

	s, err := openSession(protocol, controlFile, lockFile, alias)
	if err != nil {
		return snapshot{}, err
	}
	defer s.Close()

	if asus {
		return takeAsusSnapshot(asuswmi.NewClient(s.transport, s.device), time.Now()), nil
	}
	return takeSnapshot(nucwmi.NewClient(s.transport, s.device), time.Now()), nil
}

// snapshotInterface names the version gauge of a snapshot.
func snapshotInterface(asus bool) string {
	if asus {
		return "version_control"
	}
	return "wmi_interface_spec_compliance"
}

func runExport(cmd *cobra.Command, args []string) error {
	alias := ""
	if len(args) == 1 {
		alias = args[0]
	}

	snap, err := readSnapshot(cmd, exportAsus, alias)
	if err != nil {
		return err
	}

	e := exporter.New()
	observe(e, snapshotInterface(exportAsus), snap)
	if err := e.WriteTextfile(opts.ExportTextfile); err != nil {
		return err
	}

	for function, err := range snap.Results {
		if err != nil {
			logger().Warn("function failed during export", "function", function, "error", err)
		}
	}
	if err := allFailed(snap); err != nil {
		return err
	}

	result := object{"textfile": opts.ExportTextfile, "leds": len(snap.LEDs), "failed_functions": snap.Failures()}
	if alias != "" {
		result["nuc_wmi_spec_alias"] = alias
	}
	return printJSON(object{"export": result})
}

// allFailed reports a snapshot in which no firmware function succeeded,
// naming the first failure in function order.
func allFailed(snap snapshot) error {
	if len(snap.Results) == 0 || snap.Failures() != len(snap.Results) {
		return nil
	}
	first := slices.Sorted(maps.Keys(snap.Results))[0]
	return fmt.Errorf("Error (NUC WMI export: all %d functions failed, %s: %w)",
		len(snap.Results), first, snap.Results[first])
}
