// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/wmi"
)

var monitorAsus bool

var monitorCmd = &cobra.Command{
	Use:   "monitor [nuc_wmi_spec_alias]",
	Short: "Watch LED state in an interactive terminal UI",
	Long: `Poll the state of every LED and show it in a terminal UI.

The lock file is taken for each refresh and released in between, so other
nucwmi commands can run while the monitor is open. Changes between refreshes
and failed refreshes are listed under Recent Events.

Keys: up/down select an LED, r refreshes now, q quits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().BoolVar(&monitorAsus, "asus", false, "Watch the ASUS NUC WMI Power Button LED group")
	monitorCmd.Flags().IntVar(&opts.MonitorInterval, "monitor-interval", opts.MonitorInterval, "Seconds between refreshes")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	alias := ""
	if len(args) == 1 {
		alias = args[0]
	}
	if opts.MonitorInterval < 1 {
		return fmt.Errorf("monitor interval must be at least 1 second, got %d", opts.MonitorInterval)
	}

	// Fail before entering the alt screen when the spec alias is unknown.
	if _, err := loadDevice(alias); err != nil {
		return err
	}

	protocol, controlFile := wmi.Legacy, opts.ControlFile
	if monitorAsus {
		protocol = wmi.Extended
		controlFile, _ = asusPaths(cmd)
	}

	poll := func() (snapshot, error) {
		return readSnapshot(cmd, monitorAsus, alias)
	}

	m := initialMonitorModel(fmt.Sprintf("%s: %s", protocol.Name, controlFile), alias,
		time.Duration(opts.MonitorInterval)*time.Second, poll)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
