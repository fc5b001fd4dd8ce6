// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/nucwmi"
	"github.com/nucwmi/nucwmi/pkg/wmi"
)

var controlCmd = &cobra.Command{
	Use:   "control <nuc_wmi_spec_alias>",
	Short: "Interactive TUI for changing LED control items",
	Long: `Change LED control items through an interactive terminal UI.

The LEDs the board reports are listed on the left. Selecting one shows the
control items of its current indicator option; pick an item, type the new
value and apply it. Every change runs set_led_control_item under the lock
file and rereads the LED state afterwards.

Keys: Tab switches between the LED list, the control items, the value input
and the Apply button. s saves the LED config, r rereads, q quits.`,
	Args: cobra.ExactArgs(1),
	RunE: runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

// controlAction is one change requested from the control TUI.
type controlAction struct {
	LED       string
	Indicator string
	Item      string
	Value     string

	// Save asks for save_led_config instead of a control item change.
	Save bool
}

func (a controlAction) String() string {
	if a.Save {
		return "save LED config"
	}
	return fmt.Sprintf("set %s %s to %s", a.LED, a.Item, a.Value)
}

// newControlApply returns the function the control TUI runs for each change.
// Each call takes the lock for itself.
func newControlApply(alias string) func(controlAction) error {
	return func(a controlAction) error {
		s, err := openSession(wmi.Legacy, opts.ControlFile, opts.LockFile, alias)
		if err != nil {
			return err
		}
		defer s.Close()

		c := nucwmi.NewClient(s.transport, s.device)
		if a.Save {
			if err := c.SaveLEDConfig(); err != nil {
				return err
			}
			audit("save_led_config")
			return nil
		}

		led, err := parseLabel(nucwmi.LEDTypes, "LED", a.LED)
		if err != nil {
			return err
		}
		indicator, err := parseLabel(nucwmi.IndicatorOptions, "indicator option", a.Indicator)
		if err != nil {
			return err
		}

		if _, err := c.SetLEDControlItemLabel(led, indicator, a.Item, a.Value); err != nil {
			return err
		}
		audit("set_led_control_item", "led", a.LED, "indicator_option", a.Indicator,
			"control_item", a.Item, "control_item_value", a.Value)
		return nil
	}
}

func runControl(cmd *cobra.Command, args []string) error {
	alias := args[0]

	// Fail before entering the alt screen when the spec alias is unknown.
	if _, err := loadDevice(alias); err != nil {
		return err
	}

	poll := func() (snapshot, error) {
		return readSnapshot(cmd, false, alias)
	}

	m := initialControlModel(fmt.Sprintf("%s: %s", wmi.Legacy.Name, opts.ControlFile), alias,
		poll, newControlApply(alias))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
