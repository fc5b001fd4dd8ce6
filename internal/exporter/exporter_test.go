// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package exporter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteTextfile(t *testing.T) {
	e := New()
	e.ObserveIndicator("HDD LED", "HDD Activity Indicator")
	e.ObserveBrightness("HDD LED", 42)
	e.ObserveSetting("HDD LED", "color", "Amber")
	e.ObserveVersion("wmi_interface_spec_compliance", "1.54")
	e.ObserveResult("query_leds", nil)
	e.ObserveResult("get_led_indicator_option", errors.New("Error (Undefined device)"))
	e.MarkSnapshot(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "nucwmi.prom")
	if err := e.WriteTextfile(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)

	expected := []string{
		`nucwmi_led_indicator_option_info{indicator_option="HDD Activity Indicator",led="HDD LED"} 1`,
		`nucwmi_led_brightness_percent{led="HDD LED"} 42`,
		`nucwmi_led_setting_info{led="HDD LED",setting="color",value="Amber"} 1`,
		`nucwmi_interface_version_info{interface="wmi_interface_spec_compliance",version="1.54"} 1`,
		`nucwmi_function_failed{function="query_leds"} 0`,
		`nucwmi_function_failed{function="get_led_indicator_option"} 1`,
		`nucwmi_last_snapshot_timestamp_seconds 1.7e+09`,
	}
	for _, line := range expected {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q in:\n%s", line, out)
		}
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	e := New()
	if err := e.WriteTextfile(filepath.Join(t.TempDir(), "missing", "nucwmi.prom")); err == nil {
		t.Error("expected error for missing directory")
	}
}
