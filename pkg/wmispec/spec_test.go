// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmispec

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nucwmi/nucwmi/pkg/wmi"
)

var bitmapContract = Contract{
	ReturnTypes: []ReturnType{ReturnBitmap, ReturnRawBytes},
	Recover:     []bool{false, true},
}

var setterContract = Contract{
	ReturnTypes: []ReturnType{ReturnNone},
	Recover:     []bool{false},
}

// ============================================================
// Resolve Tests
// ============================================================

func TestResolve_NilDeviceUsesDefaults(t *testing.T) {
	var d *Device
	spec, err := d.Resolve("query_leds", bitmapContract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.ReturnType != ReturnBitmap || spec.RecoverOOB {
		t.Errorf("expected bitmap without recovery, got %+v", spec)
	}
	if _, ok := d.RGBDimensionsHint("HDD LED"); ok {
		t.Error("nil device must not provide hints")
	}
}

func TestResolve(t *testing.T) {
	d := &Device{
		Alias: "TEST",
		FunctionReturnType: map[string]string{
			"query_leds":           "raw_bytes",
			"query_led_color_type": "bitmap",
			"set_led":              "int",
			"get_led":              "float",
			"save_led_config":      "none",
			"switch_led_type":      "none",
		},
	}
	d.Recover.FunctionOOBReturnValue = map[string]bool{
		"query_led_color_type": true,
		"switch_led_type":      true,
	}

	tests := []struct {
		name     string
		function string
		contract Contract
		expected FunctionSpec
		message  string
	}{
		{
			name:     "raw bytes",
			function: "query_leds",
			contract: bitmapContract,
			expected: FunctionSpec{ReturnType: ReturnRawBytes},
		},
		{
			name:     "recover enabled",
			function: "query_led_color_type",
			contract: bitmapContract,
			expected: FunctionSpec{ReturnType: ReturnBitmap, RecoverOOB: true},
		},
		{
			name:     "setter",
			function: "save_led_config",
			contract: setterContract,
			expected: FunctionSpec{ReturnType: ReturnNone},
		},
		{
			name:     "missing function",
			function: "query_led_control_items",
			contract: bitmapContract,
			message:  "Error (NUC WMI spec TEST: query_led_control_items: missing function_return_type)",
		},
		{
			name:     "return type outside contract",
			function: "set_led",
			contract: setterContract,
			message:  `Error (NUC WMI spec TEST: set_led: unsupported return type "int")`,
		},
		{
			name:     "unknown return type",
			function: "get_led",
			contract: setterContract,
			message:  `Error (NUC WMI spec TEST: get_led: unknown return type "float")`,
		},
		{
			name:     "recover outside contract",
			function: "switch_led_type",
			contract: setterContract,
			message:  "Error (NUC WMI spec TEST: switch_led_type: unsupported oob recover value true)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := d.Resolve(tt.function, tt.contract)
			if tt.message != "" {
				var specErr *wmi.SpecError
				if !errors.As(err, &specErr) {
					t.Fatalf("expected SpecError, got %v", err)
				}
				if err.Error() != tt.message {
					t.Errorf("expected %q, got %q", tt.message, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, spec)
			}
		})
	}
}

// ============================================================
// Store Tests
// ============================================================

func TestLoad_Builtin(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	aliases := s.Aliases()
	for _, alias := range []string{"NUC7i7BNH", "NUC8i7HVK", "NUC10i7FNH", "NUC14RVH"} {
		found := false
		for _, a := range aliases {
			if a == alias {
				found = true
			}
		}
		if !found {
			t.Errorf("alias %s missing from %v", alias, aliases)
		}
	}

	d, err := s.Device("NUC8i7HVK")
	if err != nil {
		t.Fatalf("device: %v", err)
	}
	if d.Alias != "NUC8i7HVK" {
		t.Errorf("expected alias to be set, got %q", d.Alias)
	}
	if dims, ok := d.RGBDimensionsHint("Skull LED"); !ok || dims != 3 {
		t.Errorf("expected Skull LED hint 3, got %d %v", dims, ok)
	}

	spec, err := d.Resolve("query_leds", bitmapContract)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.ReturnType != ReturnBitmap {
		t.Errorf("expected bitmap, got %s", spec.ReturnType)
	}
}

func TestLoad_UnknownAlias(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = s.Device("NUC99")
	var specErr *wmi.SpecError
	if !errors.As(err, &specErr) || specErr.Alias != "NUC99" {
		t.Errorf("expected SpecError for NUC99, got %v", err)
	}
}

func TestLoad_OverrideMerges(t *testing.T) {
	dir := t.TempDir()
	override := `
[NUC8i7HVK.function_return_type]
query_leds = "raw_bytes"

[NUC8i7HVK.recover.function_oob_return_value]
query_led_control_items = true

[LAB1.function_return_type]
get_led = "raw_bytes"
`
	if err := os.WriteFile(filepath.Join(dir, "10-site.toml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(dir, filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	d, err := s.Device("NUC8i7HVK")
	if err != nil {
		t.Fatalf("device: %v", err)
	}
	if d.FunctionReturnType["query_leds"] != "raw_bytes" {
		t.Errorf("override not applied: %v", d.FunctionReturnType)
	}
	if d.FunctionReturnType["get_led_indicator_option"] != "int" {
		t.Errorf("built-in keys lost in merge: %v", d.FunctionReturnType)
	}
	if !d.Recover.FunctionOOBReturnValue["query_led_control_items"] {
		t.Error("recover override not applied")
	}
	if d.Description == "" {
		t.Error("built-in description lost in merge")
	}

	lab, err := s.Device("LAB1")
	if err != nil {
		t.Fatalf("new alias: %v", err)
	}
	if !reflect.DeepEqual(lab.Functions(), []string{"get_led"}) {
		t.Errorf("unexpected functions %v", lab.Functions())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "syntax",
			content: "[NUC8i7HVK\n",
			message: "failed to parse",
		},
		{
			name:    "return type",
			content: "[BAD.function_return_type]\nget_led = \"double\"\n",
			message: "unknown return type",
		},
		{
			name:    "dimension hint",
			content: "[BAD.rgb_color_type_dimensions_hint]\n\"HDD LED\" = 2\n",
			message: "must be 1 or 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "bad.toml"), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir)
			var specErr *wmi.SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("expected SpecError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected %q in %q", tt.message, err.Error())
			}
		})
	}
}
