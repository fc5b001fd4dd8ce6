// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import (
	"errors"
	"strings"
	"syscall"
	"testing"
)

func TestDescribe_Catalog(t *testing.T) {
	tests := []struct {
		code     uint8
		expected string
	}{
		{0xE1, "Error (Function not supported)"},
		{0xE2, "Error (Undefined device)"},
		{0xE3, "Error (EC doesn't respond)"},
		{0xE4, "Error (Invalid Parameter)"},
		{0xE7, "Error (Invalid CEC Opcode)"},
		{0xE8, "Error (Data Buffer size is not enough)"},
		{0xEF, "Error (Unexpected error)"},
		{0xFF, "Error (Return value has already been read and reset)"},
	}

	for _, tt := range tests {
		if got := Describe(tt.code); got != tt.expected {
			t.Errorf("0x%02X: expected %q, got %q", tt.code, tt.expected, got)
		}
	}

	if !strings.HasPrefix(Describe(0xE5), "Error (Node busy.") {
		t.Errorf("unexpected 0xE5 description %q", Describe(0xE5))
	}
	if !strings.HasPrefix(Describe(0xE6), "Error (Command execution failure.") {
		t.Errorf("unexpected 0xE6 description %q", Describe(0xE6))
	}
}

func TestDescribe_Unknown(t *testing.T) {
	for _, code := range []uint8{0x01, 0x7F, 0xE0, 0xE9, 0xFE} {
		if got := Describe(code); got != UnknownStatus {
			t.Errorf("0x%02X: expected unknown, got %q", code, got)
		}
	}
}

func TestIntegrityError_Message(t *testing.T) {
	err := &IntegrityError{
		Function: "get_led_indicator_option",
		Field:    "indicator option",
		Value:    9,
		Valid:    []int{0, 1, 4},
	}
	expected := "Error (NUC WMI get_led_indicator_option function returned invalid indicator option of 9, expected one of [0, 1, 4])"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	err.Interface = Extended.Interface
	expected = "Error (ASUS NUC WMI get_led_indicator_option function returned invalid indicator option of 9, expected one of [0, 1, 4])"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestSpecError_Message(t *testing.T) {
	tests := []struct {
		err      *SpecError
		expected string
	}{
		{&SpecError{Message: "no specs"}, "Error (NUC WMI spec: no specs)"},
		{&SpecError{Alias: "NUC7i7BNH", Message: "unknown alias"}, "Error (NUC WMI spec NUC7i7BNH: unknown alias)"},
		{
			&SpecError{Alias: "NUC7i7BNH", Function: "query_leds", Message: "missing return type"},
			"Error (NUC WMI spec NUC7i7BNH: query_leds: missing return type)",
		},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
		}
	}
}

func TestLockError_Unwrap(t *testing.T) {
	err := &LockError{Path: "/tmp/nuc_wmi.lock", Err: syscall.EWOULDBLOCK}
	if !errors.Is(err, syscall.EWOULDBLOCK) {
		t.Error("expected wrapped EWOULDBLOCK")
	}
	if !strings.Contains(err.Error(), "/tmp/nuc_wmi.lock") {
		t.Errorf("lock path missing from %q", err.Error())
	}
}
