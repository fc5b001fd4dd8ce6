// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// ============================================================
// Test Helpers
// ============================================================

// fakeFirmware answers requests through a handler and records every request.
// Requests are validated the same way the control file channel does.
type fakeFirmware struct {
	handler  func(request []int) []byte
	requests [][]int
	pending  []byte
}

func (f *fakeFirmware) Write(request []int) error {
	if _, err := wmi.EncodeRequest(wmi.Legacy, request); err != nil {
		return err
	}
	f.requests = append(f.requests, append([]int(nil), request...))
	f.pending = f.handler(request)
	return nil
}

func (f *fakeFirmware) Read() ([]byte, error) {
	return f.pending, nil
}

// controlFileDriver stands in for the kernel driver behind a real control
// file: every request written through the channel is answered by replacing
// the file content with the handler's response text.
type controlFileDriver struct {
	*wmi.Channel
	handler func(request []int) []byte
	written []string
}

func newControlFileDriver(t *testing.T, handler func([]int) []byte) *controlFileDriver {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nuc_wmi")
	return &controlFileDriver{Channel: wmi.NewChannel(path, wmi.Legacy, nil), handler: handler}
}

func (d *controlFileDriver) Write(request []int) error {
	if err := d.Channel.Write(request); err != nil {
		return err
	}
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return err
	}
	d.written = append(d.written, string(data))

	response := d.handler(request)
	parts := make([]string, len(response))
	for i, b := range response {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return os.WriteFile(d.Path, []byte(strings.Join(parts, " ")+"\n"), 0o644)
}

// respond returns a handler answering every request with the same bytes.
func respond(response ...byte) func([]int) []byte {
	return func([]int) []byte { return response }
}

// bitmap encodes a little-endian 24 bit bitmap response with status 0.
func bitmap(bits ...int) []byte {
	var value uint32
	for _, bit := range bits {
		value |= 1 << uint(bit)
	}
	return []byte{0x00, byte(value), byte(value >> 8), byte(value >> 16)}
}

func newDevice(returnTypes map[string]string, recover map[string]bool, hints map[string]int) *wmispec.Device {
	d := &wmispec.Device{
		Alias:                      "TEST",
		FunctionReturnType:         returnTypes,
		RGBColorTypeDimensionsHint: hints,
	}
	d.Recover.FunctionOOBReturnValue = recover
	return d
}

// ============================================================
// Version Tests
// ============================================================

func TestVersion(t *testing.T) {
	fw := &fakeFirmware{handler: respond(0x00, 0x36, 0x01, 0x00)}
	c := NewClient(fw, nil)

	v, err := c.WMIInterfaceSpecComplianceVersion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "1.54" {
		t.Errorf("expected 1.54, got %s", v)
	}
	if !reflect.DeepEqual(fw.requests, [][]int{{MethodVersion, VersionSpecCompliance}}) {
		t.Errorf("unexpected requests %v", fw.requests)
	}
}

func TestVersion_RawBytes(t *testing.T) {
	fw := &fakeFirmware{handler: respond(0x00, 0x36, 0x01, 0x00)}
	device := newDevice(map[string]string{"wmi_interface_spec_compliance_version": "raw_bytes"}, nil, nil)
	c := NewClient(fw, device)

	v, err := c.WMIInterfaceSpecComplianceVersion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Raw.String() != "00 36 01 00" {
		t.Errorf("expected raw response, got %q", v.Raw.String())
	}
}

// ============================================================
// Legacy LED Tests
// ============================================================

func TestGetLED(t *testing.T) {
	fw := &fakeFirmware{handler: respond(0x00, 0x64, 0x04, 0x02)}
	c := NewClient(fw, nil)

	state, err := c.GetLED(LegacyS0RingLED)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Brightness != 100 || state.Frequency != 4 || state.Color != 2 {
		t.Errorf("unexpected state %+v", state)
	}

	brightness, frequency, color, err := state.Labels(LegacyS0RingLED)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if brightness != "100" || frequency != "Always on" || color != "Pink" {
		t.Errorf("unexpected labels %s %s %s", brightness, frequency, color)
	}
}

func TestGetLED_Labels_OutOfRange(t *testing.T) {
	state := LEDState{Brightness: 50, Frequency: 1, Color: 3}

	_, _, _, err := state.Labels(LegacyS0PowerLED)
	var integrity *wmi.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrity.Field != "color" || integrity.Value != 3 {
		t.Errorf("unexpected integrity error %+v", integrity)
	}
}

func TestGetLED_UndefinedDevice(t *testing.T) {
	fw := &fakeFirmware{handler: respond(0xE2, 0x00, 0x00, 0x00)}
	c := NewClient(fw, nil)

	_, err := c.GetLED(7)
	if err == nil || err.Error() != "Error (Undefined device)" {
		t.Errorf("expected undefined device error, got %v", err)
	}
}

func TestSetters_RequestLayout(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) error
		expected []int
	}{
		{
			name:     "set_led",
			call:     func(c *Client) error { return c.SetLED(1, 80, 2, 1) },
			expected: []int{0x02, 1, 80, 2, 1},
		},
		{
			name:     "set_led_indicator_option",
			call:     func(c *Client) error { return c.SetLEDIndicatorOption(0, IndicatorSoftware) },
			expected: []int{0x05, 0, 4},
		},
		{
			name:     "set_led_control_item",
			call:     func(c *Client) error { return c.SetLEDControlItem(1, 4, 3, 2) },
			expected: []int{0x06, 1, 4, 3, 2},
		},
		{
			name:     "save_led_config",
			call:     func(c *Client) error { return c.SaveLEDConfig() },
			expected: []int{0x07, 0x01},
		},
		{
			name:     "switch_led_type",
			call:     func(c *Client) error { return c.SwitchLEDType(1) },
			expected: []int{0x08, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &fakeFirmware{handler: respond(0x00, 0x00, 0x00, 0x00)}
			if err := tt.call(NewClient(fw, nil)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(fw.requests, [][]int{tt.expected}) {
				t.Errorf("expected %v, got %v", tt.expected, fw.requests)
			}
		})
	}
}

func TestSetLED_ByteRange(t *testing.T) {
	fw := &fakeFirmware{handler: respond(0x00, 0x00, 0x00, 0x00)}
	err := NewClient(fw, nil).SetLED(1, 300, 1, 1)

	var perr *wmi.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if len(fw.requests) != 0 {
		t.Error("invalid request must not reach the firmware")
	}
}

func TestSpecError_BeforeIO(t *testing.T) {
	fw := &fakeFirmware{handler: respond(0x00, 0x00, 0x00, 0x00)}
	device := newDevice(map[string]string{"get_led": "int"}, nil, nil)

	_, err := NewClient(fw, device).QueryLEDs()
	var specErr *wmi.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("expected SpecError, got %v", err)
	}
	if len(fw.requests) != 0 {
		t.Error("spec errors must be raised before any transaction")
	}
}

// ============================================================
// Query Tests
// ============================================================

func TestQueryLEDs(t *testing.T) {
	fw := &fakeFirmware{handler: respond(bitmap(0, 1, 6)...)}

	caps, err := NewClient(fw, nil).QueryLEDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(caps.Indexes, []int{0, 1, 6}) {
		t.Errorf("expected [0 1 6], got %v", caps.Indexes)
	}
	if !reflect.DeepEqual(fw.requests[0], []int{0x03, 0x00}) {
		t.Errorf("unexpected request %v", fw.requests[0])
	}
}

func TestQueryLEDIndicatorOptions_OutOfBand(t *testing.T) {
	response := bitmap(0, 4, 9)

	t.Run("fatal", func(t *testing.T) {
		fw := &fakeFirmware{handler: respond(response...)}
		_, err := NewClient(fw, nil).QueryLEDIndicatorOptions(0)

		var integrity *wmi.IntegrityError
		if !errors.As(err, &integrity) {
			t.Fatalf("expected IntegrityError, got %v", err)
		}
		if integrity.Value != 9 || integrity.Function != "query_led_indicator_options" {
			t.Errorf("unexpected integrity error %+v", integrity)
		}
	})

	t.Run("recovered", func(t *testing.T) {
		fw := &fakeFirmware{handler: respond(response...)}
		device := newDevice(
			map[string]string{"query_led_indicator_options": "bitmap"},
			map[string]bool{"query_led_indicator_options": true},
			nil,
		)
		caps, err := NewClient(fw, device).QueryLEDIndicatorOptions(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(caps.Indexes, []int{0, 4}) {
			t.Errorf("expected [0 4], got %v", caps.Indexes)
		}
	})
}

func TestQueryLEDColorType(t *testing.T) {
	tests := []struct {
		name     string
		bits     []int
		recover  bool
		expected int
		wantErr  bool
	}{
		{name: "rgb", bits: []int{3}, expected: ColorTypeRGB},
		{name: "single", bits: []int{0}, expected: ColorTypeSingle},
		{name: "none set", bits: nil, wantErr: true},
		{name: "two set", bits: []int{1, 3}, wantErr: true},
		{name: "two set recovered", bits: []int{1, 3}, recover: true, expected: ColorTypeBlueAmber},
		{name: "undefined recovered", bits: []int{2, 7}, recover: true, expected: ColorTypeBlueWhite},
		{name: "undefined fatal", bits: []int{2, 7}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &fakeFirmware{handler: respond(bitmap(tt.bits...)...)}
			device := newDevice(
				map[string]string{"query_led_color_type": "bitmap"},
				map[string]bool{"query_led_color_type": tt.recover},
				nil,
			)
			ct, err := NewClient(fw, device).QueryLEDColorType(1)
			if tt.wantErr {
				var integrity *wmi.IntegrityError
				if !errors.As(err, &integrity) {
					t.Fatalf("expected IntegrityError, got %v (%+v)", err, ct)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ct.Index != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, ct.Index)
			}
		})
	}
}

func TestGetLEDIndicatorOption(t *testing.T) {
	fw := &fakeFirmware{handler: respond(0x00, 0x04, 0x00, 0x00)}
	v, err := NewClient(fw, nil).GetLEDIndicatorOption(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Value != IndicatorSoftware {
		t.Errorf("expected software indicator, got %d", v.Value)
	}
	if !reflect.DeepEqual(fw.requests[0], []int{0x04, 0x00, 1}) {
		t.Errorf("unexpected request %v", fw.requests[0])
	}

	// Scalar enumeration outputs are never recoverable
	fw = &fakeFirmware{handler: respond(0x00, 0x07, 0x00, 0x00)}
	_, err = NewClient(fw, nil).GetLEDIndicatorOption(1)
	var integrity *wmi.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
}

// ============================================================
// Control File Round Trip
// ============================================================

func TestControlFile_RepeatedQueryDecodesIdentically(t *testing.T) {
	led := ledFirmware{indicators: []int{1, 4}, colorType: ColorTypeBlueWhite, controlItems: []int{0, 1, 2}, itemValue: 1}
	driver := newControlFileDriver(t, led.handle)
	c := NewClient(driver, nil)

	first, err := c.GetLEDControlItemLabels(1, IndicatorHDDActivity)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	firstWritten := append([]string(nil), driver.written...)
	driver.written = nil

	second, err := c.GetLEDControlItemLabels(1, IndicatorHDDActivity)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical settings, got %v then %v", first, second)
	}
	if !reflect.DeepEqual(firstWritten, driver.written) {
		t.Errorf("expected identical requests, got %q then %q", firstWritten, driver.written)
	}
	if firstWritten[0] != "03 02 01 00 00" {
		t.Errorf("unexpected first request %q", firstWritten[0])
	}
}

func TestControlFile_UndefinedDevice(t *testing.T) {
	driver := newControlFileDriver(t, respond(wmi.StatusUndefinedDevice, 0x04, 0x00, 0x00))

	option, err := NewClient(driver, nil).GetLEDIndicatorOption(1)
	if err == nil || err.Error() != "Error (Undefined device)" {
		t.Fatalf("expected undefined device, got %v", err)
	}
	if option.Value != 0 || option.Raw != nil {
		t.Errorf("no output may be decoded, got %+v", option)
	}
}
