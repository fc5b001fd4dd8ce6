// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package wmispec resolves how a firmware function behaves on a given hardware
// variant. Each device alias maps function names to a return shape and to an
// out-of-band recovery policy; codecs declare which of those values they
// support through a Contract.
package wmispec

import (
	"fmt"
	"slices"
	"sort"

	"github.com/nucwmi/nucwmi/pkg/wmi"
)

// ReturnType is the shape a codec hands back to its caller.
type ReturnType string

const (
	// ReturnNone marks functions with no outputs besides the status byte.
	ReturnNone ReturnType = "none"
	// ReturnInt decodes outputs at fixed offsets into typed integers.
	ReturnInt ReturnType = "int"
	// ReturnBitmap decodes a 24 bit capability bitmap into table indexes.
	ReturnBitmap ReturnType = "bitmap"
	// ReturnRawBytes hands back the whole response verbatim.
	ReturnRawBytes ReturnType = "raw_bytes"
)

// ParseReturnType parses a store value. The empty string selects ReturnNone.
func ParseReturnType(s string) (ReturnType, error) {
	switch ReturnType(s) {
	case "", ReturnNone:
		return ReturnNone, nil
	case ReturnInt, ReturnBitmap, ReturnRawBytes:
		return ReturnType(s), nil
	default:
		return "", fmt.Errorf("unknown return type %q", s)
	}
}

// FunctionSpec is the resolved behavior of one function on one device.
type FunctionSpec struct {
	ReturnType ReturnType
	RecoverOOB bool
}

// Contract lists what a codec supports. The first entry of each list is the
// default used when no device spec is supplied.
type Contract struct {
	ReturnTypes []ReturnType
	Recover     []bool
}

// Default returns the FunctionSpec used without a device spec.
func (c Contract) Default() FunctionSpec {
	spec := FunctionSpec{ReturnType: ReturnNone}
	if len(c.ReturnTypes) > 0 {
		spec.ReturnType = c.ReturnTypes[0]
	}
	if len(c.Recover) > 0 {
		spec.RecoverOOB = c.Recover[0]
	}
	return spec
}

// Device is the specification of one hardware variant. It is immutable once
// the store has loaded it.
type Device struct {
	Alias       string `toml:"-"`
	Description string `toml:"description"`

	FunctionReturnType map[string]string `toml:"function_return_type"`
	Recover            struct {
		FunctionOOBReturnValue map[string]bool `toml:"function_oob_return_value"`
	} `toml:"recover"`
	RGBColorTypeDimensionsHint map[string]int `toml:"rgb_color_type_dimensions_hint"`
}

// Resolve returns the behavior of function on this device, checked against the
// codec contract. A nil device yields the contract defaults.
func (d *Device) Resolve(function string, c Contract) (FunctionSpec, error) {
	if d == nil {
		return c.Default(), nil
	}

	raw, ok := d.FunctionReturnType[function]
	if !ok {
		return FunctionSpec{}, d.errorf(function, "missing function_return_type")
	}

	returnType, err := ParseReturnType(raw)
	if err != nil {
		return FunctionSpec{}, d.errorf(function, "%v", err)
	}
	if !slices.Contains(c.ReturnTypes, returnType) {
		return FunctionSpec{}, d.errorf(function, "unsupported return type %q", returnType)
	}

	spec := FunctionSpec{ReturnType: returnType, RecoverOOB: c.Default().RecoverOOB}
	if recover, ok := d.Recover.FunctionOOBReturnValue[function]; ok {
		if !slices.Contains(c.Recover, recover) {
			return FunctionSpec{}, d.errorf(function, "unsupported oob recover value %t", recover)
		}
		spec.RecoverOOB = recover
	}

	return spec, nil
}

// RGBDimensionsHint returns the configured color dimensions (1 or 3) of an RGB
// LED, if the device spec names one.
func (d *Device) RGBDimensionsHint(led string) (int, bool) {
	if d == nil {
		return 0, false
	}
	dims, ok := d.RGBColorTypeDimensionsHint[led]
	return dims, ok
}

// Functions returns the function names the device specifies, sorted.
func (d *Device) Functions() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.FunctionReturnType))
	for name := range d.FunctionReturnType {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validate checks the values that do not depend on a codec contract.
func (d *Device) validate() error {
	for function, raw := range d.FunctionReturnType {
		if _, err := ParseReturnType(raw); err != nil {
			return d.errorf(function, "%v", err)
		}
	}
	for led, dims := range d.RGBColorTypeDimensionsHint {
		if dims != 1 && dims != 3 {
			return d.errorf("", "rgb_color_type_dimensions_hint for %q must be 1 or 3, got %d", led, dims)
		}
	}
	return nil
}

func (d *Device) errorf(function, format string, args ...any) *wmi.SpecError {
	return &wmi.SpecError{Alias: d.Alias, Function: function, Message: fmt.Sprintf(format, args...)}
}
