// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package asuswmi implements the ASUS NUC WMI LED functions over the extended
// 257 byte request / 256 byte response control file protocol.
package asuswmi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// ControlFile is the control file exposed by the asus_nuc_wmi kernel driver.
const ControlFile = "/proc/acpi/asus_nuc_wmi"

// LockFile returns the default lock file path.
func LockFile() string {
	return filepath.Join(os.TempDir(), "asus_nuc_wmi.lock")
}

// Method ids
const (
	MethodVersionControl          = 0x09
	MethodUpdateLEDGroupAttribute = 0x65
	MethodQueryLEDGroupAttribute  = 0x101
)

// Function numbers
const (
	FunctionVersionControl          = 0x00
	FunctionQueryLEDGroupAttribute  = 0x01
	FunctionUpdateLEDGroupAttribute = 0x01
)

var (
	intContract = wmispec.Contract{
		ReturnTypes: []wmispec.ReturnType{wmispec.ReturnInt, wmispec.ReturnRawBytes},
		Recover:     []bool{false},
	}
	noneContract = wmispec.Contract{
		ReturnTypes: []wmispec.ReturnType{wmispec.ReturnNone},
		Recover:     []bool{false},
	}
)

// Client runs ASUS NUC WMI functions against one transport. A nil device uses
// the defaults of every function.
type Client struct {
	transport wmi.Transport
	device    *wmispec.Device
}

// NewClient creates a client.
func NewClient(t wmi.Transport, device *wmispec.Device) *Client {
	return &Client{transport: t, device: device}
}

func (c *Client) call(function string, contract wmispec.Contract, request []int) (wmispec.FunctionSpec, wmi.Response, error) {
	spec, err := c.device.Resolve(function, contract)
	if err != nil {
		return spec, nil, err
	}

	response, err := wmi.Transact(c.transport, request)
	if err != nil {
		return spec, nil, err
	}

	return spec, response, nil
}

// Raw sends an arbitrary request and returns the whole response.
func (c *Client) Raw(request []int) (wmi.Response, error) {
	return wmi.Transact(c.transport, request)
}

// Version is the version_control result.
type Version struct {
	Major int
	Minor int

	// Raw holds the whole response when the device spec asks for raw_bytes.
	Raw wmi.Response
}

// String renders the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// VersionControl returns the firmware LED interface version. The response
// carries the minor byte before the major.
func (c *Client) VersionControl() (Version, error) {
	spec, response, err := c.call("version_control", intContract,
		[]int{MethodVersionControl, FunctionVersionControl})
	if err != nil {
		return Version{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return Version{Raw: response}, nil
	}

	return Version{Major: int(response.Byte(2)), Minor: int(response.Byte(1))}, nil
}
