// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package nucwmi implements the Intel NUC WMI LED functions over the legacy
// 5 byte request / 4 byte response control file protocol.
//
// Every function follows the same shape: resolve the device spec, build the
// request with the method id at offset 0 and arguments at fixed offsets, run
// one transaction, then decode typed outputs from fixed response offsets. When
// the device spec asks for raw_bytes the whole response is handed back instead.
package nucwmi

import (
	"os"
	"path/filepath"

	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// ControlFile is the control file exposed by the nuc_wmi kernel driver.
const ControlFile = "/proc/acpi/nuc_wmi"

// LockFile returns the default lock file path.
func LockFile() string {
	return filepath.Join(os.TempDir(), "nuc_wmi.lock")
}

// Method ids
const (
	MethodGetLED                = 0x01
	MethodSetLED                = 0x02
	MethodQueryLED              = 0x03
	MethodGetLEDNew             = 0x04
	MethodSetLEDIndicatorOption = 0x05
	MethodSetLEDControlItem     = 0x06
	MethodNotification          = 0x07
	MethodSwitchLEDType         = 0x08
	MethodVersion               = 0x09
)

// Query LED sub-function numbers
const (
	QueryLEDs                = 0x00
	QueryLEDColorType        = 0x01
	QueryLEDIndicatorOptions = 0x02
	QueryLEDControlItems     = 0x03
)

// Get LED sub-function numbers
const (
	GetLEDIndicatorOption = 0x00
	GetLEDControlItem     = 0x01
)

// NotificationSaveLEDConfig asks the firmware to persist the LED settings.
const NotificationSaveLEDConfig = 0x01

// VersionSpecCompliance selects the WMI interface spec compliance version.
const VersionSpecCompliance = 0x00

// Function contracts
var (
	intContract = wmispec.Contract{
		ReturnTypes: []wmispec.ReturnType{wmispec.ReturnInt, wmispec.ReturnRawBytes},
		Recover:     []bool{false},
	}
	bitmapContract = wmispec.Contract{
		ReturnTypes: []wmispec.ReturnType{wmispec.ReturnBitmap, wmispec.ReturnRawBytes},
		Recover:     []bool{false, true},
	}
	noneContract = wmispec.Contract{
		ReturnTypes: []wmispec.ReturnType{wmispec.ReturnNone},
		Recover:     []bool{false},
	}
)

// Client runs Intel NUC WMI functions against one transport using one device
// spec. A nil device uses the defaults of every function.
type Client struct {
	transport wmi.Transport
	device    *wmispec.Device
}

// NewClient creates a client.
func NewClient(t wmi.Transport, device *wmispec.Device) *Client {
	return &Client{transport: t, device: device}
}

// Device returns the device spec the client resolves against.
func (c *Client) Device() *wmispec.Device {
	return c.device
}

// call resolves the function spec before any I/O, then runs the transaction.
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

// Raw sends an arbitrary request and returns the whole response. The status
// byte is still checked.
func (c *Client) Raw(request []int) (wmi.Response, error) {
	return wmi.Transact(c.transport, request)
}
