// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

// Firmware status codes. 0xFF is produced by the driver itself once a response
// has been consumed, not by the WMI implementation.
const (
	StatusSuccess            = 0x00
	StatusFunctionNotSupport = 0xE1
	StatusUndefinedDevice    = 0xE2
	StatusECNoResponse       = 0xE3
	StatusInvalidParameter   = 0xE4
	StatusNodeBusy           = 0xE5
	StatusExecutionFailure   = 0xE6
	StatusInvalidCECOpcode   = 0xE7
	StatusBufferTooSmall     = 0xE8
	StatusUnexpectedError    = 0xEF
	StatusAlreadyRead        = 0xFF
)

// UnknownStatus is the description of any status code missing from the catalog.
const UnknownStatus = "Error (Unknown NUC WMI error code)"

var statusDescriptions = map[uint8]string{
	StatusFunctionNotSupport: "Error (Function not supported)",
	StatusUndefinedDevice:    "Error (Undefined device)",
	StatusECNoResponse:       "Error (EC doesn't respond)",
	StatusInvalidParameter:   "Error (Invalid Parameter)",
	StatusNodeBusy: "Error (Node busy. Command could not be executed because " +
		"command processing resources are temporarily unavailable.)",
	StatusExecutionFailure: "Error (Command execution failure. " +
		"Parameter is illegal because destination device has been disabled or is unavailable)",
	StatusInvalidCECOpcode: "Error (Invalid CEC Opcode)",
	StatusBufferTooSmall:   "Error (Data Buffer size is not enough)",
	StatusUnexpectedError:  "Error (Unexpected error)",
	StatusAlreadyRead:      "Error (Return value has already been read and reset)",
}

// Describe returns the human readable description of a firmware status code.
func Describe(code uint8) string {
	if desc, ok := statusDescriptions[code]; ok {
		return desc
	}
	return UnknownStatus
}
