// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package wmi implements the transaction layer shared by every NUC WMI firmware
// function: the hex-text control file channel, the advisory lock guarding it,
// the status code catalog and the error taxonomy.
//
// A transaction writes one fixed-length request (method id followed by
// parameters, zero padded) and reads back one fixed-length response whose first
// byte is the firmware status code.
package wmi

// Protocol describes the fixed buffer geometry of one control file driver
// generation.
type Protocol struct {
	// Name prefixes response decoding errors, e.g. "Intel NUC WMI".
	Name string
	// Device prefixes request validation errors, e.g. "Intel NUC LED".
	Device string
	// Interface prefixes integrity and lock errors, e.g. "ASUS NUC WMI".
	Interface string
	// RequestLen is the number of bytes written per request, after padding.
	RequestLen int
	// ResponseLen is the exact number of bytes a response must decode to.
	ResponseLen int
}

// Driver generations
var (
	// Legacy is the Intel nuc_wmi driver: 5 byte requests, 4 byte responses.
	Legacy = Protocol{
		Name:        "Intel NUC WMI",
		Device:      "Intel NUC LED",
		Interface:   "NUC WMI",
		RequestLen:  5,
		ResponseLen: 4,
	}

	// Extended is the ASUS asus_nuc_wmi driver: 257 byte requests, 256 byte responses.
	Extended = Protocol{
		Name:        "ASUS NUC WMI",
		Device:      "ASUS NUC LED",
		Interface:   "ASUS NUC WMI",
		RequestLen:  257,
		ResponseLen: 256,
	}
)

// Value limits
const (
	MaxMethodID = 0xFFFFFFFF
	MaxByte     = 0xFF
)

// ReadWindow is the maximum number of hex text characters read per response:
// two characters per byte plus one separator between bytes.
func (p Protocol) ReadWindow() int {
	return 3*p.ResponseLen - 1
}
