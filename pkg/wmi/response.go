// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import "fmt"

// Response is a decoded firmware response. Offset 0 holds the status code.
type Response []byte

// Status returns the firmware status code.
func (r Response) Status() uint8 {
	if len(r) == 0 {
		return StatusUnexpectedError
	}
	return r[0]
}

// Byte returns the output byte at a fixed offset, or 0 past the end.
func (r Response) Byte(offset int) uint8 {
	if offset < 0 || offset >= len(r) {
		return 0
	}
	return r[offset]
}

// Bitmap24 returns the little-endian 24 bit value stored at offset.
func (r Response) Bitmap24(offset int) uint32 {
	return uint32(r.Byte(offset)) | uint32(r.Byte(offset+1))<<8 | uint32(r.Byte(offset+2))<<16
}

// Bytes returns a copy of the raw response.
func (r Response) Bytes() []byte {
	out := make([]byte, len(r))
	copy(out, r)
	return out
}

// Transact performs one write/read round trip and checks the status byte.
// A non-zero status is returned as *FirmwareError without inspecting the
// output offsets.
func Transact(t Transport, request []int) (Response, error) {
	if err := t.Write(request); err != nil {
		return nil, err
	}

	raw, err := t.Read()
	if err != nil {
		return nil, err
	}

	response := Response(raw)
	if len(response) == 0 {
		return nil, protocolErrorf("NUC WMI returned an empty response")
	}

	if status := response.Status(); status != StatusSuccess {
		return nil, &FirmwareError{Code: status}
	}

	return response, nil
}

// String renders the response as space separated hex bytes.
func (r Response) String() string {
	s := ""
	for i, b := range r {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%02x", b)
	}
	return s
}
