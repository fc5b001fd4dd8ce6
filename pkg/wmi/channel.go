// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Transport carries one request/response pair to the firmware.
// Channel is the production implementation; tests substitute scripted fakes.
type Transport interface {
	// Write validates, pads and sends a request. Element 0 is the method id.
	Write(request []int) error
	// Read returns the decoded response of the last request.
	Read() ([]byte, error)
}

// Channel reads and writes the driver control file.
type Channel struct {
	Path     string
	Protocol Protocol

	// Logger receives the raw hex text of every write and read at debug level.
	// Nil disables tracing.
	Logger *slog.Logger
}

// NewChannel creates a control file channel for the given driver generation.
func NewChannel(path string, protocol Protocol, logger *slog.Logger) *Channel {
	return &Channel{
		Path:     path,
		Protocol: protocol,
		Logger:   logger,
	}
}

// Write encodes the request as space separated two digit lowercase hex bytes,
// right padded with zero bytes to the protocol request length, and writes it to
// the control file in a single write. Nothing is written if validation fails.
func (c *Channel) Write(request []int) error {
	text, err := EncodeRequest(c.Protocol, request)
	if err != nil {
		return err
	}

	c.trace("write", text)

	f, err := os.OpenFile(c.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &IOError{Op: "open", Path: c.Path, Err: err}
	}
	defer f.Close()

	if _, err := f.Write([]byte(text)); err != nil {
		return &IOError{Op: "write", Path: c.Path, Err: err}
	}

	return nil
}

// Read reads one response from the control file and decodes it.
func (c *Channel) Read() ([]byte, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: c.Path, Err: err}
	}
	defer f.Close()

	buf := make([]byte, c.Protocol.ReadWindow())
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &IOError{Op: "read", Path: c.Path, Err: err}
	}

	// The driver terminates its output with a newline and a NUL
	text := strings.TrimRight(strings.TrimRight(string(buf[:n]), "\x00"), "\n")

	c.trace("read", text)

	return DecodeResponse(c.Protocol, text)
}

func (c *Channel) trace(op, text string) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug("control file "+op,
		"protocol", c.Protocol.Name,
		"control_file", c.Path,
		"hex", text)
}

// EncodeRequest validates a request and renders its padded hex text form.
func EncodeRequest(p Protocol, request []int) (string, error) {
	if len(request) == 0 {
		return "", protocolErrorf("%s byte values must at least provide the first 32bit method id", p.Device)
	}

	if request[0] < 0 || int64(request[0]) > MaxMethodID {
		return "", protocolErrorf("%s method id 32bit value must be 0-4294967295", p.Device)
	}

	for _, b := range request[1:] {
		if b < 0 || b > MaxByte {
			return "", protocolErrorf("%s byte values must be 0-255", p.Device)
		}
	}

	size := p.RequestLen
	if len(request) > size {
		size = len(request)
	}

	parts := make([]string, size)
	for i := range parts {
		value := 0
		if i < len(request) {
			value = request[i]
		}
		parts[i] = formatHexByte(value)
	}

	return strings.Join(parts, " "), nil
}

// DecodeResponse parses the hex text of a response into exactly
// p.ResponseLen bytes.
func DecodeResponse(p Protocol, text string) ([]byte, error) {
	tokens := strings.Split(text, " ")

	values := make([]uint64, len(tokens))
	for i, token := range tokens {
		value, err := strconv.ParseUint(token, 16, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, protocolErrorf("%s returned hex byte outside of 0-255 range", p.Name)
			}
			return nil, protocolErrorf("%s returned malformed hex byte %q", p.Name, token)
		}
		values[i] = value
	}

	for _, value := range values {
		if value > MaxByte {
			return nil, protocolErrorf("%s returned hex byte outside of 0-255 range", p.Name)
		}
	}

	if len(values) != p.ResponseLen {
		return nil, protocolErrorf("%s control file did not return an expected %d bytes", p.Name, p.ResponseLen)
	}

	response := make([]byte, len(values))
	for i, value := range values {
		response[i] = byte(value)
	}

	return response, nil
}

func formatHexByte(value int) string {
	s := strconv.FormatUint(uint64(value), 16)
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}
