// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import (
	"fmt"
	"strings"
)

// IOError reports that the control file or lock file could not be accessed.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("Error (NUC WMI failed to %s %s: %v)", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ProtocolError reports malformed hex text, an out of range byte value or a
// wrong byte count, in either direction.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "Error (" + e.Message + ")"
}

func protocolErrorf(format string, args ...any) *ProtocolError {
	return &ProtocolError{Message: fmt.Sprintf(format, args...)}
}

// FirmwareError is a non-zero status byte returned by the firmware.
type FirmwareError struct {
	Code uint8
}

// Error returns the catalog description of the status code.
func (e *FirmwareError) Error() string {
	return Describe(e.Code)
}

// IntegrityError reports a successfully decoded response carrying an
// enumeration index outside of its table. Interface defaults to "NUC WMI".
type IntegrityError struct {
	Interface string
	Function  string
	Field     string
	Value     int
	Valid     []int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("Error (%s %s function returned invalid %s of %d, expected one of %s)",
		interfaceName(e.Interface), e.Function, e.Field, e.Value, formatIndexes(e.Valid))
}

// SpecError reports a missing, malformed or incompatible device specification.
type SpecError struct {
	Alias    string
	Function string
	Message  string
}

func (e *SpecError) Error() string {
	switch {
	case e.Alias != "" && e.Function != "":
		return fmt.Sprintf("Error (NUC WMI spec %s: %s: %s)", e.Alias, e.Function, e.Message)
	case e.Alias != "":
		return fmt.Sprintf("Error (NUC WMI spec %s: %s)", e.Alias, e.Message)
	default:
		return fmt.Sprintf("Error (NUC WMI spec: %s)", e.Message)
	}
}

// LockError reports that the lock file could not be locked. Interface
// defaults to "NUC WMI".
type LockError struct {
	Interface string
	Path      string
	Err       error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("Error (%s failed to acquire lock file %s: %v)", interfaceName(e.Interface), e.Path, e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}

func interfaceName(name string) string {
	if name == "" {
		return Legacy.Interface
	}
	return name
}

// formatIndexes renders an index set as "[0, 1, 2]".
func formatIndexes(indexes []int) string {
	parts := make([]string, len(indexes))
	for i, index := range indexes {
		parts[i] = fmt.Sprintf("%d", index)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
