// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/internal/logging"
	"github.com/nucwmi/nucwmi/pkg/asuswmi"
	"github.com/nucwmi/nucwmi/pkg/nucwmi"
	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// newTransport opens the control file transport. Tests replace it with a
// scripted firmware.
var newTransport = func(path string, protocol wmi.Protocol) wmi.Transport {
	return wmi.NewChannel(path, protocol, logging.GetLogger("wmi"))
}

func logger() *slog.Logger {
	return logging.GetLogger("cli")
}

// session holds the lock file for the whole command, so multi step flows
// never interleave with another process.
type session struct {
	lock      *wmi.FileLock
	transport wmi.Transport
	device    *wmispec.Device
	alias     string
}

// openSession resolves the device spec, then takes the lock. An empty alias
// runs without a device spec, using the default of every function.
func openSession(protocol wmi.Protocol, controlFile, lockFile, alias string) (*session, error) {
	device, err := loadDevice(alias)
	if err != nil {
		return nil, err
	}

	lock, err := protocol.AcquireLock(lockFile, opts.BlockingFileLock)
	if err != nil {
		return nil, err
	}

	logger().Debug("session opened",
		"protocol", protocol.Name,
		"control_file", controlFile,
		"lock_file", lock.Path(),
		"nuc_wmi_spec_alias", alias)

	return &session{
		lock:      lock,
		transport: newTransport(controlFile, protocol),
		device:    device,
		alias:     alias,
	}, nil
}

func (s *session) Close() error {
	return s.lock.Close()
}

func loadDevice(alias string) (*wmispec.Device, error) {
	if alias == "" {
		return nil, nil
	}

	store, err := wmispec.Load(opts.SpecDirs...)
	if err != nil {
		return nil, err
	}
	return store.Device(alias)
}

// asusPaths picks the ASUS control and lock files unless -c or -l were given.
func asusPaths(cmd *cobra.Command) (controlFile, lockFile string) {
	controlFile, lockFile = opts.AsusControlFile, opts.AsusLockFile
	if cmd.Flags().Changed("control-file") {
		controlFile = opts.ControlFile
	}
	if cmd.Flags().Changed("lock-file") {
		lockFile = opts.LockFile
	}
	return controlFile, lockFile
}

// intelFunc runs against an Intel client and returns the JSON payload.
type intelFunc func(c *nucwmi.Client) (object, error)

// runIntel runs fn under one lock and prints its payload tagged with the spec
// alias.
func runIntel(alias string, fn intelFunc) error {
	s, err := openSession(wmi.Legacy, opts.ControlFile, opts.LockFile, alias)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := fn(nucwmi.NewClient(s.transport, s.device))
	if err != nil {
		return err
	}

	result["nuc_wmi_spec_alias"] = alias
	return printJSON(result)
}

// asusFunc runs against an ASUS client and returns the JSON payload.
type asusFunc func(c *asuswmi.Client) (object, error)

func runAsus(cmd *cobra.Command, alias string, fn asusFunc) error {
	controlFile, lockFile := asusPaths(cmd)

	s, err := openSession(wmi.Extended, controlFile, lockFile, alias)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := fn(asuswmi.NewClient(s.transport, s.device))
	if err != nil {
		return err
	}

	if alias != "" {
		result["nuc_wmi_spec_alias"] = alias
	}
	return printJSON(result)
}

// parseLabel converts a user supplied label into its table index.
func parseLabel(table wmi.Table, name, label string) (int, error) {
	index, ok := table.Index(label)
	if !ok {
		return 0, fmt.Errorf("invalid %s %q, expected one of %q", name, label, table.Labels())
	}
	return index, nil
}

// audit records an LED change at info level for the journal.
func audit(function string, args ...any) {
	logger().Info(function, args...)
}
