// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAcquireFileLock_NonBlockingContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nuc_wmi.lock")

	held, err := AcquireFileLock(path, false)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer held.Close()

	// flock locks belong to the open file description, so a second open
	// contends even within one process
	_, err = AcquireFileLock(path, false)
	var lockErr *LockError
	if !errors.As(err, &lockErr) {
		t.Fatalf("expected LockError, got %v", err)
	}
	if lockErr.Path != path {
		t.Errorf("expected path %q, got %q", path, lockErr.Path)
	}
	if !strings.HasPrefix(err.Error(), "Error (NUC WMI failed to acquire lock file "+path) {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAcquireFileLock_ReleasedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nuc_wmi.lock")

	first, err := AcquireFileLock(path, false)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if first.Path() != path {
		t.Errorf("expected path %q, got %q", path, first.Path())
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := AcquireFileLock(path, false)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	second.Close()

	// Double close is harmless
	if err := second.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestAcquireFileLock_BlockingWaits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nuc_wmi.lock")

	held, err := AcquireFileLock(path, false)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	acquired := make(chan error, 1)
	go func() {
		l, err := AcquireFileLock(path, true)
		if err == nil {
			l.Close()
		}
		acquired <- err
	}()

	select {
	case err := <-acquired:
		t.Fatalf("blocking acquire returned while lock held: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	held.Close()

	select {
	case err := <-acquired:
		if err != nil {
			t.Fatalf("blocking acquire: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("blocking acquire did not return after release")
	}
}

func TestAcquireFileLock_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "nuc_wmi.lock")

	_, err := AcquireFileLock(path, false)
	var lockErr *LockError
	if !errors.As(err, &lockErr) {
		t.Fatalf("expected LockError, got %v", err)
	}
}

func TestProtocolAcquireLock_InterfaceName(t *testing.T) {
	tests := []struct {
		protocol Protocol
		prefix   string
	}{
		{Legacy, "Error (NUC WMI failed to acquire lock file "},
		{Extended, "Error (ASUS NUC WMI failed to acquire lock file "},
	}

	for _, tt := range tests {
		t.Run(tt.protocol.Name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nuc_wmi.lock")

			held, err := tt.protocol.AcquireLock(path, false)
			if err != nil {
				t.Fatalf("first acquire: %v", err)
			}
			defer held.Close()

			_, err = tt.protocol.AcquireLock(path, false)
			var lockErr *LockError
			if !errors.As(err, &lockErr) {
				t.Fatalf("expected LockError, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tt.prefix+path) {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}
