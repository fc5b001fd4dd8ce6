// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import (
	"os"

	"golang.org/x/sys/unix"
)

// FileLock is exclusive ownership of the LED control resource, held through a
// flock(2) on a dedicated lock file. Closing it releases the lock.
type FileLock struct {
	file *os.File
}

// AcquireFileLock opens (creating if needed) the lock file and takes an
// exclusive advisory lock on it. Without blocking the call fails immediately
// when another process holds the lock; with blocking it waits with no timeout.
func AcquireFileLock(path string, blocking bool) (*FileLock, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &LockError{Path: path, Err: err}
	}

	how := unix.LOCK_EX
	if !blocking {
		how |= unix.LOCK_NB
	}

	for {
		err = unix.Flock(int(f.Fd()), how)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		f.Close()
		return nil, &LockError{Path: path, Err: err}
	}

	return &FileLock{file: f}, nil
}

// AcquireLock is AcquireFileLock with lock failures reported under the
// protocol's interface name.
func (p Protocol) AcquireLock(path string, blocking bool) (*FileLock, error) {
	lock, err := AcquireFileLock(path, blocking)
	if lerr, ok := err.(*LockError); ok {
		lerr.Interface = p.Interface
	}
	return lock, err
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.file.Name()
}

// Close releases the lock by closing the lock file descriptor.
func (l *FileLock) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
