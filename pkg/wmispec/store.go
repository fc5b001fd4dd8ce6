// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmispec

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/nucwmi/nucwmi/pkg/wmi"
)

// DefaultOverrideDir holds site specific device specs layered over the
// built-in ones.
const DefaultOverrideDir = "/etc/nucwmi/spec.d"

//go:embed specs/*.toml
var builtin embed.FS

// Store is a loaded set of device specs keyed by alias.
type Store struct {
	devices map[string]*Device
}

// Load parses the built-in specs, then every *.toml file of each existing
// directory in lexical order. A later definition of an alias is merged over
// the earlier one key by key. Missing directories are skipped.
func Load(dirs ...string) (*Store, error) {
	s := &Store{devices: make(map[string]*Device)}

	entries, err := fs.Glob(builtin, "specs/*.toml")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	for _, name := range entries {
		data, err := builtin.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if err := s.parse(name, data); err != nil {
			return nil, err
		}
	}

	for _, dir := range dirs {
		files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
		if err != nil {
			return nil, &wmi.SpecError{Message: fmt.Sprintf("bad spec directory %s: %v", dir, err)}
		}
		sort.Strings(files)
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, &wmi.SpecError{Message: fmt.Sprintf("failed to read %s: %v", path, err)}
			}
			if err := s.parse(path, data); err != nil {
				return nil, err
			}
		}
	}

	for _, d := range s.devices {
		if err := d.validate(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// parse decodes one file and merges its aliases into the store.
func (s *Store) parse(source string, data []byte) error {
	var file map[string]*Device
	if err := toml.Unmarshal(data, &file); err != nil {
		return &wmi.SpecError{Message: fmt.Sprintf("failed to parse %s: %v", source, err)}
	}

	for alias, d := range file {
		if d == nil {
			continue
		}
		d.Alias = alias
		existing, ok := s.devices[alias]
		if !ok {
			s.devices[alias] = d
			continue
		}
		existing.merge(d)
	}
	return nil
}

func (d *Device) merge(other *Device) {
	if other.Description != "" {
		d.Description = other.Description
	}
	d.FunctionReturnType = mergeMap(d.FunctionReturnType, other.FunctionReturnType)
	d.Recover.FunctionOOBReturnValue = mergeMap(d.Recover.FunctionOOBReturnValue, other.Recover.FunctionOOBReturnValue)
	d.RGBColorTypeDimensionsHint = mergeMap(d.RGBColorTypeDimensionsHint, other.RGBColorTypeDimensionsHint)
}

func mergeMap[V any](dst, src map[string]V) map[string]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Device returns the spec of alias.
func (s *Store) Device(alias string) (*Device, error) {
	d, ok := s.devices[alias]
	if !ok {
		return nil, &wmi.SpecError{Alias: alias, Message: "unknown NUC WMI spec alias"}
	}
	return d, nil
}

// Aliases returns every known alias, sorted.
func (s *Store) Aliases() []string {
	aliases := make([]string, 0, len(s.devices))
	for alias := range s.devices {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
