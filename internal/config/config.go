// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package config loads command options with the precedence
// CLI flag > NUCWMI_* environment variable > TOML file > default.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nucwmi/nucwmi/internal/logging"
	"github.com/nucwmi/nucwmi/pkg/asuswmi"
	"github.com/nucwmi/nucwmi/pkg/nucwmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// DefaultPath is the system wide configuration file.
const DefaultPath = "/etc/nucwmi/config.toml"

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "NUCWMI_"

// Options holds every setting a command may use. Field names map to CLI flag
// names ("ControlFile" -> "control-file").
type Options struct {
	Config string

	ControlFile      string   `toml:"nuc_wmi.control_file" env:"CONTROL_FILE"`
	LockFile         string   `toml:"nuc_wmi.lock_file" env:"LOCK_FILE"`
	AsusControlFile  string   `toml:"asus_nuc_wmi.control_file" env:"ASUS_CONTROL_FILE"`
	AsusLockFile     string   `toml:"asus_nuc_wmi.lock_file" env:"ASUS_LOCK_FILE"`
	BlockingFileLock bool     `toml:"lock.blocking" env:"BLOCKING_FILE_LOCK"`
	Debug            bool     `toml:"logging.debug" env:"DEBUG"`
	SpecDirs         []string `toml:"spec.dirs" env:"SPEC_DIRS"`
	ExportTextfile   string   `toml:"export.textfile" env:"EXPORT_TEXTFILE"`
	MonitorInterval  int      `toml:"monitor.interval_seconds" env:"MONITOR_INTERVAL"`
}

// Defaults returns the built-in option values.
func Defaults() Options {
	return Options{
		Config:          DefaultPath,
		ControlFile:     nucwmi.ControlFile,
		LockFile:        nucwmi.LockFile(),
		AsusControlFile: asuswmi.ControlFile,
		AsusLockFile:    asuswmi.LockFile(),
		SpecDirs:        []string{wmispec.DefaultOverrideDir},
		ExportTextfile:  "/var/lib/prometheus/node-exporter/nucwmi.prom",
		MonitorInterval: 2,
	}
}

// LoadConfig loads configuration with proper precedence: CLI args > env vars > config file.
// If cmd is provided, flags explicitly set via CLI will not be overwritten.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	changedFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changedFlags[f.Name] = true
			}
		})
	}

	var configPath string
	if field := v.FieldByName("Config"); field.IsValid() {
		configPath = field.String()
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			var config map[string]any
			if err := toml.Unmarshal(data, &config); err != nil {
				return fmt.Errorf("failed to parse TOML config %s: %w", configPath, err)
			}

			for i := 0; i < v.NumField(); i++ {
				fieldType := t.Field(i)
				if changedFlags[fieldNameToFlag(fieldType.Name)] {
					continue
				}
				if tomlPath := fieldType.Tag.Get("toml"); tomlPath != "" {
					if value := getNestedValue(config, tomlPath); value != nil {
						setFieldValue(v.Field(i), value)
					}
				}
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if changedFlags[fieldNameToFlag(fieldType.Name)] {
			continue
		}
		if envKey := fieldType.Tag.Get("env"); envKey != "" {
			if envValue := os.Getenv(EnvPrefix + envKey); envValue != "" {
				setFieldValueFromString(v.Field(i), envValue)
			}
		}
	}

	return nil
}

// LoadLoggingConfig reads the [logging] table of a TOML config file.
// Returns default config if file doesn't exist or can't be parsed.
func LoadLoggingConfig(configPath string) logging.Config {
	cfg := logging.Config{
		Level:   "warn",
		Format:  "text",
		Modules: make(map[string]string),
	}

	if configPath == "" {
		return cfg
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg
	}

	var raw struct {
		Logging logging.Config `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg
	}

	if raw.Logging.Level != "" {
		cfg.Level = raw.Logging.Level
	}
	if raw.Logging.Format != "" {
		cfg.Format = raw.Logging.Format
	}
	cfg.Journal = raw.Logging.Journal
	for module, level := range raw.Logging.Modules {
		cfg.Modules[module] = level
	}

	return cfg
}

// fieldNameToFlag converts a struct field name to a CLI flag name.
// Example: "BlockingFileLock" -> "blocking-file-lock", "Debug" -> "debug".
func fieldNameToFlag(fieldName string) string {
	var result []rune
	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '-')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// getNestedValue retrieves a value from nested map using dot notation.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// setFieldValue sets a field value from a decoded TOML value.
func setFieldValue(field reflect.Value, value any) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			field.SetString(s)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Int:
		if i, ok := value.(int64); ok {
			field.SetInt(i)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		if arr, ok := value.([]any); ok {
			slice := make([]string, 0, len(arr))
			for _, item := range arr {
				if s, ok := item.(string); ok {
					slice = append(slice, s)
				}
			}
			field.Set(reflect.ValueOf(slice))
		}
	}
}

// setFieldValueFromString sets a field value from an environment variable.
func setFieldValueFromString(field reflect.Value, value string) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	case reflect.Int:
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			slice := make([]string, len(parts))
			for i, part := range parts {
				slice[i] = strings.TrimSpace(part)
			}
			field.Set(reflect.ValueOf(slice))
		}
	}
}
