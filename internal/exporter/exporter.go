// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package exporter renders LED state as Prometheus metrics in the textfile
// format read by the node_exporter textfile collector.
package exporter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nucwmi"

// Exporter holds one snapshot worth of gauges in a private registry.
type Exporter struct {
	registry *prometheus.Registry

	indicator  *prometheus.GaugeVec
	brightness *prometheus.GaugeVec
	setting    *prometheus.GaugeVec
	version    *prometheus.GaugeVec
	failures   *prometheus.GaugeVec
	timestamp  prometheus.Gauge
}

// New creates an exporter with every metric registered.
func New() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		indicator: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "led_indicator_option_info",
			Help:      "Indicator option currently assigned to each LED",
		}, []string{"led", "indicator_option"}),
		brightness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "led_brightness_percent",
			Help:      "LED brightness in percent",
		}, []string{"led"}),
		setting: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "led_setting_info",
			Help:      "LED setting labels such as color and blink frequency",
		}, []string{"led", "setting", "value"}),
		version: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interface_version_info",
			Help:      "Firmware LED interface version",
		}, []string{"interface", "version"}),
		failures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "function_failed",
			Help:      "Whether the last call of a firmware function failed",
		}, []string{"function"}),
		timestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_snapshot_timestamp_seconds",
			Help:      "Unix time of the last LED snapshot",
		}),
	}

	e.registry.MustRegister(e.indicator, e.brightness, e.setting, e.version, e.failures, e.timestamp)
	return e
}

// Registry exposes the underlying registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// ObserveIndicator records the indicator option of an LED.
func (e *Exporter) ObserveIndicator(led, indicator string) {
	e.indicator.WithLabelValues(led, indicator).Set(1)
}

// ObserveBrightness records the brightness percentage of an LED.
func (e *Exporter) ObserveBrightness(led string, percent int) {
	e.brightness.WithLabelValues(led).Set(float64(percent))
}

// ObserveSetting records a labelled LED setting such as its color.
func (e *Exporter) ObserveSetting(led, setting, value string) {
	e.setting.WithLabelValues(led, setting, value).Set(1)
}

// ObserveVersion records a firmware interface version.
func (e *Exporter) ObserveVersion(iface, version string) {
	e.version.WithLabelValues(iface, version).Set(1)
}

// ObserveResult records whether a firmware function call failed.
func (e *Exporter) ObserveResult(function string, err error) {
	failed := 0.0
	if err != nil {
		failed = 1
	}
	e.failures.WithLabelValues(function).Set(failed)
}

// MarkSnapshot stamps the snapshot time.
func (e *Exporter) MarkSnapshot(t time.Time) {
	e.timestamp.Set(float64(t.Unix()))
}

// WriteTextfile atomically writes every metric to path.
func (e *Exporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
