// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package asuswmi

import "github.com/nucwmi/nucwmi/pkg/wmi"

// LED is the only LED the group attribute functions address.
const LED = "Power Button LED"

// Option tables
var (
	IndicatorOptions = wmi.Table{
		"Disable",
		"Power State Indicator",
		"HDD Activity Indicator",
		"Software Indicator",
	}

	HDDActivityBehaviors = wmi.Table{
		"Normally OFF, ON when active",
		"Normally ON, OFF when active",
	}

	Colors = wmi.Table{"Black", "Blue", "Green", "Cyan", "Red", "Magenta", "Amber", "White"}

	BlinkBehaviors = wmi.Table{"Solid", "Breathing", "Pulsing", "Strobing"}

	BlinkFrequencies = wmi.Table{
		"0Hz",
		"0.1Hz", "0.2Hz", "0.3Hz", "0.4Hz", "0.5Hz",
		"0.6Hz", "0.7Hz", "0.8Hz", "0.9Hz", "1.0Hz",
	}

	Brightness = wmi.NumericTable(100)
)
