// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import "github.com/nucwmi/nucwmi/pkg/wmi"

// ============================================================
// Legacy LED interface (get_led / set_led)
// ============================================================

// LegacyLEDTypes are the LEDs addressed by get_led and set_led.
var LegacyLEDTypes = wmi.Table{
	"",
	"S0 Power LED",
	"S0 Ring LED",
}

// LegacyBrightness is a 0-100 percentage.
var LegacyBrightness = wmi.NumericTable(100)

// LegacyFrequencies are the blink frequencies of the legacy interface.
var LegacyFrequencies = wmi.Table{
	"",
	"1Hz",
	"0.5Hz",
	"0.25Hz",
	"Always on",
}

// Legacy colors per LED
var (
	LegacyColorsBlueAmber = wmi.Table{"Off", "Blue", "Amber"}
	LegacyColorsRGB       = wmi.Table{"Off", "Cyan", "Pink", "Yellow", "Blue", "Red", "Green", "White"}
)

// LegacyColors returns the color table of a legacy LED.
func LegacyColors(led int) (wmi.Table, bool) {
	switch led {
	case LegacyS0PowerLED:
		return LegacyColorsBlueAmber, true
	case LegacyS0RingLED:
		return LegacyColorsRGB, true
	default:
		return nil, false
	}
}

// Legacy LED indexes
const (
	LegacyS0PowerLED = 1
	LegacyS0RingLED  = 2
)

// ============================================================
// Indicator option / control item interface
// ============================================================

// LEDTypes are the LEDs addressed by the query, get and set functions.
var LEDTypes = wmi.Table{
	"Power Button LED",
	"HDD LED",
	"Skull LED",
	"Eyes LED",
	"Front LED1",
	"Front LED2",
	"Front LED3",
	"RGB Header",
}

// Indicator options
const (
	IndicatorPowerState = iota
	IndicatorHDDActivity
	IndicatorEthernet
	IndicatorWiFi
	IndicatorSoftware
	IndicatorPowerLimit
	IndicatorDisable
)

// IndicatorOptions are the roles an LED can be assigned.
var IndicatorOptions = wmi.Table{
	"Power State Indicator",
	"HDD Activity Indicator",
	"Ethernet Indicator",
	"WiFi Indicator",
	"Software Indicator",
	"Power Limit Indicator",
	"Disable",
}

// Color types
const (
	ColorTypeSingle = iota
	ColorTypeBlueAmber
	ColorTypeBlueWhite
	ColorTypeRGB
)

// ColorTypes are the color capabilities an LED reports.
var ColorTypes = wmi.Table{
	"Single-color LED",
	"Dual-color Blue / Amber",
	"Dual-color Blue / White",
	"RGB-color",
}

// LEDColorGroups are the LED groups switch_led_type selects between.
var LEDColorGroups = wmi.Table{
	"Single color LED",
	"Multi color LED",
}

// Control item option tables
var (
	Brightness     = wmi.NumericTable(100)
	BlinkBehaviors = wmi.Table{"Solid", "Breathing", "Pulsing", "Strobing"}

	BlinkFrequencies = wmi.Table{
		"",
		"0.1Hz", "0.2Hz", "0.3Hz", "0.4Hz", "0.5Hz",
		"0.6Hz", "0.7Hz", "0.8Hz", "0.9Hz", "1.0Hz",
	}

	HDDActivityBehaviors = wmi.Table{
		"Normally OFF, ON when active",
		"Normally ON, OFF when active",
	}

	EthernetTypes = wmi.Table{"LAN1", "LAN2", "LAN1 + LAN2"}

	PowerLimitSchemes = wmi.Table{"Green to Red", "Single Color"}

	// ColorChannel is one 8 bit component of a 3 dimensional RGB color.
	ColorChannel = wmi.NumericTable(255)
)

// Dual color palettes
var (
	ColorsBlueAmber = wmi.Table{"Blue", "Amber"}
	ColorsBlueWhite = wmi.Table{"Blue", "White"}
)

// 1 dimensional RGB palettes. The HDD LED and the RGB header reserve the
// slots they cannot display.
var (
	rgbPalette = wmi.Table{"Blue", "Red", "Green", "Cyan", "Pink", "Yellow", "White"}

	rgbPalettes = map[string]wmi.Table{
		"HDD LED":    {"Blue", "Red", "Green", "", "", "Yellow", "White"},
		"RGB Header": {"Red", "Green", "Blue", "", "", "", "White"},
	}
)

// RGBPalette returns the 1 dimensional RGB palette of an LED.
func RGBPalette(led string) wmi.Table {
	if palette, ok := rgbPalettes[led]; ok {
		return palette
	}
	return rgbPalette
}
