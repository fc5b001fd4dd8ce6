// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import (
	"errors"
	"fmt"

	"github.com/nucwmi/nucwmi/pkg/wmi"
)

// OptionKind selects the value table of a control item.
type OptionKind int

const (
	OptBrightness OptionKind = iota
	OptBlinkBehavior
	OptBlinkFrequency
	// OptColor takes the palette of the LED color type.
	OptColor
	// OptColorChannel is a secondary RGB channel, only present on 3 dimensional LEDs.
	OptColorChannel
	OptHDDBehavior
	OptEthernetType
	OptPowerLimitScheme
)

// ControlItem is one tunable setting of an indicator option.
type ControlItem struct {
	Label string
	Kind  OptionKind
}

// ControlItems is the ordered item list of one indicator option and color
// type. The item index is the value exchanged with the firmware.
type ControlItems []ControlItem

// Table returns the item labels as an enumeration table.
func (items ControlItems) Table() wmi.Table {
	t := make(wmi.Table, len(items))
	for i, item := range items {
		t[i] = item.Label
	}
	return t
}

// Index returns the position of the item labelled label.
func (items ControlItems) Index(label string) (int, bool) {
	for i, item := range items {
		if item.Label == label {
			return i, true
		}
	}
	return 0, false
}

func powerStateItems(color bool) ControlItems {
	var items ControlItems
	for _, state := range []string{"S0", "S3", "Modern Standby"} {
		items = append(items,
			ControlItem{state + " Indicator Brightness", OptBrightness},
			ControlItem{state + " Indicator Blinking Behavior", OptBlinkBehavior},
			ControlItem{state + " Indicator Blinking Frequency", OptBlinkFrequency},
		)
		if color {
			items = append(items, ControlItem{state + " Indicator Color", OptColor})
		}
	}
	return items
}

var (
	brightnessItem = ControlItem{"Brightness", OptBrightness}
	colorItem      = ControlItem{"Color", OptColor}
	color2Item     = ControlItem{"Color 2", OptColorChannel}
	color3Item     = ControlItem{"Color 3", OptColorChannel}
	behaviorItem   = ControlItem{"Blinking Behavior", OptBlinkBehavior}
	frequencyItem  = ControlItem{"Blinking Frequency", OptBlinkFrequency}
)

// controlItems is indexed by indicator option then color type. A nil list
// means the combination has no control items.
var controlItems = [][]ControlItems{
	IndicatorPowerState: {
		ColorTypeSingle:    powerStateItems(false),
		ColorTypeBlueAmber: powerStateItems(true),
		ColorTypeBlueWhite: powerStateItems(true),
		ColorTypeRGB:       powerStateItems(true),
	},
	IndicatorHDDActivity: {
		ColorTypeSingle:    {brightnessItem, {"Behavior", OptHDDBehavior}},
		ColorTypeBlueAmber: {brightnessItem, colorItem, {"Behavior", OptHDDBehavior}},
		ColorTypeBlueWhite: {brightnessItem, colorItem, {"Behavior", OptHDDBehavior}},
		ColorTypeRGB:       {brightnessItem, colorItem, {"Behavior", OptHDDBehavior}},
	},
	IndicatorEthernet: {
		ColorTypeSingle:    {brightnessItem, {"Type", OptEthernetType}},
		ColorTypeBlueAmber: {brightnessItem, colorItem, {"Type", OptEthernetType}},
		ColorTypeBlueWhite: {brightnessItem, colorItem, {"Type", OptEthernetType}},
		ColorTypeRGB:       {brightnessItem, colorItem, color2Item, color3Item, {"Type", OptEthernetType}},
	},
	IndicatorWiFi: {
		ColorTypeSingle:    {brightnessItem},
		ColorTypeBlueAmber: {brightnessItem, colorItem},
		ColorTypeBlueWhite: {brightnessItem, colorItem},
		ColorTypeRGB:       {brightnessItem, colorItem, color2Item, color3Item},
	},
	IndicatorSoftware: {
		ColorTypeSingle:    {brightnessItem, behaviorItem, frequencyItem},
		ColorTypeBlueAmber: {brightnessItem, behaviorItem, frequencyItem, colorItem},
		ColorTypeBlueWhite: {brightnessItem, behaviorItem, frequencyItem, colorItem},
		ColorTypeRGB:       {brightnessItem, behaviorItem, frequencyItem, colorItem, color2Item, color3Item},
	},
	IndicatorPowerLimit: {
		ColorTypeSingle:    {{"Indication Scheme", OptPowerLimitScheme}, brightnessItem},
		ColorTypeBlueAmber: {{"Indication Scheme", OptPowerLimitScheme}, brightnessItem, colorItem},
		ColorTypeBlueWhite: {{"Indication Scheme", OptPowerLimitScheme}, brightnessItem, colorItem},
		ColorTypeRGB:       {{"Indication Scheme", OptPowerLimitScheme}, brightnessItem, colorItem, color2Item, color3Item},
	},
	IndicatorDisable: nil,
}

// ControlItemsFor returns the item list of an indicator option on an LED of
// the given color type.
func ControlItemsFor(indicator, colorType int) (ControlItems, error) {
	if indicator < 0 || indicator >= len(controlItems) || colorType < 0 {
		return nil, ErrNoControlItems
	}
	byColor := controlItems[indicator]
	if colorType >= len(byColor) || len(byColor[colorType]) == 0 {
		return nil, ErrNoControlItems
	}
	return byColor[colorType], nil
}

// ControlItemLabels returns every control item label across all indicator
// options and color types, without duplicates.
func ControlItemLabels() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, byColor := range controlItems {
		for _, items := range byColor {
			for _, item := range items {
				if !seen[item.Label] {
					seen[item.Label] = true
					labels = append(labels, item.Label)
				}
			}
		}
	}
	return labels
}

// ErrNoControlItems reports an indicator option without control items.
var ErrNoControlItems = errors.New("No control items are available for the selected LED and indicator option")

// RGBDimensions picks the color dimensionality of an RGB LED. A device spec
// hint wins; otherwise the LED is 3 dimensional when any of its available
// control items is a secondary color channel.
func RGBDimensions(hint int, hinted bool, items ControlItems, available []int) int {
	if hinted {
		return hint
	}
	for _, index := range available {
		if index >= 0 && index < len(items) && items[index].Kind == OptColorChannel {
			return 3
		}
	}
	return 1
}

// Values returns the value table of a control item on an LED of the given
// color type. rgbDimensions only matters for the generic color item of an RGB
// LED.
func (item ControlItem) Values(colorType int, led string, rgbDimensions int) (wmi.Table, error) {
	switch item.Kind {
	case OptBrightness:
		return Brightness, nil
	case OptBlinkBehavior:
		return BlinkBehaviors, nil
	case OptBlinkFrequency:
		return BlinkFrequencies, nil
	case OptHDDBehavior:
		return HDDActivityBehaviors, nil
	case OptEthernetType:
		return EthernetTypes, nil
	case OptPowerLimitScheme:
		return PowerLimitSchemes, nil
	case OptColorChannel:
		return ColorChannel, nil
	case OptColor:
		switch colorType {
		case ColorTypeBlueAmber:
			return ColorsBlueAmber, nil
		case ColorTypeBlueWhite:
			return ColorsBlueWhite, nil
		case ColorTypeRGB:
			if rgbDimensions == 3 {
				return ColorChannel, nil
			}
			return RGBPalette(led), nil
		}
	}
	return nil, fmt.Errorf("control item %q has no values for color type %d", item.Label, colorType)
}
