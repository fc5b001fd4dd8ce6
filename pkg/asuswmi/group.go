// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package asuswmi

import (
	"fmt"

	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// GroupAttributes is the full attribute set of the Power Button LED group, as
// indexes into the option tables.
type GroupAttributes struct {
	IndicatorOption     int
	HDDActivityBehavior int
	Color               int
	BlinkBehavior       int
	BlinkFrequency      int
	Brightness          int
	SleepColor          int
	SleepBlinkBehavior  int
	SleepBlinkFrequency int
	SleepBrightness     int

	// Raw holds the whole response when the device spec asks for raw_bytes.
	Raw wmi.Response
}

// GroupField describes one attribute: its name, option table and its fixed
// offsets in the query response and the update request.
type GroupField struct {
	Name         string
	Key          string
	Table        wmi.Table
	QueryOffset  int
	UpdateOffset int

	value func(*GroupAttributes) *int
}

// Value returns a pointer to the field inside a.
func (f GroupField) Value(a *GroupAttributes) *int {
	return f.value(a)
}

// GroupFields lists the attributes in wire order.
var GroupFields = []GroupField{
	{"indicator option", "indicator_option", IndicatorOptions, 27, 28,
		func(a *GroupAttributes) *int { return &a.IndicatorOption }},
	{"HDD activity behavior", "hdd_activity_behavior", HDDActivityBehaviors, 28, 29,
		func(a *GroupAttributes) *int { return &a.HDDActivityBehavior }},
	{"color", "color", Colors, 29, 30,
		func(a *GroupAttributes) *int { return &a.Color }},
	{"blinking behavior", "blinking_behavior", BlinkBehaviors, 30, 31,
		func(a *GroupAttributes) *int { return &a.BlinkBehavior }},
	{"blinking frequency", "blinking_frequency", BlinkFrequencies, 31, 32,
		func(a *GroupAttributes) *int { return &a.BlinkFrequency }},
	{"brightness", "brightness", Brightness, 32, 33,
		func(a *GroupAttributes) *int { return &a.Brightness }},
	{"sleep state color", "sleep_state_color", Colors, 36, 37,
		func(a *GroupAttributes) *int { return &a.SleepColor }},
	{"sleep state blinking behavior", "sleep_state_blinking_behavior", BlinkBehaviors, 37, 38,
		func(a *GroupAttributes) *int { return &a.SleepBlinkBehavior }},
	{"sleep state blinking frequency", "sleep_state_blinking_frequency", BlinkFrequencies, 38, 39,
		func(a *GroupAttributes) *int { return &a.SleepBlinkFrequency }},
	{"sleep state brightness", "sleep_state_brightness", Brightness, 39, 40,
		func(a *GroupAttributes) *int { return &a.SleepBrightness }},
}

// Update request header bytes
const (
	updateHeaderOffset7 = 7
	updateHeaderOffset8 = 8
	updateHeaderValue7  = 0x00
	updateHeaderValue8  = 0x01
)

// QueryLEDGroupAttribute reads every attribute of the Power Button LED group.
// Outputs are not checked against their tables; see ValidateGroupAttributes.
func (c *Client) QueryLEDGroupAttribute() (GroupAttributes, error) {
	spec, response, err := c.call("query_led_group_attribute", intContract,
		[]int{MethodQueryLEDGroupAttribute, FunctionQueryLEDGroupAttribute, 0x00})
	if err != nil {
		return GroupAttributes{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return GroupAttributes{Raw: response}, nil
	}

	var a GroupAttributes
	for _, f := range GroupFields {
		*f.Value(&a) = int(response.Byte(f.QueryOffset))
	}
	return a, nil
}

// UpdateLEDGroupAttribute writes every attribute of the Power Button LED group
// in one request.
func (c *Client) UpdateLEDGroupAttribute(a GroupAttributes) error {
	request := make([]int, wmi.Extended.RequestLen)
	request[0] = MethodUpdateLEDGroupAttribute
	request[1] = FunctionUpdateLEDGroupAttribute
	request[updateHeaderOffset7] = updateHeaderValue7
	request[updateHeaderOffset8] = updateHeaderValue8
	for _, f := range GroupFields {
		request[f.UpdateOffset] = *f.Value(&a)
	}

	_, _, err := c.call("update_led_group_attribute", noneContract, request)
	return err
}

// ValidateGroupAttributes checks every attribute against its table. The error
// names the first offending field, its value and the valid set.
func ValidateGroupAttributes(a GroupAttributes) error {
	for _, f := range GroupFields {
		if err := f.Table.Check("query_led_group_attribute", LED+" "+f.Name, *f.Value(&a)); err != nil {
			if ierr, ok := err.(*wmi.IntegrityError); ok {
				ierr.Interface = wmi.Extended.Interface
			}
			return err
		}
	}
	return nil
}

// Labels maps every attribute to its label, keyed by the JSON field name.
// The attributes must have passed ValidateGroupAttributes.
func (a GroupAttributes) Labels() map[string]string {
	labels := make(map[string]string, len(GroupFields))
	for _, f := range GroupFields {
		labels[f.Key] = f.Table[*f.Value(&a)]
	}
	return labels
}

// ParseGroupAttributes converts labels given in wire order into attributes.
// The error names the field, the rejected label and the valid labels.
func ParseGroupAttributes(labels []string) (GroupAttributes, error) {
	var a GroupAttributes
	if len(labels) != len(GroupFields) {
		return a, fmt.Errorf("expected %d LED group attributes, got %d", len(GroupFields), len(labels))
	}
	for i, f := range GroupFields {
		index, ok := f.Table.Index(labels[i])
		if !ok {
			return a, fmt.Errorf("invalid %s %q, expected one of %q", f.Name, labels[i], f.Table.Labels())
		}
		*f.Value(&a) = index
	}
	return a, nil
}
