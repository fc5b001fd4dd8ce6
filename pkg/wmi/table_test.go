// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import (
	"errors"
	"reflect"
	"testing"
)

var testFrequencies = Table{"", "1Hz", "0.5Hz", "0.25Hz", "Always on"}

func TestTable_Defined(t *testing.T) {
	if got := testFrequencies.Defined(); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("expected [1 2 3 4], got %v", got)
	}
	if got := testFrequencies.Labels(); !reflect.DeepEqual(got, []string{"1Hz", "0.5Hz", "0.25Hz", "Always on"}) {
		t.Errorf("unexpected labels %v", got)
	}
}

func TestTable_Lookup(t *testing.T) {
	if _, ok := testFrequencies.Label(0); ok {
		t.Error("hole must not resolve to a label")
	}
	if _, ok := testFrequencies.Label(5); ok {
		t.Error("index past end must not resolve")
	}
	if label, ok := testFrequencies.Label(4); !ok || label != "Always on" {
		t.Errorf("expected Always on, got %q", label)
	}
	if index, ok := testFrequencies.Index("0.5Hz"); !ok || index != 2 {
		t.Errorf("expected index 2, got %d", index)
	}
	if _, ok := testFrequencies.Index(""); ok {
		t.Error("empty label must not resolve to a hole")
	}
	if _, ok := testFrequencies.Index("2Hz"); ok {
		t.Error("unknown label must not resolve")
	}
}

func TestNumericTable(t *testing.T) {
	table := NumericTable(100)
	if len(table) != 101 {
		t.Fatalf("expected 101 slots, got %d", len(table))
	}
	if index, ok := table.Index("42"); !ok || index != 42 {
		t.Errorf("expected 42, got %d", index)
	}
}

func TestTable_Check(t *testing.T) {
	if err := testFrequencies.Check("get_led", "frequency", 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := testFrequencies.Check("get_led", "frequency", 0)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if !reflect.DeepEqual(integrity.Valid, []int{1, 2, 3, 4}) {
		t.Errorf("unexpected valid set %v", integrity.Valid)
	}
}

func TestTable_BitmapIndexes(t *testing.T) {
	tests := []struct {
		name     string
		bitmap   uint32
		recover  bool
		expected []int
		wantErr  bool
	}{
		{name: "empty", bitmap: 0, expected: []int{}},
		{name: "defined bits", bitmap: 0b10110, expected: []int{1, 2, 4}},
		{name: "hole is fatal", bitmap: 0b00011, wantErr: true},
		{name: "past end is fatal", bitmap: 1 << 20, wantErr: true},
		{name: "hole recovered", bitmap: 0b00011, recover: true, expected: []int{1}},
		{name: "past end recovered", bitmap: 1<<20 | 1<<3, recover: true, expected: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testFrequencies.BitmapIndexes("query", "frequency", tt.bitmap, tt.recover)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
