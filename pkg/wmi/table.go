// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package wmi

import "strconv"

// Table is an ordered enumeration of firmware option labels. The slot index is
// the value exchanged with the firmware. An empty slot is a reserved index that
// is neither a valid selection nor a valid firmware output.
type Table []string

// NumericTable returns a table labelling every index from 0 to max with its
// decimal value, as used for brightness percentages and color channels.
func NumericTable(max int) Table {
	t := make(Table, max+1)
	for i := range t {
		t[i] = strconv.Itoa(i)
	}
	return t
}

// Defined returns the indexes holding a label, in order.
func (t Table) Defined() []int {
	indexes := make([]int, 0, len(t))
	for i, label := range t {
		if label != "" {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// IsDefined reports whether index selects a labelled slot.
func (t Table) IsDefined(index int) bool {
	return index >= 0 && index < len(t) && t[index] != ""
}

// Label returns the label at index.
func (t Table) Label(index int) (string, bool) {
	if !t.IsDefined(index) {
		return "", false
	}
	return t[index], true
}

// Index returns the slot index of label.
func (t Table) Index(label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	for i, l := range t {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

// Labels returns the defined labels, in order.
func (t Table) Labels() []string {
	labels := make([]string, 0, len(t))
	for _, label := range t {
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// Check validates a decoded index against the table, returning an
// *IntegrityError naming the field on failure.
func (t Table) Check(function, field string, index int) error {
	if t.IsDefined(index) {
		return nil
	}
	return &IntegrityError{Function: function, Field: field, Value: index, Valid: t.Defined()}
}

// BitmapIndexes expands a capability bitmap into the indexes of t it selects.
// Bits outside the defined slots are out of band: they are dropped when recover
// is set, otherwise an *IntegrityError is returned.
func (t Table) BitmapIndexes(function, field string, bitmap uint32, recover bool) ([]int, error) {
	indexes := []int{}
	for bit := 0; bit < 32; bit++ {
		if bitmap&(1<<uint(bit)) == 0 {
			continue
		}
		if !t.IsDefined(bit) {
			if recover {
				continue
			}
			return nil, &IntegrityError{Function: function, Field: field, Value: bit, Valid: t.Defined()}
		}
		indexes = append(indexes, bit)
	}
	return indexes, nil
}
