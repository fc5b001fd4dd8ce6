// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/json"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/nucwmi/nucwmi/pkg/wmi"
)

// stdout receives the JSON result of every command.
var stdout io.Writer = os.Stdout

// indentOutput reports whether stdout is a terminal.
var indentOutput = func() bool {
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// object is one JSON result.
type object = map[string]any

// printJSON writes v as a single JSON object, indented for terminals.
func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	if indentOutput() {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func printError(err error) {
	_ = printJSON(object{"error": err.Error()})
}

// rawBytes renders a raw_bytes response as a JSON array of numbers rather
// than the base64 string encoding/json uses for []byte.
func rawBytes(r wmi.Response) []int {
	out := make([]int, len(r))
	for i, b := range r {
		out[i] = int(b)
	}
	return out
}
