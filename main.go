// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// nucwmi - NUC WMI LED control
//
// A CLI tool for reading and writing LED settings through the Intel and
// ASUS NUC WMI kernel driver control files.

package main

import (
	"os"

	"github.com/nucwmi/nucwmi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
