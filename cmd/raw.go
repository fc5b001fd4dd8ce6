// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nucwmi/nucwmi/pkg/asuswmi"
	"github.com/nucwmi/nucwmi/pkg/nucwmi"
	"github.com/nucwmi/nucwmi/pkg/wmi"
)

var rawAsus bool

var rawCmd = &cobra.Command{
	Use:   "raw <method_id> [byte...]",
	Short: "Send raw request bytes and print the response",
	Long: `Send an arbitrary request to the control file and print the response bytes.

Values are hexadecimal. The method id may be up to 32 bits; every other value
is one byte. The request is zero padded to the protocol length. A non-zero
status byte is still reported as an error.

Example:
  nucwmi raw 09 00
  nucwmi raw --asus 101 01 00`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRaw,
}

func init() {
	rawCmd.Flags().BoolVar(&rawAsus, "asus", false, "Use the ASUS NUC WMI control file and protocol")
	rootCmd.AddCommand(rawCmd)
}

// parseRawRequest parses hexadecimal request values.
func parseRawRequest(args []string) ([]int, error) {
	request := make([]int, len(args))
	for i, arg := range args {
		value, err := strconv.ParseUint(strings.TrimPrefix(arg, "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid hex value %q", arg)
		}
		request[i] = int(value)
	}
	return request, nil
}

func runRaw(cmd *cobra.Command, args []string) error {
	request, err := parseRawRequest(args)
	if err != nil {
		return err
	}

	protocol, controlFile, lockFile := wmi.Legacy, opts.ControlFile, opts.LockFile
	if rawAsus {
		protocol = wmi.Extended
		controlFile, lockFile = asusPaths(cmd)
	}

	s, err := openSession(protocol, controlFile, lockFile, "")
	if err != nil {
		return err
	}
	defer s.Close()

	var response wmi.Response
	if rawAsus {
		response, err = asuswmi.NewClient(s.transport, nil).Raw(request)
	} else {
		response, err = nucwmi.NewClient(s.transport, nil).Raw(request)
	}
	if err != nil {
		return err
	}
	audit("raw", "protocol", protocol.Name, "request", args)

	return printJSON(object{"raw": object{
		"protocol": protocol.Name,
		"request":  request,
		"response": rawBytes(response),
	}})
}
