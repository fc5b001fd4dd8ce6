// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package nucwmi

import (
	"fmt"

	"github.com/nucwmi/nucwmi/pkg/wmi"
	"github.com/nucwmi/nucwmi/pkg/wmispec"
)

// Version is a major.minor firmware interface version.
type Version struct {
	Major int
	Minor int

	// Raw holds the whole response when the device spec asks for raw_bytes.
	Raw wmi.Response
}

// String renders the version as "major.minor" with the minor in decimal.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// WMIInterfaceSpecComplianceVersion returns the WMI interface spec version the
// firmware complies with. The response carries the minor byte before the major.
func (c *Client) WMIInterfaceSpecComplianceVersion() (Version, error) {
	spec, response, err := c.call("wmi_interface_spec_compliance_version", intContract,
		[]int{MethodVersion, VersionSpecCompliance})
	if err != nil {
		return Version{}, err
	}

	if spec.ReturnType == wmispec.ReturnRawBytes {
		return Version{Raw: response}, nil
	}

	return Version{Major: int(response.Byte(2)), Minor: int(response.Byte(1))}, nil
}
