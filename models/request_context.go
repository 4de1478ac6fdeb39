// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"strings"
	"time"
)

// RequestContext carries the identifying fields of one ActiveSync request.
type RequestContext struct {
	Command         string
	User            string
	DeviceID        string
	DeviceType      string
	ProtocolVersion string
	PolicyKey       string
	UserAgent       string
	StartedAt       time.Time
}

// ProtocolAtLeast reports whether the negotiated protocol version is >= v
// (e.g. "14.0").
func (r RequestContext) ProtocolAtLeast(v string) bool {
	return compareVersions(r.ProtocolVersion, v) >= 0
}

func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y int
		if i < len(as) {
			x, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			y, _ = strconv.Atoi(bs[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
