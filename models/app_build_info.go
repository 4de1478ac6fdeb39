// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// BuildInfo identifies the running server build. It is printed at startup,
// served by GET /version and its Version is announced to devices in the
// MS-Server-ActiveSync header.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewBuildInfo fills unknown fields with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
