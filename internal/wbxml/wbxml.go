// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

// Global tokens.
const (
	tokenSwitchPage byte = 0x00
	tokenEnd        byte = 0x01
	tokenEntity     byte = 0x02
	tokenStrI       byte = 0x03
	tokenStrT       byte = 0x83
	tokenOpaque     byte = 0xC3

	flagContent    byte = 0x40
	flagAttributes byte = 0x80
	tagMask        byte = 0x3F
)

const (
	version   byte = 0x03
	publicID  byte = 0x01
	charsetUT byte = 0x6A
)

// header is the fixed document preamble written by the Encoder.
var header = []byte{version, publicID, charsetUT, 0x00}

const maxDepth = 64
