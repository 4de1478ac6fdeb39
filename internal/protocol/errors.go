// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import "errors"

var (
	ErrMalformedRequest = errors.New("malformed request document")
	ErrUnexpectedRoot   = errors.New("unexpected root element")
)
