// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed        = errors.New("wbxml: malformed document")
	ErrUnsupportedToken = errors.New("wbxml: unsupported token")
	ErrUnexpectedToken  = errors.New("wbxml: unexpected token")
	ErrTooDeep          = errors.New("wbxml: nesting too deep")
	ErrEncoderClosed    = errors.New("wbxml: encoder closed")
	// ErrTooLarge is a malformed document whose string or opaque content
	// exceeds the decoder limit.
	ErrTooLarge = fmt.Errorf("%w: content too large", ErrMalformed)
)
