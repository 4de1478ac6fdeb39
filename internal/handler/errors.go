// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoTransports is returned by NewHandlers when the configuration enables
// neither the ActiveSync HTTP endpoint nor the gRPC health service.
var errNoTransports = errors.New("handler: neither the ActiveSync endpoint nor the health service is configured")
