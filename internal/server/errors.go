// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoListeners means that neither the ActiveSync endpoint nor the health
// service got an address and a handler to serve.
var errNoListeners = errors.New("server: nothing to listen on, set SERVER_ADDRESS or SERVER_GRPC_ADDRESS")
