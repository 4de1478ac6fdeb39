// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/go-resty/resty/v2"
)

// mapRequestError wraps transport failures; a store that cannot be reached
// is unavailable, not broken.
func mapRequestError(op string, err error) error {
	return fmt.Errorf("%s request: %w: %w", op, backend.ErrUnavailable, err)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", backend.ErrAuthFailed, body)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", backend.ErrNotFound, body)
	case code == http.StatusConflict:
		return fmt.Errorf("%w: %s", backend.ErrConflict, body)
	case code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", backend.ErrStateCorrupt, body)
	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", backend.ErrUnavailable, code, body)
	default:
		if body == "" {
			body = http.StatusText(code)
		}
		return fmt.Errorf("http %d: %s", code, body)
	}
}
