// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-eas-sync/internal/app"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/metrics"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
	"github.com/MKhiriev/go-eas-sync/models"
)

const (
	limiterCacheSize = 16384
	limiterIdleTTL   = 15 * time.Minute
)

// deviceLimiter keeps one token bucket per device. Buckets of devices that
// went quiet are evicted.
type deviceLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

// newDeviceLimiter returns nil when throttling is off.
func newDeviceLimiter(rps float64, burst int) *deviceLimiter {
	if rps <= 0 {
		return nil
	}
	return &deviceLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterCacheSize, nil, limiterIdleTTL),
		rps:      rate.Limit(rps),
		burst:    max(burst, 1),
	}
}

func (d *deviceLimiter) allow(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters.Get(key)
	if !ok {
		l = rate.NewLimiter(d.rps, d.burst)
		d.limiters.Add(key, l)
	}
	return l.Allow()
}

// withThrottle answers 503 with Retry-After to devices over their request
// rate.
func (h *Handler) withThrottle(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc, _ := utils.GetRequestContext(r.Context())
		if !h.limiter.allow(models.DeviceKey(rc.User, rc.DeviceID)) {
			metrics.ReportThrottled()
			logger.FromRequest(r).Warn().Msg("device throttled")
			h.setRetryAfter(w)
			http.Error(w, app.MsgDeviceThrottled, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
