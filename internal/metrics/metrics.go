// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the server. Collectors
// are registered with the default registry on package initialization and
// exposed by the /metrics route.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace is the namespace all metrics are defined under.
const Namespace = "eas"

// NewCounter creates a counter vector under the global namespace.
func NewCounter(name, subsystem, help string, labels []string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help}, labels)
}

// NewGauge creates a gauge vector under the global namespace.
func NewGauge(name, subsystem, help string, labels []string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help}, labels)
}

// NewHistogramWithBuckets creates a histogram vector with custom buckets.
func NewHistogramWithBuckets(name, subsystem, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets}, labels)
}

var (
	commandsTotal = NewCounter("commands_total", "http",
		"Handled ActiveSync commands by command and HTTP status", []string{"cmd", "code"})

	commandDuration = NewHistogramWithBuckets("command_duration_seconds", "http",
		"Time spent handling one command; long-poll commands included", []string{"cmd"},
		prometheus.ExponentialBuckets(0.005, 4, 10))

	throttledTotal = NewCounter("throttled_total", "http",
		"Requests rejected by per-device throttling", nil)

	changesExported = NewCounter("changes_exported_total", "sync",
		"Backend changes streamed to devices", []string{"class"})

	changesImported = NewCounter("changes_imported_total", "sync",
		"Device changes applied to the backend", []string{"type", "status"})

	moreAvailable = NewCounter("more_available_total", "sync",
		"Collections answered with MoreAvailable", []string{"reason"})

	pingResults = NewCounter("results_total", "ping",
		"Heartbeat outcomes", []string{"result"})

	activeHeartbeats = NewGauge("active", "ping",
		"Heartbeats currently waiting", nil)

	janitorRemoved = NewCounter("devices_removed_total", "janitor",
		"Idle devices whose state was removed", nil)
)

// ReportCommand records one handled command.
func ReportCommand(cmd string, code int, elapsed time.Duration) {
	commandsTotal.WithLabelValues(cmd, strconv.Itoa(code)).Inc()
	commandDuration.WithLabelValues(cmd).Observe(elapsed.Seconds())
}

func ReportThrottled() {
	throttledTotal.WithLabelValues().Inc()
}

// ReportExported records n changes streamed for a collection of class.
func ReportExported(class string, n int) {
	if n > 0 {
		changesExported.WithLabelValues(class).Add(float64(n))
	}
}

func ReportImported(kind string, status int) {
	changesImported.WithLabelValues(kind, strconv.Itoa(status)).Inc()
}

// ReportMoreAvailable records why an export stopped before the end:
// "window", "global_window" or "budget".
func ReportMoreAvailable(reason string) {
	moreAvailable.WithLabelValues(reason).Inc()
}

func ReportPing(result string) {
	pingResults.WithLabelValues(result).Inc()
}

// HeartbeatStarted increments the active heartbeat gauge and returns the
// function that decrements it.
func HeartbeatStarted() func() {
	g := activeHeartbeats.WithLabelValues()
	g.Inc()
	return g.Dec
}

func ReportJanitorRemoved(n int) {
	janitorRemoved.WithLabelValues().Add(float64(n))
}
