// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyncKeyInitial is the synckey a device sends for a folder it never synced.
const SyncKeyInitial = "0"

// BodyPreference is a client body-format request.
type BodyPreference struct {
	Type           int  `json:"type"`
	TruncationSize int  `json:"truncation_size,omitempty"`
	AllOrNone      bool `json:"all_or_none,omitempty"`
	Preview        int  `json:"preview,omitempty"`
}

// SyncParameters is the persisted synchronization state of one
// (device, folder) pair.
//
// A collection with NewSyncKey set is pending confirmation: the key was sent
// to the device but the device has not yet echoed it back. Such a collection
// is not considered synchronized up to NewSyncKey.
type SyncParameters struct {
	FolderID        string       `json:"folder_id"`
	BackendFolderID string       `json:"backend_folder_id"`
	ContentClass    ContentClass `json:"class"`

	SyncKey    string `json:"sync_key"`
	NewSyncKey string `json:"new_sync_key,omitempty"`
	// Generation prefixes every synckey issued since the last reset, so a
	// key from before a resync never matches a key issued after it.
	Generation string `json:"generation,omitempty"`

	FilterType      int              `json:"filter_type"`
	Conflict        int              `json:"conflict"`
	MIMESupport     int              `json:"mime_support"`
	TruncationSize  int              `json:"truncation_size"`
	DeletesAsMoves  bool             `json:"deletes_as_moves"`
	BodyPreferences []BodyPreference `json:"body_preferences,omitempty"`
	WindowSize      int              `json:"window_size"`

	FolderStat        string    `json:"folder_stat,omitempty"`
	FolderStatTimeout time.Time `json:"folder_stat_timeout,omitempty"`
	ResumeNeeded      bool      `json:"resume_needed,omitempty"`

	// UUID and UUIDCounter form the concurrency-integrity token. The counter
	// advances on every save; the UUID is replaced when a heartbeat starts
	// watching the folder.
	UUID        string `json:"uuid"`
	UUIDCounter int64  `json:"uuid_counter"`

	Pingable   bool      `json:"pingable"`
	LastSynced time.Time `json:"last_synced,omitempty"`
}

// NewSyncParameters returns parameters for a folder that was never synced.
func NewSyncParameters(folderID, backendFolderID string, class ContentClass) *SyncParameters {
	return &SyncParameters{
		FolderID:        folderID,
		BackendFolderID: backendFolderID,
		ContentClass:    class,
		SyncKey:         SyncKeyInitial,
		Generation:      uuid.NewString(),
	}
}

// HasSyncKey reports whether the folder has a confirmed synckey.
func (p *SyncParameters) HasSyncKey() bool {
	return p.SyncKey != "" && p.SyncKey != SyncKeyInitial
}

// HasNewSyncKey reports whether a synckey is pending confirmation.
func (p *SyncParameters) HasNewSyncKey() bool {
	return p.NewSyncKey != ""
}

// ConfirmNewSyncKey promotes the pending synckey.
func (p *SyncParameters) ConfirmNewSyncKey() {
	if p.NewSyncKey == "" {
		return
	}
	p.SyncKey = p.NewSyncKey
	p.NewSyncKey = ""
}

// Reset drops all progress so the folder synchronizes from scratch. Keys
// issued afterwards belong to a new generation.
func (p *SyncParameters) Reset() {
	p.SyncKey = SyncKeyInitial
	p.NewSyncKey = ""
	p.Generation = uuid.NewString()
	p.InvalidateFolderStat()
	p.ResumeNeeded = false
}

// InvalidateFolderStat forces the next change detection to ask the exporter.
func (p *SyncParameters) InvalidateFolderStat() {
	p.FolderStat = ""
	p.FolderStatTimeout = time.Time{}
}

// FolderStatValid reports whether the recorded fingerprint may be trusted at now.
func (p *SyncParameters) FolderStatValid(now time.Time) bool {
	return p.FolderStat != "" && now.Before(p.FolderStatTimeout)
}

// ExportOptions derives exporter options from the client options.
func (p *SyncParameters) ExportOptions() ExportOptions {
	opts := ExportOptions{
		Class:          p.ContentClass,
		FilterType:     p.FilterType,
		TruncationSize: p.TruncationSize,
		MIMESupport:    p.MIMESupport,
	}
	for _, pref := range p.BodyPreferences {
		if pref.TruncationSize > 0 {
			opts.TruncationSize = pref.TruncationSize
			break
		}
	}
	return opts
}

// SyncKeyFor renders counter as a synckey of the current generation.
func (p *SyncParameters) SyncKeyFor(counter int64) string {
	return FormatSyncKey(p.Generation, counter)
}

// FormatSyncKey renders a collection synckey as {generation}counter. An
// empty generation yields the bare counter.
func FormatSyncKey(generation string, counter int64) string {
	if generation == "" {
		return SyncKeyFromCounter(counter)
	}
	return "{" + generation + "}" + strconv.FormatInt(counter, 10)
}

// ParseSyncKey splits a synckey into its generation and state counter.
// Bare counters have an empty generation.
func ParseSyncKey(syncKey string) (string, int64, bool) {
	var generation string
	if strings.HasPrefix(syncKey, "{") {
		end := strings.IndexByte(syncKey, '}')
		if end < 0 {
			return "", 0, false
		}
		generation, syncKey = syncKey[1:end], syncKey[end+1:]
		if _, err := uuid.Parse(generation); err != nil {
			return "", 0, false
		}
	}
	counter, ok := SyncKeyCounter(syncKey)
	return generation, counter, ok
}

// SyncKeyCounter parses a bare counter synckey.
func SyncKeyCounter(syncKey string) (int64, bool) {
	if syncKey == "" {
		return 0, false
	}
	counter, err := strconv.ParseInt(syncKey, 10, 64)
	if err != nil || counter < 0 {
		return 0, false
	}
	return counter, true
}

// SyncKeyFromCounter renders a state counter as a synckey.
func SyncKeyFromCounter(counter int64) string {
	return strconv.FormatInt(counter, 10)
}
