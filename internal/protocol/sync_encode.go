// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"io"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
)

// SyncWriter streams a Sync response one collection at a time.
type SyncWriter struct {
	enc    *wbxml.Encoder
	opened bool
}

// NewSyncWriter returns a writer producing a Sync response on w.
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{enc: wbxml.NewEncoder(w)}
}

// Started reports whether any part of the response reached the writer.
func (s *SyncWriter) Started() bool {
	return s.enc.Started()
}

// WriteStatus writes a response that consists of a global status only.
// limit is written for statuses that report one.
func (s *SyncWriter) WriteStatus(status, limit int) error {
	s.enc.StartTag(wbxml.AirSyncSync, false)
	s.enc.Element(wbxml.AirSyncStatus, strconv.Itoa(status))
	if limit > 0 {
		s.enc.Element(wbxml.AirSyncLimit, strconv.Itoa(limit))
	}
	s.enc.CloseAll()
	return s.enc.Flush()
}

// WriteCollection appends one collection and flushes it to the client.
func (s *SyncWriter) WriteCollection(c models.SyncCollectionResponse) error {
	if !s.opened {
		s.enc.StartTag(wbxml.AirSyncSync, false)
		s.enc.StartTag(wbxml.AirSyncCollections, false)
		s.opened = true
	}

	e := s.enc
	e.StartTag(wbxml.AirSyncCollection, false)
	if c.Class != "" {
		e.Element(wbxml.AirSyncClass, string(c.Class))
	}
	e.Element(wbxml.AirSyncSyncKey, c.SyncKey)
	e.Element(wbxml.AirSyncCollectionID, c.CollectionID)
	e.Element(wbxml.AirSyncStatus, strconv.Itoa(c.Status))

	if len(c.Responses) > 0 {
		e.StartTag(wbxml.AirSyncResponses, false)
		for _, r := range c.Responses {
			writeCommandResult(e, r)
		}
		e.EndTag()
	}

	if len(c.Changes) > 0 {
		e.StartTag(wbxml.AirSyncCommands, false)
		for _, ch := range c.Changes {
			writeChange(e, ch)
		}
		e.EndTag()
	}

	if c.MoreAvailable {
		e.StartTag(wbxml.AirSyncMoreAvailable, true)
	}
	e.EndTag()

	return e.Flush()
}

// Close finishes the document, also after an aborted stream.
func (s *SyncWriter) Close() error {
	s.enc.CloseAll()
	return s.enc.Flush()
}

func writeCommandResult(e *wbxml.Encoder, r models.CommandResult) {
	var tag wbxml.Tag
	switch r.Type {
	case models.CommandAdd:
		tag = wbxml.AirSyncAdd
	case models.CommandChange:
		tag = wbxml.AirSyncChange
	case models.CommandDelete:
		tag = wbxml.AirSyncDelete
	case models.CommandFetch:
		tag = wbxml.AirSyncFetch
	default:
		return
	}

	e.StartTag(tag, false)
	if r.ClientID != "" {
		e.Element(wbxml.AirSyncClientID, r.ClientID)
	}
	if r.ServerID != "" {
		e.Element(wbxml.AirSyncServerID, r.ServerID)
	}
	e.Element(wbxml.AirSyncStatus, strconv.Itoa(r.Status))
	if r.Item != nil {
		writeApplicationData(e, r.Item.Properties)
	}
	e.EndTag()
}

func writeChange(e *wbxml.Encoder, c models.Change) {
	switch c.Type {
	case models.ChangeAdd:
		e.StartTag(wbxml.AirSyncAdd, false)
	case models.ChangeModify:
		e.StartTag(wbxml.AirSyncChange, false)
	case models.ChangeDelete:
		e.StartTag(wbxml.AirSyncDelete, false)
	case models.ChangeSoftDelete:
		e.StartTag(wbxml.AirSyncSoftDelete, false)
	default:
		return
	}
	e.Element(wbxml.AirSyncServerID, c.ServerID)
	if c.Type == models.ChangeAdd || c.Type == models.ChangeModify {
		writeApplicationData(e, c.Item.Properties)
	}
	e.EndTag()
}

func writeApplicationData(e *wbxml.Encoder, props []models.Property) {
	e.StartTag(wbxml.AirSyncApplicationData, false)
	// an item without known properties still needs the element
	e.ForceStart()
	writeProperties(e, props)
	e.EndTag()
}

// writeProperties drops properties whose tag is not known to the codec.
func writeProperties(e *wbxml.Encoder, props []models.Property) {
	for _, p := range props {
		tag, ok := wbxml.ParseTag(p.Name)
		if !ok {
			continue
		}
		if len(p.Children) > 0 {
			e.StartTag(tag, false)
			writeProperties(e, p.Children)
			e.EndTag()
			continue
		}
		e.Element(tag, p.Value)
	}
}
