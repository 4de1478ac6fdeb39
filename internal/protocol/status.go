// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"io"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
)

type statusShape struct {
	root   wbxml.Tag
	status wbxml.Tag
}

var statusShapes = map[string]statusShape{
	"Sync":       {wbxml.AirSyncSync, wbxml.AirSyncStatus},
	"Ping":       {wbxml.PingPing, wbxml.PingStatus},
	"Provision":  {wbxml.ProvisionProvision, wbxml.ProvisionStatus},
	"FolderSync": {wbxml.FolderFolderSync, wbxml.FolderStatus},
}

// EncodeStatus writes <Command><Status>code</Status></Command> for cmd. It
// reports false for commands without a known document shape.
func EncodeStatus(w io.Writer, cmd string, code int) (bool, error) {
	shape, ok := statusShapes[cmd]
	if !ok {
		return false, nil
	}
	e := wbxml.NewEncoder(w)
	e.StartTag(shape.root, false)
	e.Element(shape.status, strconv.Itoa(code))
	e.CloseAll()
	return true, e.Flush()
}
