// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"io"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
)

// DecodeFolderSync reads a FolderSync request.
func DecodeFolderSync(r io.Reader) (*models.FolderSyncRequest, error) {
	d := wbxml.NewDecoder(r)
	start, ok, err := root(d, wbxml.FolderFolderSync)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMalformedRequest
	}

	req := &models.FolderSyncRequest{}
	hasKey := false
	err = elements(d, start, func(tok wbxml.Token) error {
		if tok.Tag != wbxml.FolderSyncKey {
			return errSkip
		}
		var err error
		req.SyncKey, err = text(d, tok)
		hasKey = true
		return err
	})
	if err != nil {
		return nil, err
	}
	if !hasKey {
		return nil, ErrMalformedRequest
	}
	return req, nil
}

// EncodeFolderSync writes a FolderSync response.
func EncodeFolderSync(w io.Writer, resp *models.FolderSyncResponse) error {
	e := wbxml.NewEncoder(w)
	e.StartTag(wbxml.FolderFolderSync, false)
	e.Element(wbxml.FolderStatus, strconv.Itoa(resp.Status))
	if resp.Status == models.FolderSyncStatusSuccess {
		e.Element(wbxml.FolderSyncKey, resp.SyncKey)

		e.StartTag(wbxml.FolderChanges, false)
		e.Element(wbxml.FolderCount, strconv.Itoa(len(resp.Adds)+len(resp.Updates)+len(resp.Deletes)))
		for _, f := range resp.Updates {
			writeFolder(e, wbxml.FolderUpdate, f)
		}
		for _, id := range resp.Deletes {
			e.StartTag(wbxml.FolderDelete, false)
			e.Element(wbxml.FolderServerID, id)
			e.EndTag()
		}
		for _, f := range resp.Adds {
			writeFolder(e, wbxml.FolderAdd, f)
		}
		e.EndTag()
	}
	e.CloseAll()
	return e.Flush()
}

func writeFolder(e *wbxml.Encoder, tag wbxml.Tag, f models.Folder) {
	e.StartTag(tag, false)
	e.Element(wbxml.FolderServerID, f.ID)
	e.Element(wbxml.FolderParentID, f.ParentID)
	e.Element(wbxml.FolderDisplayName, f.Name)
	e.Element(wbxml.FolderType, strconv.Itoa(int(f.Type)))
	e.EndTag()
}
