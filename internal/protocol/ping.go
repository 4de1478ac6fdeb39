// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"io"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
)

// DecodePing reads a Ping request. An empty body is a valid request that
// repeats the previous one.
func DecodePing(r io.Reader) (*models.PingRequest, error) {
	d := wbxml.NewDecoder(r)
	start, ok, err := root(d, wbxml.PingPing)
	if err != nil {
		return nil, err
	}
	req := &models.PingRequest{}
	if !ok {
		return req, nil
	}

	err = elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.PingHeartbeatInterval:
			req.HeartbeatInterval, err = number(d, tok)
		case wbxml.PingFolders:
			err = elements(d, tok, func(tok wbxml.Token) error {
				if tok.Tag != wbxml.PingFolder {
					return errSkip
				}
				f, err := decodePingFolder(d, tok)
				if err != nil {
					return err
				}
				req.Folders = append(req.Folders, f)
				return nil
			})
		default:
			return errSkip
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func decodePingFolder(d *wbxml.Decoder, start wbxml.Token) (models.PingFolder, error) {
	var f models.PingFolder
	err := elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.PingID:
			f.ID, err = text(d, tok)
		case wbxml.PingClass:
			var class string
			class, err = text(d, tok)
			f.Class = models.ContentClass(class)
		default:
			return errSkip
		}
		return err
	})
	return f, err
}

// EncodePing writes a Ping response.
func EncodePing(w io.Writer, resp *models.PingResponse) error {
	e := wbxml.NewEncoder(w)
	e.StartTag(wbxml.PingPing, false)
	e.Element(wbxml.PingStatus, strconv.Itoa(resp.Status))
	if len(resp.Folders) > 0 {
		e.StartTag(wbxml.PingFolders, false)
		for _, id := range resp.Folders {
			e.Element(wbxml.PingFolder, id)
		}
		e.EndTag()
	}
	if resp.HeartbeatInterval > 0 {
		e.Element(wbxml.PingHeartbeatInterval, strconv.Itoa(resp.HeartbeatInterval))
	}
	if resp.MaxFolders > 0 {
		e.Element(wbxml.PingMaxFolders, strconv.Itoa(resp.MaxFolders))
	}
	e.CloseAll()
	return e.Flush()
}
