// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"io"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
)

// DecodeSync reads a Sync request. An empty body yields a request with
// Empty set.
func DecodeSync(r io.Reader) (*models.SyncRequest, error) {
	d := wbxml.NewDecoder(r)
	start, ok, err := root(d, wbxml.AirSyncSync)
	if err != nil {
		return nil, err
	}
	req := &models.SyncRequest{}
	if !ok || !start.HasContent {
		req.Empty = true
		return req, nil
	}

	err = elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.AirSyncCollections:
			req.Collections, err = decodeCollections(d, tok)
		case wbxml.AirSyncWait:
			req.Wait, err = number(d, tok)
			req.HasWait = true
		case wbxml.AirSyncHeartbeatInterval:
			req.HeartbeatInterval, err = number(d, tok)
			req.HasHeartbeat = true
		case wbxml.AirSyncWindowSize:
			req.WindowSize, err = number(d, tok)
		case wbxml.AirSyncPartial:
			req.Partial, err = flag(d, tok)
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

func decodeCollections(d *wbxml.Decoder, start wbxml.Token) ([]models.SyncCollectionRequest, error) {
	var out []models.SyncCollectionRequest
	err := elements(d, start, func(tok wbxml.Token) error {
		if tok.Tag != wbxml.AirSyncCollection {
			return errSkip
		}
		c, err := decodeCollection(d, tok)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

func decodeCollection(d *wbxml.Decoder, start wbxml.Token) (models.SyncCollectionRequest, error) {
	var c models.SyncCollectionRequest
	err := elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.AirSyncSyncKey:
			c.SyncKey, err = text(d, tok)
		case wbxml.AirSyncCollectionID:
			c.CollectionID, err = text(d, tok)
		case wbxml.AirSyncClass:
			var class string
			class, err = text(d, tok)
			c.Class = models.ContentClass(class)
		case wbxml.AirSyncGetChanges:
			var v bool
			v, err = flag(d, tok)
			c.GetChanges = &v
		case wbxml.AirSyncWindowSize:
			c.WindowSize, err = number(d, tok)
		case wbxml.AirSyncDeletesAsMoves:
			var v bool
			v, err = flag(d, tok)
			c.DeletesAsMoves = &v
		case wbxml.AirSyncOptions:
			if c.Options == nil {
				c.Options = &models.SyncOptions{}
			}
			err = decodeOptions(d, tok, c.Options, &c)
		case wbxml.AirSyncCommands:
			c.Commands, err = decodeCommands(d, tok)
		default:
			return errSkip
		}
		return err
	})
	return c, err
}

// decodeOptions merges one Options element into opts. Devices may send
// several (one per class); the collection class is taken from the first.
func decodeOptions(d *wbxml.Decoder, start wbxml.Token, opts *models.SyncOptions, c *models.SyncCollectionRequest) error {
	return elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.AirSyncFilterType:
			opts.FilterType, err = number(d, tok)
			opts.HasFilterType = true
		case wbxml.AirSyncConflict:
			opts.Conflict, err = number(d, tok)
			opts.HasConflict = true
		case wbxml.AirSyncMIMESupport:
			opts.MIMESupport, err = number(d, tok)
		case wbxml.AirSyncMIMETruncation:
			opts.MIMETruncation, err = number(d, tok)
		case wbxml.AirSyncClass:
			var class string
			class, err = text(d, tok)
			if c.Class == "" {
				c.Class = models.ContentClass(class)
			}
		case wbxml.BaseBodyPreference:
			var pref models.BodyPreference
			pref, err = decodeBodyPreference(d, tok)
			opts.BodyPreferences = append(opts.BodyPreferences, pref)
		default:
			return errSkip
		}
		return err
	})
}

func decodeBodyPreference(d *wbxml.Decoder, start wbxml.Token) (models.BodyPreference, error) {
	var pref models.BodyPreference
	err := elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.BaseType:
			pref.Type, err = number(d, tok)
		case wbxml.BaseTruncationSize:
			pref.TruncationSize, err = number(d, tok)
		case wbxml.BaseAllOrNone:
			pref.AllOrNone, err = flag(d, tok)
		default:
			return errSkip
		}
		return err
	})
	return pref, err
}

func decodeCommands(d *wbxml.Decoder, start wbxml.Token) ([]models.ClientCommand, error) {
	var out []models.ClientCommand
	err := elements(d, start, func(tok wbxml.Token) error {
		var kind models.ClientCommandType
		switch tok.Tag {
		case wbxml.AirSyncAdd:
			kind = models.CommandAdd
		case wbxml.AirSyncChange:
			kind = models.CommandChange
		case wbxml.AirSyncDelete:
			kind = models.CommandDelete
		case wbxml.AirSyncFetch:
			kind = models.CommandFetch
		default:
			return errSkip
		}
		cmd, err := decodeCommand(d, tok, kind)
		if err != nil {
			return err
		}
		out = append(out, cmd)
		return nil
	})
	return out, err
}

func decodeCommand(d *wbxml.Decoder, start wbxml.Token, kind models.ClientCommandType) (models.ClientCommand, error) {
	cmd := models.ClientCommand{Type: kind}
	err := elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.AirSyncClientID:
			cmd.ClientID, err = text(d, tok)
		case wbxml.AirSyncServerID:
			cmd.ServerID, err = text(d, tok)
		case wbxml.AirSyncClass:
			var class string
			class, err = text(d, tok)
			cmd.Item.Class = models.ContentClass(class)
		case wbxml.AirSyncApplicationData:
			cmd.Item.Properties, err = properties(d, tok)
		default:
			return errSkip
		}
		return err
	})
	return cmd, err
}
