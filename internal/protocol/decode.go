// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
)

// root consumes the root element. ok is false for an empty body.
func root(d *wbxml.Decoder, tag wbxml.Tag) (wbxml.Token, bool, error) {
	if d.Empty() {
		return wbxml.Token{}, false, nil
	}
	tok, err := d.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return wbxml.Token{}, false, nil
		}
		return wbxml.Token{}, false, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	if tok.Kind != wbxml.KindStart || tok.Tag != tag {
		return wbxml.Token{}, false, fmt.Errorf("%w: want %s, got %s", ErrUnexpectedRoot, tag, tok.Tag)
	}
	return tok, true, nil
}

// elements calls fn for every child element of parent, whose start token
// was just consumed. fn must consume the child completely; returning
// errSkip lets elements skip it instead.
func elements(d *wbxml.Decoder, parent wbxml.Token, fn func(wbxml.Token) error) error {
	if !parent.HasContent {
		return nil
	}
	for {
		tok, err := d.Next()
		if err != nil {
			return fmt.Errorf("%w: inside %s: %w", ErrMalformedRequest, parent.Tag, err)
		}
		switch tok.Kind {
		case wbxml.KindEnd:
			return nil
		case wbxml.KindContent:
			continue
		}

		err = fn(tok)
		if errors.Is(err, errSkip) {
			err = d.Skip(tok)
		}
		if err != nil {
			return err
		}
	}
}

var errSkip = errors.New("skip element")

// text reads the content of an element whose start token was just consumed.
func text(d *wbxml.Decoder, start wbxml.Token) (string, error) {
	if !start.HasContent {
		return "", nil
	}
	var buf bytes.Buffer
	for {
		tok, err := d.Next()
		if err != nil {
			return "", fmt.Errorf("%w: inside %s: %w", ErrMalformedRequest, start.Tag, err)
		}
		switch tok.Kind {
		case wbxml.KindContent:
			buf.Write(tok.Data)
		case wbxml.KindEnd:
			return buf.String(), nil
		default:
			if err := d.Skip(tok); err != nil {
				return "", err
			}
		}
	}
}

func number(d *wbxml.Decoder, start wbxml.Token) (int, error) {
	s, err := text(d, start)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number: %q", ErrMalformedRequest, start.Tag, s)
	}
	return n, nil
}

// flag reads a boolean element: an empty element or any non-zero value is
// true.
func flag(d *wbxml.Decoder, start wbxml.Token) (bool, error) {
	s, err := text(d, start)
	if err != nil {
		return false, err
	}
	return s != "0", nil
}

// properties reads ApplicationData-like content into properties.
func properties(d *wbxml.Decoder, start wbxml.Token) ([]models.Property, error) {
	node, err := d.Tree(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return nodeProperties(node.Children), nil
}

func nodeProperties(nodes []*wbxml.Node) []models.Property {
	props := make([]models.Property, 0, len(nodes))
	for _, n := range nodes {
		p := models.Property{Name: wbxml.TagName(n.Tag)}
		if len(n.Children) > 0 {
			p.Children = nodeProperties(n.Children)
		} else {
			p.Value = string(n.Value)
		}
		props = append(props, p)
	}
	return props
}
