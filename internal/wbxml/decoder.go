// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Kind is the kind of a decoded token.
type Kind int

const (
	KindStart Kind = iota + 1
	KindEnd
	KindContent
)

// Token is one decoded unit of a document.
type Token struct {
	Kind Kind
	// Tag is set for KindStart. KindEnd carries the tag of the element it
	// closes.
	Tag Tag
	// HasContent is false for self-closed start tags.
	HasContent bool
	// Data holds the payload of a KindContent token; Opaque marks binary
	// payloads.
	Data   []byte
	Opaque bool
}

// Decoder reads a WBXML document token by token.
type Decoder struct {
	r           *bufio.Reader
	page        byte
	strtbl      []byte
	headerRead  bool
	stack       []Tag
	unread      []Token
	maxContent  int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r), maxContent: 32 << 20}
}

// Empty reports whether the stream holds no document at all.
func (d *Decoder) Empty() bool {
	if d.headerRead || len(d.unread) > 0 {
		return false
	}
	_, err := d.r.Peek(1)
	return errors.Is(err, io.EOF)
}

// Next returns the next token. io.EOF is returned once the root element has
// been closed or the stream ends between tokens at depth zero.
func (d *Decoder) Next() (Token, error) {
	if n := len(d.unread); n > 0 {
		tok := d.unread[n-1]
		d.unread = d.unread[:n-1]
		d.track(tok)
		return tok, nil
	}

	if !d.headerRead {
		if err := d.readHeader(); err != nil {
			return Token{}, err
		}
	}

	tok, err := d.readToken()
	if err != nil {
		return Token{}, err
	}
	d.track(tok)
	return tok, nil
}

// Peek returns the next token without consuming it.
func (d *Decoder) Peek() (Token, error) {
	tok, err := d.Next()
	if err != nil {
		return Token{}, err
	}
	d.Unget(tok)
	return tok, nil
}

// Unget pushes tok back so that the following Next returns it.
func (d *Decoder) Unget(tok Token) {
	d.untrack(tok)
	d.unread = append(d.unread, tok)
}

// Start consumes the start of tag if it is the next token. It reports false
// and consumes nothing otherwise.
func (d *Decoder) Start(tag Tag) (Token, bool, error) {
	tok, err := d.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, false, nil
		}
		return Token{}, false, err
	}
	if tok.Kind != KindStart || tok.Tag != tag {
		d.Unget(tok)
		return Token{}, false, nil
	}
	return tok, true, nil
}

// End consumes the end token of the innermost open element.
func (d *Decoder) End() error {
	tok, err := d.Next()
	if err != nil {
		return err
	}
	if tok.Kind != KindEnd {
		return fmt.Errorf("%w: expected end, got %s", ErrUnexpectedToken, describe(tok))
	}
	return nil
}

// Content consumes a content token if it is next.
func (d *Decoder) Content() ([]byte, bool, error) {
	tok, err := d.Next()
	if err != nil {
		return nil, false, err
	}
	if tok.Kind != KindContent {
		d.Unget(tok)
		return nil, false, nil
	}
	return tok.Data, true, nil
}

// Element reads <tag>value</tag> if tag is next. Self-closed and empty
// elements yield an empty value. Consecutive content tokens are joined.
func (d *Decoder) Element(tag Tag) (string, bool, error) {
	tok, ok, err := d.Start(tag)
	if err != nil || !ok {
		return "", false, err
	}
	if !tok.HasContent {
		return "", true, nil
	}

	var buf bytes.Buffer
	for {
		data, ok, err := d.Content()
		if err != nil {
			return "", false, err
		}
		if !ok {
			break
		}
		buf.Write(data)
	}
	if err := d.End(); err != nil {
		return "", false, err
	}
	return buf.String(), true, nil
}

// Skip discards the rest of the element whose start token was just read.
func (d *Decoder) Skip(start Token) error {
	if !start.HasContent {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: unterminated %s", ErrMalformed, start.Tag)
			}
			return err
		}
		switch {
		case tok.Kind == KindStart && tok.HasContent:
			depth++
		case tok.Kind == KindEnd:
			depth--
		}
	}
	return nil
}

// Node is an element read by Tree.
type Node struct {
	Tag      Tag
	Value    []byte
	Opaque   bool
	Children []*Node
}

// Tree reads the rest of the element whose start token was just read.
func (d *Decoder) Tree(start Token) (*Node, error) {
	node := &Node{Tag: start.Tag}
	if !start.HasContent {
		return node, nil
	}
	for {
		tok, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: unterminated %s", ErrMalformed, start.Tag)
			}
			return nil, err
		}
		switch tok.Kind {
		case KindEnd:
			return node, nil
		case KindContent:
			node.Value = append(node.Value, tok.Data...)
			node.Opaque = node.Opaque || tok.Opaque
		case KindStart:
			child, err := d.Tree(tok)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}
}

func (d *Decoder) track(tok Token) {
	switch {
	case tok.Kind == KindStart && tok.HasContent:
		d.stack = append(d.stack, tok.Tag)
	case tok.Kind == KindEnd && len(d.stack) > 0:
		d.stack = d.stack[:len(d.stack)-1]
	}
}

func (d *Decoder) untrack(tok Token) {
	switch {
	case tok.Kind == KindStart && tok.HasContent && len(d.stack) > 0:
		d.stack = d.stack[:len(d.stack)-1]
	case tok.Kind == KindEnd:
		d.stack = append(d.stack, tok.Tag)
	}
}

// readInlineString reads a null-terminated string without its terminator.
func (d *Decoder) readInlineString() ([]byte, error) {
	var s []byte
	for {
		chunk, err := d.r.ReadSlice(0x00)
		if len(s)+len(chunk) > d.maxContent+1 {
			return nil, fmt.Errorf("%w: inline string over %d bytes", ErrTooLarge, d.maxContent)
		}
		s = append(s, chunk...)
		switch {
		case err == nil:
			return s[:len(s)-1], nil
		case errors.Is(err, bufio.ErrBufferFull):
		default:
			return nil, fmt.Errorf("%w: unterminated string", ErrMalformed)
		}
	}
}

func (d *Decoder) readHeader() error {
	v, err := d.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return err
	}
	if v != version && v != 0x02 && v != 0x01 {
		return fmt.Errorf("%w: unsupported version 0x%02X", ErrMalformed, v)
	}
	pid, err := d.readMBUint32()
	if err != nil {
		return err
	}
	if pid == 0 {
		// public id given as a string table index
		if _, err = d.readMBUint32(); err != nil {
			return err
		}
	}
	if _, err = d.readMBUint32(); err != nil {
		return err
	}
	n, err := d.readMBUint32()
	if err != nil {
		return err
	}
	if n > 0 {
		if n > 1<<20 {
			return fmt.Errorf("%w: string table too large", ErrMalformed)
		}
		d.strtbl = make([]byte, n)
		if _, err = io.ReadFull(d.r, d.strtbl); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	d.headerRead = true
	return nil
}

func (d *Decoder) readToken() (Token, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(d.stack) > 0 {
					return Token{}, fmt.Errorf("%w: unexpected end of stream", ErrMalformed)
				}
				return Token{}, io.EOF
			}
			return Token{}, err
		}

		switch b {
		case tokenSwitchPage:
			p, err := d.r.ReadByte()
			if err != nil {
				return Token{}, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			d.page = p
			continue
		case tokenEnd:
			if len(d.stack) == 0 {
				return Token{}, fmt.Errorf("%w: end without start", ErrMalformed)
			}
			return Token{Kind: KindEnd, Tag: d.stack[len(d.stack)-1]}, nil
		case tokenStrI:
			s, err := d.readInlineString()
			if err != nil {
				return Token{}, err
			}
			return Token{Kind: KindContent, Data: s}, nil
		case tokenStrT:
			off, err := d.readMBUint32()
			if err != nil {
				return Token{}, err
			}
			if int(off) >= len(d.strtbl) {
				return Token{}, fmt.Errorf("%w: string table offset %d", ErrMalformed, off)
			}
			s := d.strtbl[off:]
			if i := bytes.IndexByte(s, 0x00); i >= 0 {
				s = s[:i]
			}
			return Token{Kind: KindContent, Data: append([]byte(nil), s...)}, nil
		case tokenEntity:
			r, err := d.readMBUint32()
			if err != nil {
				return Token{}, err
			}
			return Token{Kind: KindContent, Data: utf8.AppendRune(nil, rune(r))}, nil
		case tokenOpaque:
			n, err := d.readMBUint32()
			if err != nil {
				return Token{}, err
			}
			if int64(n) > int64(d.maxContent) {
				return Token{}, fmt.Errorf("%w: opaque of %d bytes", ErrTooLarge, n)
			}
			data := make([]byte, n)
			if _, err = io.ReadFull(d.r, data); err != nil {
				return Token{}, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return Token{Kind: KindContent, Data: data, Opaque: true}, nil
		}

		if b&tagMask < 0x05 || b&flagAttributes != 0 {
			return Token{}, fmt.Errorf("%w: 0x%02X", ErrUnsupportedToken, b)
		}
		tok := Token{
			Kind:       KindStart,
			Tag:        Tag{Page: d.page, ID: b & tagMask},
			HasContent: b&flagContent != 0,
		}
		if tok.HasContent && len(d.stack) >= maxDepth {
			return Token{}, ErrTooDeep
		}
		return tok, nil
	}
}

func (d *Decoder) readMBUint32() (uint32, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: multi-byte integer too long", ErrMalformed)
}

func describe(tok Token) string {
	switch tok.Kind {
	case KindStart:
		return "start " + tok.Tag.String()
	case KindEnd:
		return "end " + tok.Tag.String()
	default:
		return "content"
	}
}
