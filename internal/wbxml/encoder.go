// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"bufio"
	"io"
	"strings"
)

type pending struct {
	tag     Tag
	written bool
}

// Encoder writes a WBXML document to an underlying writer. It is not safe
// for concurrent use.
type Encoder struct {
	w       *bufio.Writer
	stack   []pending
	page    byte
	started bool
	err     error
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Started reports whether any byte of the document was produced.
func (e *Encoder) Started() bool {
	return e.started
}

// Depth returns the number of currently open elements.
func (e *Encoder) Depth() int {
	return len(e.stack)
}

// Err returns the first write error.
func (e *Encoder) Err() error {
	return e.err
}

// StartTag opens tag. An empty element is written at once without the
// content flag and must not be closed with EndTag; any other element is
// written only when it receives content or a child.
func (e *Encoder) StartTag(tag Tag, empty bool) {
	if empty {
		e.flushPending()
		e.writeTag(tag, false)
		return
	}
	e.stack = append(e.stack, pending{tag: tag})
}

// EndTag closes the innermost open element.
func (e *Encoder) EndTag() {
	if len(e.stack) == 0 {
		return
	}
	top := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if top.written {
		e.writeByte(tokenEnd)
	}
}

// Content writes an inline string into the innermost open element.
func (e *Encoder) Content(s string) {
	e.flushPending()
	e.writeByte(tokenStrI)
	e.writeString(strings.ReplaceAll(s, "\x00", ""))
	e.writeByte(0x00)
}

// Opaque writes raw bytes into the innermost open element.
func (e *Encoder) Opaque(b []byte) {
	e.flushPending()
	e.writeByte(tokenOpaque)
	e.writeMBUint32(uint32(len(b)))
	e.write(b)
}

// Element writes <tag>content</tag>.
func (e *Encoder) Element(tag Tag, content string) {
	e.StartTag(tag, false)
	e.Content(content)
	e.EndTag()
}

// ForceStart puts every pending start tag on the wire, so that an element
// with no children is still emitted.
func (e *Encoder) ForceStart() {
	e.flushPending()
}

// CloseAll closes every open element.
func (e *Encoder) CloseAll() {
	for len(e.stack) > 0 {
		e.EndTag()
	}
}

// Flush writes buffered bytes to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = err
	}
	return e.err
}

func (e *Encoder) flushPending() {
	for i := range e.stack {
		if e.stack[i].written {
			continue
		}
		e.writeTag(e.stack[i].tag, true)
		e.stack[i].written = true
	}
}

func (e *Encoder) writeTag(tag Tag, content bool) {
	if !e.started {
		e.started = true
		e.write(header)
	}
	if tag.Page != e.page {
		e.writeByte(tokenSwitchPage)
		e.writeByte(tag.Page)
		e.page = tag.Page
	}
	token := tag.ID & tagMask
	if content {
		token |= flagContent
	}
	e.writeByte(token)
}

func (e *Encoder) writeMBUint32(v uint32) {
	var buf [5]byte
	i := len(buf) - 1
	buf[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		buf[i] = byte(v&0x7F) | 0x80
	}
	e.write(buf[i:])
}

func (e *Encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	e.err = e.w.WriteByte(b)
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *Encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}
