// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_RoundTrip(t *testing.T) {
	// Arrange
	doc := encode(t, func(e *Encoder) {
		e.StartTag(AirSyncSync, false)
		e.StartTag(AirSyncCollections, false)
		e.StartTag(AirSyncCollection, false)
		e.Element(AirSyncSyncKey, "4")
		e.Element(AirSyncCollectionID, "12")
		e.StartTag(AirSyncGetChanges, true)
		e.StartTag(AirSyncOptions, false)
		e.StartTag(BaseBodyPreference, false)
		e.Element(BaseType, "2")
		e.EndTag()
		e.EndTag()
		e.EndTag()
		e.EndTag()
		e.EndTag()
	})
	d := NewDecoder(bytes.NewReader(doc))

	// Act / Assert
	_, ok, err := d.Start(AirSyncSync)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = d.Start(AirSyncCollections)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = d.Start(AirSyncCollection)
	require.NoError(t, err)
	require.True(t, ok)

	v, ok, err := d.Element(AirSyncSyncKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", v)

	_, ok, err = d.Element(AirSyncSyncKey)
	require.NoError(t, err)
	assert.False(t, ok, "element must not match a different tag")

	v, _, err = d.Element(AirSyncCollectionID)
	require.NoError(t, err)
	assert.Equal(t, "12", v)

	v, ok, err = d.Element(AirSyncGetChanges)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)

	opts, ok, err := d.Start(AirSyncOptions)
	require.NoError(t, err)
	require.True(t, ok)
	tree, err := d.Tree(opts)
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, BaseBodyPreference, tree.Children[0].Tag)
	assert.Equal(t, "2", string(tree.Children[0].Children[0].Value))

	require.NoError(t, d.End()) // Collection
	require.NoError(t, d.End()) // Collections
	require.NoError(t, d.End()) // Sync

	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_PeekAndUnget(t *testing.T) {
	doc := encode(t, func(e *Encoder) {
		e.StartTag(PingPing, false)
		e.Element(PingHeartbeatInterval, "480")
		e.EndTag()
	})
	d := NewDecoder(bytes.NewReader(doc))

	peeked, err := d.Peek()
	require.NoError(t, err)
	next, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, next)
	assert.Equal(t, PingPing, next.Tag)

	tok, err := d.Next()
	require.NoError(t, err)
	d.Unget(tok)

	v, ok, err := d.Element(PingHeartbeatInterval)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "480", v)

	end, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, KindEnd, end.Kind)
	assert.Equal(t, PingPing, end.Tag)
}

func TestDecoder_Skip(t *testing.T) {
	doc := encode(t, func(e *Encoder) {
		e.StartTag(AirSyncCollection, false)
		e.StartTag(AirSyncApplicationData, false)
		e.StartTag(BaseBody, false)
		e.Element(BaseData, "hello")
		e.EndTag()
		e.EndTag()
		e.Element(AirSyncClass, "Email")
		e.EndTag()
	})
	d := NewDecoder(bytes.NewReader(doc))

	_, _, err := d.Start(AirSyncCollection)
	require.NoError(t, err)
	app, ok, err := d.Start(AirSyncApplicationData)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, d.Skip(app))

	v, ok, err := d.Element(AirSyncClass)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Email", v)
}

func TestDecoder_EmptyStream(t *testing.T) {
	d := NewDecoder(bytes.NewReader(nil))
	assert.True(t, d.Empty())

	_, ok, err := d.Start(AirSyncSync)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecoder_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  []byte
		want error
	}{
		{name: "truncated element", doc: []byte{0x03, 0x01, 0x6A, 0x00, 0x45, 0x4B}, want: ErrMalformed},
		{name: "unterminated string", doc: []byte{0x03, 0x01, 0x6A, 0x00, 0x4B, 0x03, 'x'}, want: ErrMalformed},
		{name: "end without start", doc: []byte{0x03, 0x01, 0x6A, 0x00, 0x01}, want: ErrMalformed},
		{name: "attributes", doc: []byte{0x03, 0x01, 0x6A, 0x00, 0xC5}, want: ErrUnsupportedToken},
		{name: "bad version", doc: []byte{0x07, 0x01, 0x6A, 0x00}, want: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(bytes.NewReader(tt.doc))
			var err error
			for err == nil {
				_, err = d.Next()
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecoder_ContentLimit(t *testing.T) {
	header := []byte{0x03, 0x01, 0x6A, 0x00, 0x4B}
	tests := []struct {
		name string
		body []byte
	}{
		{name: "inline string", body: append([]byte{0x03}, append(bytes.Repeat([]byte{'x'}, 64), 0x00)...)},
		{name: "inline string without terminator", body: append([]byte{0x03}, bytes.Repeat([]byte{'x'}, 8192)...)},
		{name: "opaque", body: append([]byte{0xC3, 0x40}, bytes.Repeat([]byte{'x'}, 64)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(bytes.NewReader(append(append([]byte(nil), header...), tt.body...)))
			d.maxContent = 16
			var err error
			for err == nil {
				_, err = d.Next()
			}
			assert.ErrorIs(t, err, ErrTooLarge)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	d := NewDecoder(bytes.NewReader(append(append([]byte(nil), header...), 0x03, 'o', 'k', 0x00, 0x01)))
	d.maxContent = 16
	v, ok, err := d.Element(AirSyncSyncKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ok", v)
}

func TestDecoder_TooDeep(t *testing.T) {
	doc := []byte{0x03, 0x01, 0x6A, 0x00}
	for i := 0; i <= maxDepth; i++ {
		doc = append(doc, 0x45)
	}
	d := NewDecoder(bytes.NewReader(doc))

	var err error
	for err == nil {
		_, err = d.Next()
	}
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestDecoder_StringTableAndEntity(t *testing.T) {
	doc := []byte{
		0x03, 0x01, 0x6A,
		0x04, 'a', 'b', 'c', 0x00, // string table "abc"
		0x4B,
		0x83, 0x00, // STR_T offset 0
		0x02, 0x21, // ENTITY '!'
		0x01,
	}
	d := NewDecoder(bytes.NewReader(doc))

	v, ok, err := d.Element(AirSyncSyncKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc!", v)
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "AirSync:Sync", TagName(AirSyncSync))
	assert.Equal(t, "Provision:PolicyKey", ProvisionPolicyKey.String())
	assert.Equal(t, "3:0x2A", TagName(Tag{Page: 3, ID: 0x2A}))

	for _, name := range []string{"Email:Subject", "Ping:Folder", "3:0x2A"} {
		tag, ok := ParseTag(name)
		require.True(t, ok, name)
		assert.Equal(t, name, TagName(tag))
	}

	_, ok := ParseTag("Nope:Nothing")
	assert.False(t, ok)
	_, ok = ParseTag("1:0x7F")
	assert.False(t, ok)
}
