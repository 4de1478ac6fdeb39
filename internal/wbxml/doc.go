// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package wbxml implements the tag-structured binary document format used by
// ActiveSync (WBXML 1.3, public id 1, UTF-8, no string table).
//
// An Encoder writes start tags lazily: an element is only put on the wire
// once it receives content or a child, and its end token is only written if
// the start was. Components that stream partial output can therefore stop at
// any point and call CloseAll to leave a well-formed document.
//
// A Decoder exposes a token stream with one-token lookahead (Peek, Unget) and
// small helpers (Start, End, Content, Element, Skip, Tree) that request
// decoders combine into recursive-descent routines per document shape.
package wbxml
