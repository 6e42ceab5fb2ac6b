// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response reading for the
// Rocket.Chat REST client.
//
// Every JSON API body is read through [ReadResponse], which stops at
// MaxResponseSize so a misbehaving server cannot exhaust memory.
// [Excerpt] shortens a body for inclusion in an error message.
package netutil

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxResponseSize bounds JSON API response reads. Room listings for a
// large workspace are a few megabytes; 64 MB leaves ample headroom.
const MaxResponseSize int64 = 64 << 20

// ExcerptLength is the number of bytes Excerpt keeps.
const ExcerptLength = 256

// ReadResponse reads a response body up to MaxResponseSize bytes. A body
// longer than the limit is an error rather than a silent truncation,
// since a truncated JSON document would fail to parse with a misleading
// message.
func ReadResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxResponseSize)
	}
	return data, nil
}

// Excerpt returns at most ExcerptLength bytes of body as a string,
// cut on a rune boundary and marked with "..." when shortened.
func Excerpt(body []byte) string {
	if len(body) <= ExcerptLength {
		return string(body)
	}
	cut := ExcerptLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
