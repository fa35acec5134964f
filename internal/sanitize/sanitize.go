// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize strips characters that WordprocessingML cannot store.
package sanitize

import "strings"

// Clean removes U+0000-U+0008, U+000B, U+000C, U+000E-U+001F and U+007F
// from s. Tab, line feed, carriage return and all other text are kept in
// their original order. Clean never fails.
//
// All removed characters are single-byte ASCII, which never occurs inside
// a multi-byte UTF-8 sequence, so filtering works on bytes and leaves
// everything else (including invalid UTF-8) untouched.
func Clean(s string) string {
	i := indexControl(s)
	if i < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for j := i + 1; j < len(s); j++ {
		if !IsControl(s[j]) {
			b.WriteByte(s[j])
		}
	}
	return b.String()
}

// IsControl reports whether c is one of the bytes Clean removes.
func IsControl(c byte) bool {
	switch {
	case c <= 0x08:
		return true
	case c == 0x0B, c == 0x0C:
		return true
	case c >= 0x0E && c <= 0x1F:
		return true
	}
	return c == 0x7F
}

func indexControl(s string) int {
	for i := 0; i < len(s); i++ {
		if IsControl(s[i]) {
			return i
		}
	}
	return -1
}
