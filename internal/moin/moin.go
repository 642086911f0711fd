// Package moin decodes MoinMoin's hex-escaped page names.
//
// The old wiki escaped non-URL characters in page names as parenthesized hex
// runs, so a page called "AktuelleÄnderungen" was served as
// "Aktuelle(c384)nderungen.html". The decoded names become redirect sources
// so those old URLs keep resolving on the new site.
package moin

import (
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf8"
)

// encodedRun matches one parenthesized hex escape: at least one byte's worth
// of hex digits between literal parentheses.
var encodedRun = regexp.MustCompile(`\(([0-9a-fA-F]{2,})\)`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// HasEncoding reports whether name contains a MoinMoin hex escape.
func HasEncoding(name string) bool {
	return encodedRun.MatchString(name)
}

// Decode expands every hex escape in name to the UTF-8 text it encodes.
// Byte sequences that are not valid UTF-8 decode to replacement characters;
// an escape that is not decodable hex at all is kept verbatim.
func Decode(name string) string {
	return encodedRun.ReplaceAllStringFunc(name, func(match string) string {
		digits := match[1 : len(match)-1]
		raw, err := hex.DecodeString(digits)
		if err != nil {
			return match
		}
		return utf8String(raw)
	})
}

// Sanitize makes a decoded page name safe as a filesystem path component:
// characters that are special on common filesystems become underscores and
// whitespace runs collapse to single spaces.
func Sanitize(name string) string {
	sanitized := name
	for _, c := range []string{":", "?", "*", `"`, "<", ">", "|"} {
		sanitized = strings.ReplaceAll(sanitized, c, "_")
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(sanitized, " "))
}

// utf8String decodes raw bytes as UTF-8, substituting a replacement
// character for each undecodable byte.
func utf8String(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var sb strings.Builder
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		sb.WriteRune(r)
		raw = raw[size:]
	}
	return sb.String()
}
