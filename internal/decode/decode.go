// Package decode turns raw publisher bytes into text.
//
// The publishers are inconsistent about encodings: the exchange serves UTF-8
// with a BOM most days, the over-the-counter site still serves Big5 (cp950).
// Candidates are tried in a fixed preference order; the first clean decode
// wins. There is no best-effort mode: either a candidate decodes the whole
// payload or it is rejected.
package decode

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeError reports that no candidate encoding accepted the payload.
type DecodeError struct {
	Tried []string
	Size  int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("no candidate encoding decoded %d bytes (tried %s)",
		e.Size, strings.Join(e.Tried, ", "))
}

type candidate struct {
	name   string
	decode func([]byte) (string, bool)
}

// Decoding order mirrors what the publishers actually emit: BOM-marked UTF-8
// first, then bare UTF-8, then Big5 (which also covers cp950 payloads).
var candidates = []candidate{
	{"utf-8-sig", decodeUTF8SIG},
	{"utf-8", decodeUTF8},
	{"big5", decodeBig5},
}

// Text decodes raw bytes using the first candidate encoding that accepts the
// whole payload. On failure it returns a *DecodeError; callers treat the
// source as unavailable for the day, not as a fatal condition.
func Text(raw []byte) (string, error) {
	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if s, ok := c.decode(raw); ok {
			return s, nil
		}
		tried = append(tried, c.name)
	}
	return "", &DecodeError{Tried: tried, Size: len(raw)}
}

func decodeUTF8SIG(raw []byte) (string, bool) {
	if !bytes.HasPrefix(raw, utf8BOM) {
		return "", false
	}
	return decodeUTF8(raw[len(utf8BOM):])
}

func decodeUTF8(raw []byte) (string, bool) {
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

func decodeBig5(raw []byte) (string, bool) {
	out, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	// The decoder substitutes U+FFFD for bytes outside Big5 rather than
	// returning an error; any replacement rune means the payload was not
	// really Big5.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
