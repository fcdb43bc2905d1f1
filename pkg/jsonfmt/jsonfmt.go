// Package jsonfmt renders catalog datasets as stable, diff-friendly JSON.
//
// Output is pretty-printed with a fixed indentation width, contains only
// ASCII (every other rune is written as a \u escape, astral runes as a
// surrogate pair), leaves HTML characters unescaped and has no trailing newline.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/hankinsohl/fgdb/pkg/constants"
)

// ErrTrailingData is returned when input continues after the decoded value.
var ErrTrailingData = errors.New("jsonfmt: unexpected data after top-level value")

var indent = strings.Repeat(" ", constants.JSONTab)

// Marshal encodes v in the catalog format.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return EscapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Write encodes v in the catalog format to w.
func Write(w io.Writer, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads exactly one JSON value from r into v, rejecting unknown object fields.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTrailingData, err)
		}
		return ErrTrailingData
	}
	return nil
}

// EscapeNonASCII rewrites every non-ASCII rune of already-encoded JSON as a \u escape.
// Outside string literals JSON is ASCII, so the rewrite never touches structure.
func EscapeNonASCII(data []byte) []byte {
	ascii := true
	for _, b := range data {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return data
	}

	out := make([]byte, 0, len(data)+len(data)/4)
	for len(data) > 0 {
		b := data[0]
		if b < utf8.RuneSelf {
			out = append(out, b)
			data = data[1:]
			continue
		}
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
