// Package textenc normalises uploaded text files to UTF-8.
package textenc

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names the encoding Decode detected.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF8BOM Encoding = "utf-8-bom"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
	Latin1  Encoding = "latin-1"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode detects the encoding of data, strips any byte order mark and returns
// UTF-8 bytes. Input without a BOM that is not valid UTF-8 is read as
// ISO 8859-1, which every byte sequence decodes under.
func Decode(data []byte) ([]byte, Encoding, error) {
	var (
		enc Encoding
		dec encoding.Encoding
	)

	switch {
	case len(data) == 0:
		return data, UTF8, nil
	case bytes.HasPrefix(data, bomUTF8):
		enc, dec = UTF8BOM, unicode.UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		enc, dec = UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(data, bomUTF16BE):
		enc, dec = UTF16BE, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case utf8.Valid(data):
		return data, UTF8, nil
	default:
		enc, dec = Latin1, charmap.ISO8859_1
	}

	out, _, err := transform.Bytes(dec.NewDecoder(), data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", enc, err)
	}
	return out, enc, nil
}
