package csvsource

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// lookupEncoding maps a configured encoding name to a decoder. A nil
// encoding means the bytes are already UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrEncoding, name)
	}
}

func decode(b []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		return string(bytes.TrimPrefix(b, utf8BOM)), nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(out), nil
}
