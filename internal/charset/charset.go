// Package charset converts between UTF-8 and the character encodings a
// VOEvent packet may declare in its XML declaration.
package charset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnsupported is returned for an encoding name with no known codec.
var ErrUnsupported = errors.New("unsupported character encoding")

// NewReader returns a reader that decodes input from the named encoding to
// UTF-8. Its signature matches the CharsetReader hook of XML decoders.
func NewReader(label string, input io.Reader) (io.Reader, error) {
	r, err := charset.NewReaderLabel(label, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, label)
	}
	return r, nil
}

// IsUTF8 reports whether name denotes UTF-8.
func IsUTF8(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "utf-8" || n == "utf8"
}

// Lookup returns the codec for an IANA encoding name.
func Lookup(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	return enc, nil
}

// Encode converts UTF-8 data to the named encoding. Characters that the
// target encoding cannot represent produce an error rather than being
// replaced.
func Encode(data []byte, name string) ([]byte, error) {
	if IsUTF8(name) {
		return data, nil
	}
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encoding to %s: %w", name, err)
	}
	return out, nil
}
