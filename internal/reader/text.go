package reader

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newTextReader drops a leading UTF-8 byte order mark and transcodes UTF-16
// input that starts with one. Input without a BOM passes through unchanged.
func newTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}

// xmlCharsetReader decodes documents that declare a non UTF-8 encoding.
// A UTF-16 declaration is only readable here when the bytes are already
// ASCII compatible (BOM transcoded or mislabelled), so it passes through.
func xmlCharsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	if name == "utf-8" || strings.HasPrefix(name, "utf-16") {
		return input, nil
	}
	return enc.NewDecoder().Reader(input), nil
}
