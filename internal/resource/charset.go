package resource

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// lookupCharset resolves an XML encoding label to a text encoding. A nil
// encoding with a nil error means the label names UTF-8.
func lookupCharset(label string) (encoding.Encoding, error) {
	name := strings.TrimSpace(label)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc, nil
}

// charsetWriter re-encodes UTF-8 output into enc. Runes enc cannot represent
// are written as &#N; references. The returned closer flushes pending bytes.
func charsetWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	return transform.NewWriter(w, encoding.HTMLEscapeUnsupported(enc.NewEncoder()))
}
