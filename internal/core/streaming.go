package core

// streaming.go prepares an import payload for the tabular parser:
//
//   - legacy single-byte charsets are decoded to UTF-8 (golang.org/x/text)
//   - a leading UTF-8 BOM is dropped
//   - invalid UTF-8 bytes are replaced with '?'
//   - bytes consumed are counted for the import result

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var charsets = map[string]*charmap.Charmap{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

// lookupCharset returns the decoder for name, or nil for UTF-8.
func lookupCharset(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "utf-8" || key == "utf8" {
		return nil, nil
	}
	cm, ok := charsets[key]
	if !ok {
		return nil, catalog.InvalidArgumentf("unsupported charset %q", name)
	}
	return cm, nil
}

// utf8Sanitizer replaces invalid UTF-8 bytes with '?' without growing the
// stream. A multi-byte sequence split across reads is carried to the next call.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	offset := copy(p, s.pending)
	s.pending = s.pending[:copy(s.pending, s.pending[offset:])]

	n, err := s.r.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	data := p[:n]
	if utf8.Valid(data) {
		return n, err
	}

	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			if err == nil && !utf8.FullRune(data[read:]) {
				s.pending = append(s.pending, data[read:]...)
				break
			}
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	if write == 0 && len(s.pending) > 0 && err == nil {
		// only an incomplete sequence so far; read more before returning
		return s.Read(p)
	}
	return write, err
}

// countingReader tracks bytes read.
type countingReader struct {
	r         io.Reader
	BytesRead int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}
	if bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("discard bom: %w", err)
		}
	}
	return br, nil
}

// wrapImportReader applies charset decoding, BOM skipping and UTF-8
// sanitizing, in that order, and counts the raw bytes consumed.
func wrapImportReader(r io.Reader, charset encoding.Encoding) (io.Reader, *countingReader, error) {
	counter := &countingReader{r: r}
	var decoded io.Reader = counter
	if charset != nil {
		decoded = transform.NewReader(counter, charset.NewDecoder())
	}
	unmarked, err := skipBOM(decoded)
	if err != nil {
		return nil, nil, err
	}
	return &utf8Sanitizer{r: unmarked}, counter, nil
}
