// Package encoding provides the decoded line iterator over vendor export
// files. Brokerage exports are GBK-encoded tab-separated text; everything
// downstream works on UTF-8 lines.
package encoding

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single export line. Vendor lines are short; 1MB
// leaves plenty of slack for pathological exports.
const maxLineSize = 1024 * 1024

// LineReader yields decoded UTF-8 lines from a GBK-encoded stream.
type LineReader struct {
	scanner *bufio.Scanner
}

// NewLineReader wraps r with a GBK decoder and line splitter.
func NewLineReader(r io.Reader) *LineReader {
	decoded := transform.NewReader(r, simplifiedchinese.GBK.NewDecoder())
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &LineReader{scanner: scanner}
}

// Next returns the next line with trailing line endings trimmed. The second
// return value is false once the stream is exhausted or errored.
func (l *LineReader) Next() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	return strings.TrimRight(l.scanner.Text(), "\r\n"), true
}

// Err returns the first error hit while reading, excluding io.EOF.
func (l *LineReader) Err() error {
	return l.scanner.Err()
}
