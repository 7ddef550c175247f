package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scanner reads a DXF tag stream: alternating group-code and value lines.
type Scanner struct {
	reader *bufio.Reader
	tag    Tag
	err    error
}

// NewScanner returns a scanner over r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// Next advances to the next tag pair. It returns false at end of input
// or on a malformed pair; Err distinguishes the two.
func (s *Scanner) Next() bool {
	codeLine, err := s.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			s.err = err
		} else if strings.TrimSpace(codeLine) != "" {
			// A trailing code line without a value line is incomplete.
			s.err = fmt.Errorf("dxf: truncated tag pair at %q", strings.TrimSpace(codeLine))
		}
		return false
	}

	codeText := strings.TrimSpace(codeLine)
	if codeText == "" {
		return s.Next()
	}

	code, err := strconv.Atoi(codeText)
	if err != nil {
		s.err = fmt.Errorf("dxf: invalid group code %q: %w", codeText, err)
		return false
	}

	valueLine, err := s.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		s.err = err
		return false
	}
	// Trailing newline goes, leading whitespace of the value stays.
	value := strings.TrimRight(valueLine, "\r\n")

	s.tag = Tag{Code: code, Value: value}
	return true
}

// Tag returns the tag read by the last successful Next.
func (s *Scanner) Tag() Tag {
	return s.tag
}

// Err returns the first error encountered, or nil on clean end of input.
func (s *Scanner) Err() error {
	return s.err
}
