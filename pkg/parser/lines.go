package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ParseWarning represents a non-fatal issue encountered while reading input.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Line is one physical line of a delimited input source.
type Line struct {
	// Number is 1-indexed.
	Number int `json:"number"`
	// Raw is the line with its terminator (LF or CRLF) removed.
	Raw string `json:"raw"`
	// Fields is Raw split on the delimiter. A line without the delimiter
	// yields a single field.
	Fields []string `json:"fields"`
}

// Delimited reports whether the line contained at least one delimiter.
func (l Line) Delimited() bool {
	return len(l.Fields) > 1
}

// Blank reports whether the line is empty or whitespace only.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Raw) == ""
}

// ParseResult contains the parsed lines alongside any warnings.
type ParseResult struct {
	Lines    []Line         `json:"lines"`
	Warnings []ParseWarning `json:"warnings"`
	Encoding string         `json:"encoding"`
}

// StreamParse reads r to the end, decodes it to UTF-8 and splits every line
// on delim. Fields are not trimmed: whitespace inside a field is data.
func StreamParse(r io.Reader, delim string) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	return ParseBytes(data, delim)
}

// ParseBytes is StreamParse over an in-memory buffer.
func ParseBytes(data []byte, delim string) (*ParseResult, error) {
	decoded, enc, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	result := &ParseResult{
		Lines:    make([]Line, 0, bytes.Count(decoded, []byte{'\n'})+1),
		Encoding: enc,
	}
	if enc == EncodingLatin1 {
		result.Warnings = append(result.Warnings, ParseWarning{
			Row:     0,
			Message: "input is not valid UTF-8; decoded as latin-1",
		})
	}

	scanner := bufio.NewScanner(bytes.NewReader(decoded))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	rowNum := 0
	for scanner.Scan() {
		rowNum++
		raw := strings.TrimSuffix(scanner.Text(), "\r")
		result.Lines = append(result.Lines, Line{
			Number: rowNum,
			Raw:    raw,
			Fields: strings.Split(raw, delim),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", rowNum+1, err)
	}

	return result, nil
}
