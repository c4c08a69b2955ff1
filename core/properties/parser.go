// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package properties

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// ParseError reports a malformed line in a properties file.
type ParseError struct {
	Filename   string
	LineNo     int
	Line       string
	Production string
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s\n\n  %d | %s\n\n(while parsing %s)",
		e.Filename, e.LineNo, e.Message, e.LineNo, e.Line, e.Production)
}

var (
	unicodeEscapePattern = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)
	placeholderPattern   = regexp.MustCompile(`\{(\d+)\}`)
)

// Parse reads a compiler.properties catalogue and returns its messages in
// declaration order. The filename is used in parse errors only; pass
// "<input>" when there is no meaningful name.
func Parse(r io.Reader, filename string) ([]Message, error) {
	if filename == "" {
		filename = "<input>"
	}

	p := &parser{
		filename: filename,
		scanner:  bufio.NewScanner(r),
	}

	p.nextLine()

	return p.parse()
}

// ParseFile parses the catalogue at the given path.
func ParseFile(path string) ([]Message, error) {
	f, err := os.Open(path) // #nosec G304 -- only loading a configured catalogue file
	if err != nil {
		return nil, fmt.Errorf("failed to open properties file: %w", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// parser is a line-oriented recursive descent parser over the properties
// format. A property value spills over multiple lines via trailing
// backslashes; "stylized comments" immediately above a property annotate its
// placeholders.
type parser struct {
	filename string
	scanner  *bufio.Scanner

	lineNo  int
	rawLine string
	parsing bool

	messages     []Message
	commentLines []string
}

// line returns the current line with trailing whitespace removed and
// \uXXXX escapes decoded.
func (p *parser) line() string {
	line := strings.TrimRightFunc(p.rawLine, unicode.IsSpace)

	return unicodeEscapePattern.ReplaceAllStringFunc(line, func(match string) string {
		code, _ := strconv.ParseUint(match[2:], 16, 32)

		return string(rune(code))
	})
}

func (p *parser) parse() ([]Message, error) {
	for p.parsing {
		if err := p.item(); err != nil {
			return nil, err
		}
	}

	return p.messages, nil
}

func (p *parser) nextLine() {
	if p.scanner.Scan() {
		p.lineNo++
		p.rawLine = p.scanner.Text()
		p.parsing = true

		return
	}

	p.parsing = false
}

func (p *parser) item() error {
	line := p.line()

	switch {
	case strings.HasPrefix(line, "#"):
		p.comment()

		return nil
	case line == "":
		// Empty line. Clear the pending comment.
		p.commentLines = nil
		p.nextLine()

		return nil
	case unicode.IsLetter(rune(line[0])):
		return p.message()
	default:
		return p.parseError("item", "")
	}
}

// comment buffers either an "annotation" like
//
//	# 0: type
//
// or a regular comment like
//
//	# hello
func (p *parser) comment() {
	p.commentLines = append(p.commentLines, p.line())
	p.nextLine()
}

// message parses a property like
//
//	compiler.err.syntax=syntax error
//
// including any backslash-continued value lines.
func (p *parser) message() error {
	name, rest, found := strings.Cut(p.line(), "=")
	if !found {
		return p.parseError("message", "expected `property=` here")
	}

	// A few names have spaces around the property name.
	name = strings.TrimSpace(name)

	var (
		value string
		err   error
	)

	if strings.HasSuffix(rest, `\`) {
		p.nextLine()

		value, err = p.value()
	} else {
		// The whole value sits on the declaration line.
		value, err = p.decodeChunk(strings.TrimSpace(rest))
		p.nextLine()
	}

	if err != nil {
		return err
	}

	p.messages = append(p.messages, Message{
		Name:       name,
		Components: p.makeComponents(value),
	})
	p.commentLines = nil

	return nil
}

// value parses a continued property value: the lines after the equals sign,
// each ending in a backslash except the last.
func (p *parser) value() (string, error) {
	var chunks []string

	hasContinuation := true
	for hasContinuation && p.parsing {
		line := p.line()

		chunk, err := p.decodeChunk(strings.TrimSuffix(strings.TrimLeft(line, " \t"), `\`))
		if err != nil {
			return "", err
		}

		chunks = append(chunks, chunk)
		hasContinuation = strings.HasSuffix(line, `\`)

		p.nextLine()
	}

	return strings.Join(chunks, ""), nil
}

// decodeChunk resolves the value-level escapes in one line of a property.
//
// Doubled single quotes collapse first (MessageFormat-style '' means a
// literal quote), then the backslash escapes \n \t \' \".
func (p *parser) decodeChunk(chunk string) (string, error) {
	chunk = strings.ReplaceAll(chunk, "''", "'")

	var b strings.Builder

	for i := 0; i < len(chunk); i++ {
		c := chunk[i]

		if c != '\\' || i+1 >= len(chunk) {
			b.WriteByte(c)

			continue
		}

		next := chunk[i+1]

		switch next {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\'', '"':
			b.WriteByte(next)
		default:
			return "", p.parseError("value", fmt.Sprintf("Unknown escape: \\%c", next))
		}

		i++
	}

	return b.String(), nil
}

// makeComponents splits a property value into literal text and numbered
// placeholders, attaching the types declared in the pending comment.
func (p *parser) makeComponents(text string) []Component {
	types := parseAnnotation(p.commentLines)

	var components []Component

	lastFencepost := 0

	for _, match := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		index, _ := strconv.Atoi(text[match[2]:match[3]])

		placeholder, ok := types[index]
		if !ok {
			log.Warn().
				Int("index", index).
				Str("message", text).
				Msg("Could not find a declaration for placeholder")

			placeholder = Placeholder{Index: index}
		}

		ph := placeholder

		components = append(components,
			Component{Text: text[lastFencepost:match[0]]},
			Component{Placeholder: &ph},
		)
		lastFencepost = match[1]
	}

	if lastBit := text[lastFencepost:]; lastBit != "" {
		components = append(components, Component{Text: lastBit})
	}

	return components
}

func (p *parser) parseError(production, message string) *ParseError {
	if message == "" {
		message = "Parse error"
	}

	return &ParseError{
		Filename:   p.filename,
		LineNo:     p.lineNo,
		Line:       p.line(),
		Production: production,
		Message:    message,
	}
}
