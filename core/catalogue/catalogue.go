// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalogue holds the parsed message catalogue: an ordered collection
of diagnostic message templates keyed by message ID, plus the provenance of
the properties file they were parsed from.
*/
package catalogue

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"codeberg.org/msgrate/msgrate/core/properties"
)

var (
	// ErrUnknownMessage is returned when a message ID is not in the catalogue.
	ErrUnknownMessage = errors.New("unknown message")

	// ErrEmptyCatalogue is returned when a catalogue has no messages at all.
	ErrEmptyCatalogue = errors.New("catalogue contains no messages")

	errHashMismatch = errors.New("catalogue file hash mismatch")
)

// Source describes the provenance of the properties file.
type Source struct {
	// JDKVersion identifies the upstream release, e.g. "18+37".
	JDKVersion string

	// SHA256 is the expected hex digest of the properties file. Empty
	// disables verification.
	SHA256 string

	// CommitSHA is the upstream commit the file was taken from.
	CommitSHA string
}

// Permalink returns the upstream URL of the properties file at the pinned
// commit.
func (s Source) Permalink() string {
	return "https://github.com/openjdk/jdk/blob/" + s.CommitSHA +
		"/src/jdk.compiler/share/classes/com/sun/tools/javac/resources/compiler.properties"
}

// Catalogue is an immutable, ordered collection of messages.
type Catalogue struct {
	source   Source
	ordered  []properties.Message
	byName   map[string]int
	resource string
	fileHash string
}

// New builds a catalogue from parsed messages. The resource is the
// human-readable name of the properties file the messages came from.
func New(messages []properties.Message, resource string, source Source) (*Catalogue, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyCatalogue
	}

	byName := make(map[string]int, len(messages))

	for i, m := range messages {
		if _, dup := byName[m.Name]; dup {
			return nil, fmt.Errorf("duplicate message %q in %s", m.Name, resource)
		}

		byName[m.Name] = i
	}

	return &Catalogue{
		source:   source,
		ordered:  messages,
		byName:   byName,
		resource: resource,
	}, nil
}

// Load parses a properties stream and builds a catalogue from it, verifying
// the content hash when the source declares one.
func Load(r io.Reader, resource string, source Source) (*Catalogue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %w", resource, err)
	}

	if err := verifyHash(data, source.SHA256); err != nil {
		return nil, fmt.Errorf("%s: %w", resource, err)
	}

	messages, err := properties.Parse(strings.NewReader(string(data)), resource)
	if err != nil {
		return nil, err
	}

	c, err := New(messages, resource, source)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	c.fileHash = hex.EncodeToString(sum[:])

	return c, nil
}

// LoadFS loads a catalogue from a file in the given filesystem.
func LoadFS(fsys fs.FS, path string, source Source) (*Catalogue, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue %s: %w", path, err)
	}
	defer f.Close()

	return Load(f, path, source)
}

// verifyHash compares the SHA-256 of data against an expected hex digest.
// An empty expectation disables the check.
func verifyHash(data []byte, expected string) error {
	if expected == "" {
		return nil
	}

	sum := sha256.Sum256(data)

	calculated := hex.EncodeToString(sum[:])
	if !strings.EqualFold(calculated, expected) {
		return fmt.Errorf("%w: expected %s; got %s", errHashMismatch, strings.ToLower(expected), calculated)
	}

	return nil
}

// Source returns the provenance of the catalogue.
func (c *Catalogue) Source() Source {
	return c.source
}

// Resource returns the human-readable name of the properties file.
func (c *Catalogue) Resource() string {
	return c.resource
}

// FileSHA256 returns the hex digest of the properties file as loaded, or ""
// when the catalogue was built from already-parsed messages.
func (c *Catalogue) FileSHA256() string {
	return c.fileHash
}

// Len returns the number of messages.
func (c *Catalogue) Len() int {
	return len(c.ordered)
}

// Messages returns all messages in declaration order. The returned slice is
// shared; callers must not mutate it.
func (c *Catalogue) Messages() []properties.Message {
	return c.ordered
}

// Get looks a message up by ID.
func (c *Catalogue) Get(id string) (properties.Message, bool) {
	i, ok := c.byName[id]
	if !ok {
		return properties.Message{}, false
	}

	return c.ordered[i], true
}

// Next returns the message after the given one, wrapping around to the first.
func (c *Catalogue) Next(id string) (properties.Message, error) {
	return c.seek(id, +1)
}

// Previous returns the message before the given one, wrapping around to the
// last.
func (c *Catalogue) Previous(id string) (properties.Message, error) {
	return c.seek(id, -1)
}

func (c *Catalogue) seek(id string, diff int) (properties.Message, error) {
	i, ok := c.byName[id]
	if !ok {
		return properties.Message{}, fmt.Errorf("%w: %s", ErrUnknownMessage, id)
	}

	n := len(c.ordered)

	return c.ordered[((i+diff)%n+n)%n], nil
}
