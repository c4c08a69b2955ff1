// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package properties

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// placeholderCommentPattern matches free-form placeholder descriptions like
//
//	# {0} - current module
var placeholderCommentPattern = regexp.MustCompile(`^#\s*\{(\d+)\}\s*-\s*(.+)$`)

// declarationCommentPattern matches a parenthesized comment trailing a type,
// e.g. "message segment (feature)".
var declarationCommentPattern = regexp.MustCompile(`^(.*?)\s*\(([^)]*)\)$`)

// parseAnnotation interprets the comment lines pending above a property.
//
// Annotations look like this:
//
//	# 0: option name, 1: symbol
//
// Sometimes they look like this:
//
//	# {0} - current module
//	# {1} - package in which the invisible class is declared
//	# 0: symbol, 1: symbol
//
// And sometimes they're not annotations at all:
//
//	# TODO 308: make a better error message
//
// Regardless, this returns a mapping from index to Placeholder. When the
// comment looks malformed the whole annotation degrades to an empty mapping
// with a warning; a bad catalogue comment must never fail the parse.
func parseAnnotation(lines []string) map[int]Placeholder {
	if len(lines) == 0 {
		// No placeholder declarations to be found.
		return nil
	}

	// Only the last line carries the index: type declarations.
	annotationLine := strings.TrimLeft(strings.TrimPrefix(lines[len(lines)-1], "#"), " \t")

	if !strings.Contains(annotationLine, ":") {
		log.Warn().
			Strs("comment", lines).
			Msg("Not interpreting comment as an annotation")

		return nil
	}

	comments := parsePlaceholderComments(lines[:len(lines)-1])
	types := make(map[int]Placeholder)

	for _, declaration := range strings.Split(annotationLine, ",") {
		declaration = strings.TrimSpace(declaration)

		strIndex, description, found := strings.Cut(declaration, ":")
		if !found {
			log.Warn().
				Str("line", annotationLine).
				Msg("Ignoring malformed annotation line")

			return nil
		}

		index, err := strconv.Atoi(strings.TrimSpace(strIndex))
		if err != nil {
			log.Warn().
				Str("line", annotationLine).
				Msg("Comment does not look like an annotation")

			return nil
		}

		if _, exists := types[index]; exists {
			log.Warn().
				Int("index", index).
				Str("line", annotationLine).
				Msg("Duplicate index in annotation line")
		}

		typeName, comment := splitDeclaration(strings.TrimSpace(description))
		if comment == "" {
			comment = comments[index]
		}

		types[index] = Placeholder{Index: index, Type: typeName, Comment: comment}
	}

	return types
}

// splitDeclaration separates a parenthesized trailing comment from the type
// name: "message segment (feature)" -> ("message segment", "feature").
func splitDeclaration(description string) (typeName, comment string) {
	if m := declarationCommentPattern.FindStringSubmatch(description); m != nil {
		return m[1], m[2]
	}

	return description, ""
}

// parsePlaceholderComments collects "# {N} - text" descriptions from the
// lines above the annotation line.
func parsePlaceholderComments(lines []string) map[int]string {
	comments := make(map[int]string)

	for _, line := range lines {
		if m := placeholderCommentPattern.FindStringSubmatch(line); m != nil {
			index, _ := strconv.Atoi(m[1])
			comments[index] = strings.TrimSpace(m[2])
		}
	}

	return comments
}
