// Package syllabus turns pasted syllabus text into clean topic names.
package syllabus

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minTopicLength = 3

var (
	// Numbered list prefixes: "1. ", "2) ", "3: ", "12 ".
	numberedPrefix = regexp.MustCompile(`^\s*\d+[.):\s]+`)
	// Bullet prefixes: • - * – ▪
	bulletPrefix = regexp.MustCompile(`^\s*[•\-*–▪]\s*`)
	// Lines of only uppercase letters, digits, and spaces are section headers.
	headerLine = regexp.MustCompile(`^[A-Z\s\d]+$`)
)

// Parse converts raw syllabus text into an ordered list of topic names.
// Per line: numbered and bullet prefixes are stripped, whitespace trimmed,
// then the line is dropped when it is shorter than three characters, looks
// like an all-caps section header, or ends with a colon (a section label).
// Relative ordering of surviving lines is preserved; empty input yields an
// empty list.
func Parse(text string) []string {
	topics := []string{}
	for _, raw := range strings.Split(text, "\n") {
		line := numberedPrefix.ReplaceAllString(raw, "")
		line = bulletPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)

		if utf8.RuneCountInString(line) < minTopicLength {
			continue
		}
		if headerLine.MatchString(line) {
			continue
		}
		if strings.HasSuffix(line, ":") {
			continue
		}
		topics = append(topics, line)
	}
	return topics
}
