package utils

import (
	"unicode"
	"unicode/utf8"
)

// PrevBoundary returns the byte offset of the codepoint that ends at offset.
// Returns 0 when offset is at or before the start of the line.
func PrevBoundary(line string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(line) {
		offset = len(line)
	}
	_, size := utf8.DecodeLastRuneInString(line[:offset])
	return offset - size
}

// NextBoundary returns the byte offset right after the codepoint starting at offset.
func NextBoundary(line string, offset int) int {
	if offset >= len(line) {
		return len(line)
	}
	_, size := utf8.DecodeRuneInString(line[offset:])
	return offset + size
}

// IsBoundary reports whether offset is a valid codepoint boundary in line.
func IsBoundary(line string, offset int) bool {
	if offset < 0 || offset > len(line) {
		return false
	}
	if offset == 0 || offset == len(line) {
		return true
	}
	return utf8.RuneStart(line[offset])
}

// LeadingWhitespaceLen returns the byte length of the whitespace prefix of line.
func LeadingWhitespaceLen(line string) int {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return len(line)
}

// CharClass groups runes for word motion.
type CharClass int

const (
	ClassWhitespace CharClass = iota
	ClassAlphanumeric
	ClassPunctuation
	ClassHiragana
	ClassKatakana
	ClassKanji
	ClassOther
)

// ClassOf returns the motion class of r.
func ClassOf(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassWhitespace
	case r == '。' || r == '、':
		return ClassPunctuation
	case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		return ClassAlphanumeric
	case r >= 0x3040 && r <= 0x309F:
		return ClassHiragana
	case r >= 0x30A0 && r <= 0x30FF:
		return ClassKatakana
	case r >= 0x4E00 && r <= 0x9FFF:
		return ClassKanji
	case r >= 0xFF10 && r <= 0xFF19, r >= 0xFF21 && r <= 0xFF3A, r >= 0xFF41 && r <= 0xFF5A:
		// full-width digits and latin letters
		return ClassAlphanumeric
	}
	return ClassOther
}

// WordBoundaryLeft returns the offset hungry delete removes back to: the run of
// same-class characters left of offset plus any whitespace preceding it.
func WordBoundaryLeft(line string, offset int) int {
	if offset <= 0 {
		return 0
	}
	r, size := utf8.DecodeLastRuneInString(line[:offset])
	boundary := offset - size
	class := ClassOf(r)
	if class != ClassWhitespace {
		for boundary > 0 {
			prev, sz := utf8.DecodeLastRuneInString(line[:boundary])
			if ClassOf(prev) != class {
				break
			}
			boundary -= sz
		}
	}
	for boundary > 0 {
		prev, sz := utf8.DecodeLastRuneInString(line[:boundary])
		if ClassOf(prev) != ClassWhitespace {
			break
		}
		boundary -= sz
	}
	return boundary
}

// WordLeft returns the start of the word left of offset, skipping whitespace first.
func WordLeft(line string, offset int) int {
	pos := offset
	for pos > 0 {
		r, sz := utf8.DecodeLastRuneInString(line[:pos])
		if ClassOf(r) != ClassWhitespace {
			break
		}
		pos -= sz
	}
	if pos == 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(line[:pos])
	class := ClassOf(r)
	for pos > 0 {
		r, sz := utf8.DecodeLastRuneInString(line[:pos])
		if ClassOf(r) != class {
			break
		}
		pos -= sz
	}
	return pos
}

// WordRight returns the end of the word right of offset, skipping whitespace first.
func WordRight(line string, offset int) int {
	pos := offset
	for pos < len(line) {
		r, sz := utf8.DecodeRuneInString(line[pos:])
		if ClassOf(r) != ClassWhitespace {
			break
		}
		pos += sz
	}
	if pos >= len(line) {
		return len(line)
	}
	r, _ := utf8.DecodeRuneInString(line[pos:])
	class := ClassOf(r)
	for pos < len(line) {
		r, sz := utf8.DecodeRuneInString(line[pos:])
		if ClassOf(r) != class {
			break
		}
		pos += sz
	}
	return pos
}
