package utils

import "testing"

func TestBoundaries(t *testing.T) {
	line := "aé!"
	if got := PrevBoundary(line, 3); got != 1 {
		t.Errorf("PrevBoundary(3) = %d, want 1", got)
	}
	if got := PrevBoundary(line, 0); got != 0 {
		t.Errorf("PrevBoundary(0) = %d, want 0", got)
	}
	if got := NextBoundary(line, 1); got != 3 {
		t.Errorf("NextBoundary(1) = %d, want 3", got)
	}
	if got := NextBoundary(line, 4); got != 4 {
		t.Errorf("NextBoundary(end) = %d, want 4", got)
	}
	for offset, want := range map[int]bool{-1: false, 0: true, 1: true, 2: false, 3: true, 4: true, 5: false} {
		if got := IsBoundary(line, offset); got != want {
			t.Errorf("IsBoundary(%d) = %v, want %v", offset, got, want)
		}
	}
}

func TestLeadingWhitespaceLen(t *testing.T) {
	tests := map[string]int{"": 0, "x": 0, "  \tx": 3, "   ": 3}
	for line, want := range tests {
		if got := LeadingWhitespaceLen(line); got != want {
			t.Errorf("LeadingWhitespaceLen(%q) = %d, want %d", line, got, want)
		}
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		r    rune
		want CharClass
	}{
		{' ', ClassWhitespace},
		{'a', ClassAlphanumeric},
		{'7', ClassAlphanumeric},
		{'Ａ', ClassAlphanumeric},
		{'-', ClassOther},
		{'。', ClassPunctuation},
		{'す', ClassHiragana},
		{'カ', ClassKatakana},
		{'語', ClassKanji},
	}
	for _, tt := range tests {
		if got := ClassOf(tt.r); got != tt.want {
			t.Errorf("ClassOf(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestWordMotion(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string, int) int
		line   string
		offset int
		want   int
	}{
		{"left from end", WordLeft, "foo bar", 7, 4},
		{"left over space", WordLeft, "foo bar", 4, 0},
		{"left trailing space", WordLeft, "foo bar ", 8, 4},
		{"left at start", WordLeft, "foo", 0, 0},
		{"right from start", WordRight, "foo bar", 0, 3},
		{"right over space", WordRight, "foo bar", 3, 7},
		{"right trailing space", WordRight, "foo  ", 3, 5},
		{"right kanji run", WordRight, "日本語です", 0, 9},
		{"left hiragana run", WordLeft, "日本語です", 15, 9},
		{"hungry word and space", WordBoundaryLeft, "foo bar", 7, 3},
		{"hungry only space", WordBoundaryLeft, "foo  ", 5, 3},
		{"hungry stops at class", WordBoundaryLeft, "a.b", 3, 2},
		{"hungry at start", WordBoundaryLeft, "abc", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.line, tt.offset); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
