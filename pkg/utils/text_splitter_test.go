package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 512, 80)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("short input should come back as a single chunk, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 20) // 200 chars
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk) != 100 {
			t.Errorf("chunk %d length = %d, want 100", i, len(chunk))
		}
	}
	// Consecutive chunks share the overlap region.
	first, second := chunks[0], chunks[1]
	if !strings.HasPrefix(second, first[len(first)-20:]) {
		t.Errorf("chunk 1 does not start with the overlap of chunk 0")
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 15)
	if len(chunks) == 0 {
		t.Fatalf("no chunks produced")
	}
	// Must terminate and cover the whole text.
	if !strings.HasSuffix(chunks[len(chunks)-1], "x") {
		t.Errorf("last chunk malformed: %q", chunks[len(chunks)-1])
	}
}

func TestSplitMarkdownSections(t *testing.T) {
	text := `Preamble before any heading.

# Introduction
Attention mechanisms are central.

## Background
Earlier work used recurrence.

# Method
We propose the transformer.`

	sections := SplitMarkdownSections(text)

	if len(sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(sections))
	}

	if len(sections[0].Headers) != 0 {
		t.Errorf("preamble carries headers: %v", sections[0].Headers)
	}

	if sections[1].Headers["Header 1"] != "Introduction" {
		t.Errorf("section 1 Header 1 = %q", sections[1].Headers["Header 1"])
	}
	if !strings.Contains(sections[1].Body, "# Introduction") {
		t.Errorf("heading line stripped from body: %q", sections[1].Body)
	}

	// Sub-sections inherit their parent heading.
	if sections[2].Headers["Header 1"] != "Introduction" || sections[2].Headers["Header 2"] != "Background" {
		t.Errorf("section 2 headers = %v", sections[2].Headers)
	}

	// A new level-1 heading resets the level-2 context.
	if _, ok := sections[3].Headers["Header 2"]; ok {
		t.Errorf("section 3 kept a stale Header 2: %v", sections[3].Headers)
	}
	if sections[3].Headers["Header 1"] != "Method" {
		t.Errorf("section 3 Header 1 = %q", sections[3].Headers["Header 1"])
	}
}

func TestSplitMarkdownSectionsPlainText(t *testing.T) {
	sections := SplitMarkdownSections("just a flat wall of text\nwith no headings at all")
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	if len(sections[0].Headers) != 0 {
		t.Errorf("flat text carries headers: %v", sections[0].Headers)
	}
}
