package utils

import (
	"strings"
)

// SplitText splits a long string into chunks of approximately 'chunkSize' characters.
// It includes an 'overlap' to preserve context at boundaries.
// This is a simple character-based splitter. Ideally, use a tokenizer-aware splitter.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// Section is a run of markdown text under its nearest # / ## headers.
// Header values travel with the section as retrieval metadata.
type Section struct {
	Headers map[string]string // "Header 1", "Header 2"
	Body    string
}

// SplitMarkdownSections walks the text line by line and cuts a new section
// whenever a level-1 or level-2 heading appears. Headings stay in the body
// so the retrieved passage text keeps its context. Text before the first
// heading becomes a section without header metadata.
func SplitMarkdownSections(text string) []Section {
	lines := strings.Split(text, "\n")

	var sections []Section
	current := Section{Headers: map[string]string{}}
	var body []string

	flush := func() {
		joined := strings.TrimSpace(strings.Join(body, "\n"))
		if joined != "" {
			current.Body = joined
			sections = append(sections, current)
		}
		body = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "## "):
			flush()
			headers := map[string]string{}
			if h1, ok := current.Headers["Header 1"]; ok {
				headers["Header 1"] = h1
			}
			headers["Header 2"] = strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
			current = Section{Headers: headers}
			body = append(body, line)
		case strings.HasPrefix(trimmed, "# "):
			flush()
			current = Section{Headers: map[string]string{
				"Header 1": strings.TrimSpace(strings.TrimPrefix(trimmed, "# ")),
			}}
			body = append(body, line)
		default:
			body = append(body, line)
		}
	}
	flush()

	return sections
}
