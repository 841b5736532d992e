package retrieval

import "strings"

// Segmentation defaults. Windows overlap so clause-sized statements that
// straddle a boundary still appear whole in at least one segment.
const (
	DefaultSegmentWords = 120
	DefaultOverlapWords = 30
)

// Segments splits a document into overlapping word windows used as retrieval
// queries. Paragraph breaks are preserved as soft boundaries: a window never
// spans more than one paragraph unless the paragraph itself is shorter than
// the window. Returns nil for empty input.
func Segments(text string, windowWords, overlapWords int) []string {
	if windowWords <= 0 {
		windowWords = DefaultSegmentWords
	}
	if overlapWords < 0 || overlapWords >= windowWords {
		overlapWords = DefaultOverlapWords
	}

	var segments []string
	for _, paragraph := range splitParagraphs(text) {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		if len(words) <= windowWords {
			segments = append(segments, strings.Join(words, " "))
			continue
		}

		step := windowWords - overlapWords
		for start := 0; start < len(words); start += step {
			end := start + windowWords
			if end > len(words) {
				end = len(words)
			}
			segments = append(segments, strings.Join(words[start:end], " "))
			if end == len(words) {
				break
			}
		}
	}

	return segments
}

func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
