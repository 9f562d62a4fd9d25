package extraction

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkLength is the chunk size, in bytes, used when none is configured.
const DefaultMaxChunkLength = 5000

// SplitIntoChunks splits text into segments of at most maxLength bytes.
//
// Text that already fits is returned as a single chunk. Longer text is cut at
// the last ". " or newline in each window when that break lies past the middle
// of the window, and at the window boundary otherwise. Chunks are trimmed and
// empty chunks are dropped. A non-positive maxLength means DefaultMaxChunkLength.
func SplitIntoChunks(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultMaxChunkLength
	}

	if text == "" {
		return []string{}
	}

	if len(text) <= maxLength {
		return []string{text}
	}

	chunks := make([]string, 0, len(text)/maxLength+1)
	cursor := 0
	for cursor < len(text) {
		end := min(cursor+maxLength, len(text))
		splitPoint := end

		if end < len(text) {
			window := text[cursor:end]
			sentenceBreak := max(strings.LastIndex(window, ". "), strings.LastIndex(window, "\n"))
			if sentenceBreak > maxLength/2 {
				splitPoint = cursor + sentenceBreak + 1
			} else {
				splitPoint = hardCut(text, cursor, end)
			}
		}

		if chunk := strings.TrimSpace(text[cursor:splitPoint]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		cursor = splitPoint
	}

	return chunks
}

// hardCut moves end back to a rune boundary. It always returns a position
// after cursor.
func hardCut(text string, cursor, end int) int {
	cut := end
	for cut > cursor && !utf8.RuneStart(text[cut]) {
		cut--
	}

	if cut == cursor {
		_, size := utf8.DecodeRuneInString(text[cursor:])
		cut = cursor + size
	}

	return cut
}
