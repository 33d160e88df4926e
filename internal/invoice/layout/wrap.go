package layout

import (
	"strings"
	"unicode/utf8"
)

// DescriptionSeparator replaces line breaks in descriptions before wrapping.
const DescriptionSeparator = " // "

// Wrap greedily packs words into lines whose summed word length (spaces
// excluded) stays within width. A word longer than width gets a line of its
// own and is never split. Empty input yields a single empty line.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 1)
	current := make([]string, 0, len(words))
	running := 0
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		running += n
		if running > width && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
			running = n
		}
		current = append(current, word)
	}
	return append(lines, strings.Join(current, " "))
}

// WrapTitle puts one word per line. Words longer than hyphenAt runes are cut
// once: the head plus "-" on one line, the rest on the next.
func WrapTitle(text string, hyphenAt int) []string {
	words := strings.Fields(text)
	lines := make([]string, 0, len(words))
	for _, word := range words {
		runes := []rune(word)
		if hyphenAt > 0 && len(runes) > hyphenAt {
			lines = append(lines, string(runes[:hyphenAt])+"-", string(runes[hyphenAt:]))
			continue
		}
		lines = append(lines, word)
	}
	return lines
}

// NormalizeDescription flattens newlines into the visual separator.
func NormalizeDescription(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", DescriptionSeparator)
}
