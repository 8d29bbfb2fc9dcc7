package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/cfgl/lang"
)

// isWordBoundary reports whether r delimits words for completion: whitespace
// and the operator and punctuation characters of expressions.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '[', ']',
		'+', '-', '*', '/',
		',', '\'', '"':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its rune offsets in input.
// The word is empty when the cursor sits between two boundaries.
func wordBounds(input []rune, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 && !isWordBoundary(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && !isWordBoundary(input[end]) {
		end++
	}

	return string(input[start:end]), start, end
}

// computeMatches ranks the candidates for the word at the cursor. Input
// beginning with ":" completes commands; anything else completes variable and
// function names. An empty word has no matches.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := []rune(m.input.Value())

	var candidates []string

	if command, ok := strings.CutPrefix(string(input), commandPrefix); ok {
		if strings.ContainsAny(command, " \t") {
			return nil, 0, 0
		}

		candidates = commandNames()
		wordStart, wordEnd = len([]rune(commandPrefix)), len(input)

		if command == "" {
			return nil, wordStart, wordEnd
		}

		return fuzzy.Find(command, candidates), wordStart, wordEnd
	}

	word, ws, we := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, ws, we
	}

	return fuzzy.Find(word, m.session.names()), ws, we
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		reserve := ellipsisWidth
		if last {
			reserve = 0
		}

		if i > 0 && used+entryWidth+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Functions are shown with a "()" suffix that is not inserted
// on completion.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

func isFunction(name string) bool {
	_, _, ok := lang.FunctionSignature(name)

	return ok
}
