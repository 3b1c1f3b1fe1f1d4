package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docsplit/internal/element"
	"github.com/dgallion1/docsplit/internal/tokenize"
)

var bulletPrefix = regexp.MustCompile(`^\s*(?:[•·▪◦‣⁃*+-]|\d{1,3}[.)]|[a-z]\))\s+`)

const (
	maxTitleWords     = 12
	minNarrativeWords = 3
)

// classify assigns a category to a free-standing block of text.
func classify(text string, tok *tokenize.Tokenizer) string {
	t := strings.TrimSpace(text)
	switch {
	case t == "":
		return element.CategoryUncategorizedText
	case bulletPrefix.MatchString(t):
		return element.CategoryListItem
	case isNarrative(t, tok):
		return element.CategoryNarrativeText
	case isTitle(t, tok):
		return element.CategoryTitle
	default:
		return element.CategoryUncategorizedText
	}
}

func isNarrative(text string, tok *tokenize.Tokenizer) bool {
	words := tok.Words(text)
	if len(words) < minNarrativeWords || !hasLetter(text) || isAllCaps(text) {
		return false
	}
	if endsSentence(text) {
		return true
	}
	return len(tok.Sentences(text)) > 1 || len(words) > 2*maxTitleWords
}

func isTitle(text string, tok *tokenize.Tokenizer) bool {
	if !hasLetter(text) || strings.Contains(text, "\n") {
		return false
	}
	words := tok.Words(text)
	if len(words) == 0 || len(words) > maxTitleWords {
		return false
	}
	last, _ := lastRune(text)
	if last == '.' || last == ',' || last == ';' {
		return false
	}
	return len(tok.Sentences(text)) <= 1
}

func endsSentence(text string) bool {
	last, ok := lastRune(strings.TrimRight(text, `"'”’)]`))
	if !ok {
		return false
	}
	switch last {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

func lastRune(s string) (rune, bool) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" {
		return 0, false
	}
	r := []rune(s)
	return r[len(r)-1], true
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return letters > 1
}
