package contentlookup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// maxSummaryLen bounds cleaned text; truncation happens at a sentence
// boundary below this limit.
const maxSummaryLen = 800

var (
	citationRe      = regexp.MustCompile(`\[[0-9]+\]`)
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
)

// CleanText normalizes fetched encyclopedia text for study use: HTML tags
// are stripped, citation markers and parenthetical asides removed,
// whitespace collapsed, and the result truncated at a sentence boundary
// near the length limit.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = stripHTML(text)
	text = citationRe.ReplaceAllString(text, "")
	text = parentheticalRe.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")

	if len(text) > 1000 {
		text = truncateAtSentence(text, maxSummaryLen)
	}

	return strings.TrimSpace(text)
}

// stripHTML removes markup, keeping only text content.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}

// truncateAtSentence keeps whole sentences while the running length stays
// under limit.
func truncateAtSentence(text string, limit int) string {
	sentences := strings.Split(text, ".")
	var b strings.Builder
	for _, sentence := range sentences {
		if b.Len()+len(sentence) >= limit {
			break
		}
		b.WriteString(sentence)
		b.WriteString(".")
	}
	return b.String()
}
