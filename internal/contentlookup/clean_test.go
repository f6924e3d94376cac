package contentlookup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_RemovesMarkupAndCitations(t *testing.T) {
	raw := `<p>Photosynthesis <b>is</b> a process[1] used by plants (and some bacteria)[23] to convert   light.</p>`
	got := CleanText(raw)

	assert.Equal(t, "Photosynthesis is a process used by plants to convert light.", got)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   "))
}

func TestCleanText_ShortTextNotTruncated(t *testing.T) {
	raw := "Short sentence one. Short sentence two."
	assert.Equal(t, raw, CleanText(raw))
}

func TestCleanText_LongTextTruncatedAtSentence(t *testing.T) {
	sentence := "This sentence pads the text toward the truncation threshold with filler words."
	raw := strings.Repeat(sentence+" ", 20)

	got := CleanText(raw)

	assert.Less(t, len(got), 1000)
	assert.True(t, strings.HasSuffix(got, "."), "truncation keeps whole sentences")
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	got := CleanText("a\n\n  b\t c")
	assert.Equal(t, "a b c", got)
}
