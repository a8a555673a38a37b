package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerMatchesKeyword(t *testing.T) {
	reply, matched := Answer("What kinds of CONTRACEPTION can I use?")
	assert.True(t, matched)
	assert.Equal(t, FAQs()[0].Answer, reply)
}

func TestAnswerEarlierEntryWinsTies(t *testing.T) {
	// "test" appears in both the testing and pregnancy entries; the
	// testing entry comes first in the list
	reply, matched := Answer("where can I get a test")
	require.True(t, matched)
	assert.Equal(t, FAQs()[2].Answer, reply)
}

func TestAnswerSubstringMatch(t *testing.T) {
	reply, matched := Answer("plan b availability?")
	require.True(t, matched)
	assert.Equal(t, FAQs()[7].Answer, reply)
}

func TestAnswerFallback(t *testing.T) {
	reply, matched := Answer("what is the meaning of life")
	assert.False(t, matched)
	assert.Equal(t, FallbackAnswer, reply)
}

func TestFAQsWellFormed(t *testing.T) {
	faqs := FAQs()
	require.Len(t, faqs, 8)
	for _, f := range faqs {
		assert.NotEmpty(t, f.Question)
		assert.NotEmpty(t, f.Answer)
		assert.NotEmpty(t, f.Keywords)
	}
}
