// Copyright 2025 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of BLENDREADER.
//
//  BLENDREADER is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  BLENDREADER is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with BLENDREADER.  If not, see <https://www.gnu.org/licenses/>.

package textproc

import (
	"blendreader/tagger"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ete", Normalize("Été"))
	assert.Equal(t, "cafe-creme", Normalize("Café-Crème"))
	assert.Equal(t, "l'homme", Normalize("L'homme"))
	assert.Equal(t, "naive", Normalize("naïve!"))
	assert.Equal(t, "abc", Normalize("123abc"))
	assert.Equal(t, "", Normalize("«»"))
}

func TestStemEnglish(t *testing.T) {
	assert.Equal(t, "cat", Stem("cats", LangEnglish))
	assert.Equal(t, "walk", Stem("walked", LangEnglish))
	assert.Equal(t, "happi", Stem("happiness", LangEnglish))
	assert.Equal(t, "cat", Stem("cat", LangEnglish))
	// stem would be too short
	assert.Equal(t, "is", Stem("is", LangEnglish))
	assert.Equal(t, "sat", Stem("sat", LangEnglish))
	assert.Equal(t, "", Stem("", LangEnglish))
}

func TestStemFrench(t *testing.T) {
	assert.Equal(t, "chat", Stem("chats", LangFrench))
	assert.Equal(t, "assi", Stem("assis", LangFrench))
	assert.Equal(t, "rapid", Stem("rapidement", LangFrench))
	assert.Equal(t, "ete", Stem("ete", LangFrench))
}

func TestStemUnknownLanguage(t *testing.T) {
	assert.Equal(t, "cats", Stem("cats", "cs"))
	assert.False(t, SupportsStemming("cs"))
	assert.True(t, SupportsStemming(LangFrench))
}

func TestLemma(t *testing.T) {
	assert.Equal(t, "chat", Lemma("Chats", LangFrench))
	assert.Equal(t, "ete", Lemma("Été", LangFrench))
	assert.Equal(t, "cat", Lemma("Cats", LangEnglish))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 4, CountWords("Hello, world! It's 42 o'clock."))
	assert.Equal(t, 0, CountWords(" ... "))
	assert.Equal(t, 3, CountWords("Il était une"))
	assert.Equal(t, []string{"Il", "était", "une"}, WordTokens("Il était une"))
}

func TestRuns(t *testing.T) {
	runs := Runs("Hello, world!")
	assert.Equal(
		t,
		[]Run{
			{Text: ""},
			{Text: "Hello", IsWord: true},
			{Text: ", "},
			{Text: "world", IsWord: true},
			{Text: "!"},
		},
		runs,
	)
}

func TestRunsPreserveText(t *testing.T) {
	texts := []string{
		"",
		"   ",
		"In the country of Westphalia, in the castle of the Baron.",
		"« Il était une fois »  -- dit-il.",
	}
	for _, text := range texts {
		runs := Runs(text)
		var buff strings.Builder
		for i, r := range runs {
			assert.Equal(t, i%2 == 1, r.IsWord)
			buff.WriteString(r.Text)
		}
		assert.Equal(t, text, buff.String())
		assert.Equal(t, 1, len(runs)%2)
	}
}

// ----

type fakeTagger struct {
	terms []tagger.Term
	err   error
}

func (ft fakeTagger) Tag(sentence string) ([]tagger.Term, error) {
	return ft.terms, ft.err
}

func TestLemmaSetWithTagger(t *testing.T) {
	ex := NewExtractor(tagger.Registry{
		"en": fakeTagger{
			terms: []tagger.Term{
				{Surface: "The", Tags: []string{"DT"}},
				{Surface: "cats", Tags: []string{tagger.TagNoun, "NNS"}},
				{Surface: "sleep", Tags: []string{tagger.TagVerb, "VBP"}},
				{Surface: "quietly", Tags: []string{tagger.TagAdverb, "RB"}},
			},
		},
	})
	assert.Equal(t, []string{"cat", "sleep"}, ex.LemmaSet("The cats sleep quietly", 0, "en"))
	words := ex.Extract("The cats sleep quietly", 3, "en")
	assert.Len(t, words, 2)
	assert.Equal(t, "cats", words[0].Surface)
	assert.Equal(t, 3, words[0].SentenceIndex)
	assert.Equal(t, "en", words[0].Language)
}

func TestLemmaSetFallback(t *testing.T) {
	ex := NewExtractor(nil)
	assert.Equal(t, []string{"the", "cat", "sleep"}, ex.LemmaSet("The cats sleep", 0, "en"))
	assert.Equal(t, []string{"cat"}, ex.LemmaSet("cat cats CAT", 0, "en"))
	assert.Empty(t, ex.LemmaSet("... !", 0, "en"))
}

func TestLemmaSetFailingTagger(t *testing.T) {
	ex := NewExtractor(tagger.Registry{
		"en": fakeTagger{err: errors.New("connection refused")},
	})
	assert.Equal(t, []string{"dog", "bark"}, ex.LemmaSet("dogs bark", 0, "en"))
}

func TestLemmaSetEmptyTaggerResult(t *testing.T) {
	ex := NewExtractor(tagger.Registry{"en": fakeTagger{terms: []tagger.Term{}}})
	assert.Equal(t, []string{"dog", "bark"}, ex.LemmaSet("dogs bark", 0, "en"))
}

func TestLemmaSetNoContentTags(t *testing.T) {
	ex := NewExtractor(tagger.Registry{
		"en": fakeTagger{
			terms: []tagger.Term{
				{Surface: "Oh", Tags: []string{"UH"}},
				{Surface: "!", Tags: []string{"."}},
			},
		},
	})
	assert.Equal(t, []string{"oh"}, ex.LemmaSet("Oh!", 0, "en"))
	words := ex.Extract("Very well.", 2, "en")
	assert.Len(t, words, 2)
	assert.Equal(t, "Very", words[0].Surface)
	assert.Equal(t, 2, words[1].SentenceIndex)
	assert.Empty(t, ex.LemmaSet("...", 0, "en"))
}
