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

package lexicon

import (
	"blendreader/corpus"
	"blendreader/textproc"
	"testing"

	"github.com/stretchr/testify/assert"
)

func catsText() *corpus.Text {
	return &corpus.Text{
		ID:         "cats",
		SourceLang: "en",
		TargetLang: "fr",
		Pairs: []corpus.SentencePair{
			{Index: 0, Source: "cat sat", Target: "chat assis"},
			{Index: 1, Source: "cat ran", Target: "chat courut"},
		},
	}
}

func TestCatScenario(t *testing.T) {
	ind := NewInducer(textproc.NewExtractor(nil), DefaultRounds)
	model := ind.Induce(catsText())
	lex := model.Lexicon()
	tr, ok := lex.Lookup("cat")
	assert.True(t, ok)
	assert.Equal(t, "chat", tr)
	_, ok = lex.Lookup("dog")
	assert.False(t, ok)
}

func TestEvidenceSkipsEmptySides(t *testing.T) {
	text := catsText()
	text.Pairs = append(
		text.Pairs,
		corpus.SentencePair{Index: 2, Source: "...", Target: "chien"},
		corpus.SentencePair{Index: 3, Source: "dog", Target: "!"},
	)
	ind := NewInducer(textproc.NewExtractor(nil), 2)
	ev := ind.Evidence(text)
	assert.Len(t, ev, 2)
	assert.Equal(t, []string{"cat", "sat"}, ev[0].Source)
	assert.Equal(t, []string{"chat", "assi"}, ev[0].Target)
	assert.Equal(t, 2, ind.Rounds())
}

func TestSeed(t *testing.T) {
	ev := []AlignedPair{
		{Index: 0, Source: []string{"cat", "sat"}, Target: []string{"chat", "assi"}},
		{Index: 1, Source: []string{"cat", "ran"}, Target: []string{"chat", "courut"}},
	}
	model := Seed(ev)
	assert.Len(t, model, 3)
	assert.InDelta(t, 1.0/3, model.Prob("cat", "chat"), 1e-12)
	assert.InDelta(t, 1.0/3, model.Prob("cat", "courut"), 1e-12)
	assert.Len(t, model["sat"], 2)
	assert.Equal(t, 0.0, model.Prob("sat", "courut"))
	assert.Equal(t, []string{"cat", "ran", "sat"}, model.SourceLemmas())
}

func TestNormalizationAfterEachStep(t *testing.T) {
	ind := NewInducer(textproc.NewExtractor(nil), 0)
	text := catsText()
	text.Pairs = append(
		text.Pairs,
		corpus.SentencePair{Index: 2, Source: "the dog sleeps", Target: "le chien dort"},
		corpus.SentencePair{Index: 3, Source: "the cat sleeps", Target: "le chat dort"},
	)
	ev := ind.Evidence(text)
	model := Seed(ev)
	for round := 0; round < 10; round++ {
		model.Step(ev)
		for _, e := range model.SourceLemmas() {
			assert.InDelta(t, 1.0, model[e].Sum(), 1e-9, "round %d, lemma %s", round, e)
		}
	}
}

func TestLexiconSoundness(t *testing.T) {
	ind := NewInducer(textproc.NewExtractor(nil), DefaultRounds)
	text := catsText()
	text.Pairs = append(text.Pairs, corpus.SentencePair{Index: 2, Source: "dog", Target: "..."})
	ev := ind.Evidence(text)
	sources := make(map[string]bool)
	for _, p := range ev {
		for _, e := range p.Source {
			sources[e] = true
		}
	}
	lex := Train(ev, DefaultRounds).Lexicon()
	assert.NotEmpty(t, lex)
	for e := range lex {
		assert.True(t, sources[e], "unexpected lexicon key %s", e)
	}
	_, ok := lex["dog"]
	assert.False(t, ok)
}

func TestTieBreakIsLexicographic(t *testing.T) {
	best, p := Distribution{"chat": 0.5, "assi": 0.5}.Best()
	assert.Equal(t, "assi", best)
	assert.Equal(t, 0.5, p)

	best, p = Distribution{"x": 0}.Best()
	assert.Equal(t, "", best)
	assert.Equal(t, 0.0, p)

	// after a single round `sat` is equally likely to be `chat` or `assi`
	ind := NewInducer(textproc.NewExtractor(nil), 1)
	lex := ind.Induce(catsText()).Lexicon()
	assert.Equal(t, "assi", lex["sat"])
	assert.Equal(t, "chat", lex["cat"])
}

func TestDeterminism(t *testing.T) {
	ind := NewInducer(textproc.NewExtractor(nil), DefaultRounds)
	m1 := ind.Induce(catsText())
	m2 := ind.Induce(catsText())
	assert.Equal(t, m1, m2)
	assert.Equal(t, m1.Lexicon().Entries(), m2.Lexicon().Entries())
}

func TestEntriesSorted(t *testing.T) {
	lex := Lexicon{"sat": "assi", "cat": "chat", "ran": "courut"}
	assert.Equal(
		t,
		[]Entry{{"cat", "chat"}, {"ran", "courut"}, {"sat", "assi"}},
		lex.Entries(),
	)
}

func TestNegativeRoundsUseDefault(t *testing.T) {
	ind := NewInducer(textproc.NewExtractor(nil), -1)
	assert.Equal(t, DefaultRounds, ind.Rounds())
}
