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

package blend

import (
	"blendreader/corpus"
	"blendreader/lexicon"
	"blendreader/textproc"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustSchedule(t *testing.T, phases ...Phase) Schedule {
	sched, err := NewSchedule(phases)
	assert.NoError(t, err)
	return sched
}

func newTestBlender(sched Schedule, lex lexicon.Lexicon) *Blender {
	return NewBlender(sched, lex, textproc.NewExtractor(nil), textproc.LangEnglish)
}

var catPair = corpus.SentencePair{Index: 0, Source: "The cat sat.", Target: "Le chat assis."}

func TestHashToUnit(t *testing.T) {
	assert.InDelta(t, 2166136261.0/4294967295.0, HashToUnit(""), 1e-12)
	for i := 0; i < 1000; i++ {
		v := HashToUnit(fmt.Sprintf("w:%d:1:word", i))
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.Equal(t, HashToUnit("s:3:Hello there"), HashToUnit("s:3:Hello there"))
	assert.NotEqual(t, HashToUnit("s:3:Hello there"), HashToUnit("s:4:Hello there"))
}

func TestHashUsesUTF16Units(t *testing.T) {
	// a non-BMP character is hashed as a surrogate pair
	assert.NotEqual(t, HashToUnit("\U0001F600"), HashToUnit(""))
	assert.Equal(t, HashToUnit("\U0001F600"), HashToUnit("\U0001F600"))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "s:3:Hi there.", SentenceKey(3, "Hi there."))
	assert.Equal(t, "w:1:3:cat", TokenKey(1, 3, "cat"))
}

func TestNewScheduleValidation(t *testing.T) {
	_, err := NewSchedule(nil)
	assert.Error(t, err)
	_, err = NewSchedule([]Phase{{Start: 10, Mode: ModeToken}})
	assert.Error(t, err)
	_, err = NewSchedule([]Phase{{Start: 0, Mode: ModeToken}, {Start: 0, Mode: ModeToken}})
	assert.Error(t, err)
	_, err = NewSchedule([]Phase{{Start: 0, Mode: ModeToken}, {Start: 200, Mode: ModeToken}, {Start: 100, Mode: ModeToken}})
	assert.Error(t, err)
	_, err = NewSchedule([]Phase{{Start: 0, Mode: ModeToken, TokenProbability: 1.5}})
	assert.Error(t, err)
	_, err = NewSchedule([]Phase{{Start: 0, Mode: ModeToken, SentenceProbability: 0.5}})
	assert.Error(t, err)
	_, err = NewSchedule([]Phase{{Start: 0, Mode: "paragraph"}})
	assert.Error(t, err)
	sched, err := NewSchedule(DefaultPhases())
	assert.NoError(t, err)
	assert.Len(t, sched, 8)
}

func TestActivePhase(t *testing.T) {
	sched := mustSchedule(t, DefaultPhases()...)
	assert.Equal(t, 0, sched.ActiveIndex(-5))
	assert.Equal(t, 0, sched.ActiveIndex(0))
	assert.Equal(t, 0, sched.ActiveIndex(299))
	assert.Equal(t, 1, sched.ActiveIndex(300))
	assert.Equal(t, 5, sched.ActiveIndex(1099))
	assert.Equal(t, 7, sched.ActiveIndex(100000))
	assert.Equal(t, ModeSentence, sched.Active(1100).Mode)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "source only", Phase{Mode: ModeToken}.Label())
	assert.Equal(t, "words 10%", Phase{Mode: ModeToken, TokenProbability: 0.1}.Label())
	assert.Equal(
		t,
		"sentences 20%, words 50%",
		Phase{Mode: ModeSentence, SentenceProbability: 0.2, TokenProbability: 0.5}.Label(),
	)
	sched := mustSchedule(t, DefaultPhases()...)
	assert.Equal(t, "phase 1/8: source only", sched.ActiveLabel(0))
	assert.Equal(t, "phase 2/8: words 10%", sched.ActiveLabel(300))
}

func TestPhaseProbabilityAlias(t *testing.T) {
	var p Phase
	assert.NoError(t, json.Unmarshal([]byte(`{"start": 100, "mode": "token", "probability": 0.3}`), &p))
	assert.Equal(t, 100, p.Start)
	assert.Equal(t, 0.3, p.TokenProbability)

	assert.NoError(t, json.Unmarshal([]byte(`{"start": 0, "mode": "token", "tokenProbability": 0.4}`), &p))
	assert.Equal(t, 0.4, p.TokenProbability)

	err := json.Unmarshal([]byte(`{"start": 0, "mode": "token", "tokenProbability": 0.4, "probability": 0.2}`), &p)
	assert.Error(t, err)
}

func TestConfDefaults(t *testing.T) {
	conf := &Conf{}
	assert.NoError(t, conf.ValidateAndDefaults("blending"))
	assert.Equal(t, 500, conf.MinWordsPerChunk)
	assert.Equal(t, 8, conf.EMRounds)
	assert.Len(t, conf.Schedule(), 8)

	conf = &Conf{MinWordsPerChunk: -1}
	assert.Error(t, conf.ValidateAndDefaults("blending"))

	conf = &Conf{Phases: []Phase{{Start: 5, Mode: ModeToken}}}
	assert.Error(t, conf.ValidateAndDefaults("blending"))

	var nilConf *Conf
	assert.Error(t, nilConf.ValidateAndDefaults("blending"))

	assert.Len(t, DefaultConf().Schedule(), 8)
}

func TestBlendZeroProbability(t *testing.T) {
	b := newTestBlender(
		mustSchedule(t, Phase{Start: 0, Mode: ModeToken}),
		lexicon.Lexicon{"cat": "chat", "sat": "assi"},
	)
	ans := b.Blend(catPair, 0, 0)
	assert.Equal(t, []Segment{{Text: "The cat sat.", Kind: KindNone}}, ans.Segments)
	assert.Equal(t, "The cat sat.", ans.Text())
	assert.Equal(t, 0, ans.NumSubstitutions())
}

func TestBlendAllTokens(t *testing.T) {
	b := newTestBlender(
		mustSchedule(t, Phase{Start: 0, Mode: ModeToken, TokenProbability: 1}),
		lexicon.Lexicon{"cat": "chat"},
	)
	ans := b.Blend(catPair, 0, 0)
	assert.Equal(
		t,
		[]Segment{
			{Text: "The ", Kind: KindNone},
			{Text: "chat", Kind: KindWord, Tooltip: "cat"},
			{Text: " sat.", Kind: KindNone},
		},
		ans.Segments,
	)
	assert.Equal(t, 1, ans.NumSubstitutions())
}

func TestBlendWholeSentence(t *testing.T) {
	b := newTestBlender(
		mustSchedule(
			t,
			Phase{Start: 0, Mode: ModeToken},
			Phase{Start: 100, Mode: ModeSentence, SentenceProbability: 1},
		),
		lexicon.Lexicon{"cat": "chat"},
	)
	before := b.Blend(catPair, 4, 99)
	assert.Equal(t, "The cat sat.", before.Text())

	ans := b.Blend(catPair, 4, 100)
	assert.Equal(
		t,
		[]Segment{{Text: "Le chat assis.", Kind: KindSentence, Tooltip: "The cat sat."}},
		ans.Segments,
	)
	assert.Equal(t, 4, ans.Index)
	assert.Equal(t, 100, ans.WordOffset)
}

func TestBlendEmptyLexicon(t *testing.T) {
	b := newTestBlender(
		mustSchedule(t, Phase{Start: 0, Mode: ModeToken, TokenProbability: 1}),
		nil,
	)
	ans := b.Blend(catPair, 0, 0)
	assert.Equal(t, "The cat sat.", ans.Text())
	assert.Equal(t, 0, ans.NumSubstitutions())
}

func TestBlendEmptySentence(t *testing.T) {
	b := newTestBlender(
		mustSchedule(t, Phase{Start: 0, Mode: ModeToken, TokenProbability: 1}),
		lexicon.Lexicon{"cat": "chat"},
	)
	ans := b.Blend(corpus.SentencePair{}, 0, 0)
	assert.Equal(t, []Segment{{Text: "", Kind: KindNone}}, ans.Segments)
}

const longSource = "The cat sat on the mat while the dog watched the bird " +
	"and the farmer walked along the road towards the village market."

func longLexicon() lexicon.Lexicon {
	ans := make(lexicon.Lexicon)
	for _, w := range textproc.WordTokens(longSource) {
		lm := textproc.Lemma(w, textproc.LangEnglish)
		ans[lm] = "x" + lm
	}
	return ans
}

func TestBlendDeterminism(t *testing.T) {
	sched := mustSchedule(t, Phase{Start: 0, Mode: ModeToken, TokenProbability: 0.5})
	pair := corpus.SentencePair{Index: 7, Source: longSource, Target: "..."}
	b1 := newTestBlender(sched, longLexicon())
	b2 := newTestBlender(sched, longLexicon())
	for i := 0; i < 20; i++ {
		assert.Equal(t, b1.Blend(pair, i, 0), b2.Blend(pair, i, 0))
		assert.Equal(t, b1.Blend(pair, i, 0), b1.Blend(pair, i, 0))
	}
}

func TestBlendPreservesText(t *testing.T) {
	sched := mustSchedule(t, Phase{Start: 0, Mode: ModeToken, TokenProbability: 0.5})
	pair := corpus.SentencePair{Source: longSource}
	b := newTestBlender(sched, longLexicon())
	for i := 0; i < 20; i++ {
		ans := b.Blend(pair, i, 0)
		var restored string
		for _, seg := range ans.Segments {
			if seg.Kind == KindWord {
				restored += seg.Tooltip

			} else {
				restored += seg.Text
			}
		}
		assert.Equal(t, longSource, restored)
	}
}

func substitutedTokens(s Sentence) map[string]bool {
	ans := make(map[string]bool)
	for _, seg := range s.Segments {
		if seg.Kind == KindWord {
			ans[seg.Tooltip] = true
		}
	}
	return ans
}

func TestBlendMonotonicity(t *testing.T) {
	sched := mustSchedule(
		t,
		Phase{Start: 0, Mode: ModeToken, TokenProbability: 0.2},
		Phase{Start: 100, Mode: ModeToken, TokenProbability: 0.6},
		Phase{Start: 200, Mode: ModeToken, TokenProbability: 1},
	)
	b := newTestBlender(sched, longLexicon())
	pair := corpus.SentencePair{Source: longSource}
	for i := 0; i < 10; i++ {
		low := substitutedTokens(b.Blend(pair, i, 0))
		mid := substitutedTokens(b.Blend(pair, i, 150))
		high := substitutedTokens(b.Blend(pair, i, 250))
		for tok := range low {
			assert.True(t, mid[tok])
		}
		for tok := range mid {
			assert.True(t, high[tok])
		}
		assert.GreaterOrEqual(t, len(high), len(mid))
	}
}
