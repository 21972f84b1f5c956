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
	"strings"
)

type Kind string

const (
	KindNone     Kind = "none"
	KindWord     Kind = "word"
	KindSentence Kind = "sentence"
)

// Segment is a rendering unit. The Tooltip contains the original
// (source language) text for substituted segments.
type Segment struct {
	Text    string `json:"text"`
	Kind    Kind   `json:"kind"`
	Tooltip string `json:"tooltip,omitempty"`
}

// Sentence is a blended sentence
type Sentence struct {
	Index      int       `json:"index"`
	WordOffset int       `json:"wordOffset"`
	Segments   []Segment `json:"segments"`
}

// Text returns the rendered sentence as plain text
func (s Sentence) Text() string {
	var buff strings.Builder
	for _, seg := range s.Segments {
		buff.WriteString(seg.Text)
	}
	return buff.String()
}

// NumSubstitutions returns the number of substituted segments
func (s Sentence) NumSubstitutions() int {
	var ans int
	for _, seg := range s.Segments {
		if seg.Kind != KindNone {
			ans++
		}
	}
	return ans
}

// ContentLemmas provides deduplicated content-word lemmas
// of a sentence (see textproc.Extractor)
type ContentLemmas interface {
	LemmaSet(sentence string, sentenceIndex int, lang string) []string
}

// Blender decides which parts of a sentence are rendered
// in the target language. All the decisions are derived from
// the phase schedule and hashes of sentence/token scoped keys
// so rendering the same sentence always produces the same result.
type Blender struct {
	schedule   Schedule
	lexicon    lexicon.Lexicon
	words      ContentLemmas
	sourceLang string
}

func (b *Blender) unchanged(pair corpus.SentencePair, sentenceIndex, wordOffset int) Sentence {
	return Sentence{
		Index:      sentenceIndex,
		WordOffset: wordOffset,
		Segments:   []Segment{{Text: pair.Source, Kind: KindNone}},
	}
}

// Blend renders a single sentence pair starting at the provided
// word offset (number of source words preceding the sentence).
func (b *Blender) Blend(pair corpus.SentencePair, sentenceIndex, wordOffset int) Sentence {
	phase := b.schedule.Active(wordOffset)

	if phase.Mode == ModeSentence {
		roll := HashToUnit(SentenceKey(sentenceIndex, pair.Source))
		if roll < phase.SentenceProbability {
			return Sentence{
				Index:      sentenceIndex,
				WordOffset: wordOffset,
				Segments: []Segment{
					{Text: pair.Target, Kind: KindSentence, Tooltip: pair.Source},
				},
			}
		}
	}

	tokenProb := phase.TokenProbability
	if tokenProb <= 0 {
		return b.unchanged(pair, sentenceIndex, wordOffset)
	}

	lemmas := b.words.LemmaSet(pair.Source, sentenceIndex, b.sourceLang)
	if len(lemmas) == 0 {
		return b.unchanged(pair, sentenceIndex, wordOffset)
	}
	targets := make(map[string]struct{}, len(lemmas))
	for _, lm := range lemmas {
		targets[lm] = struct{}{}
	}

	ans := Sentence{
		Index:      sentenceIndex,
		WordOffset: wordOffset,
		Segments:   make([]Segment, 0, 8),
	}
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			ans.Segments = append(ans.Segments, Segment{Text: pending.String(), Kind: KindNone})
			pending.Reset()
		}
	}
	for tokenIndex, run := range textproc.Runs(pair.Source) {
		if !run.IsWord {
			pending.WriteString(run.Text)
			continue
		}
		lemma := textproc.Lemma(run.Text, b.sourceLang)
		if _, ok := targets[lemma]; !ok {
			pending.WriteString(run.Text)
			continue
		}
		translation, ok := b.lexicon.Lookup(lemma)
		if !ok {
			pending.WriteString(run.Text)
			continue
		}
		if HashToUnit(TokenKey(sentenceIndex, tokenIndex, run.Text)) >= tokenProb {
			pending.WriteString(run.Text)
			continue
		}
		flush()
		ans.Segments = append(
			ans.Segments,
			Segment{Text: translation, Kind: KindWord, Tooltip: run.Text},
		)
	}
	flush()
	if len(ans.Segments) == 0 {
		// empty source sentence
		return b.unchanged(pair, sentenceIndex, wordOffset)
	}
	return ans
}

func NewBlender(schedule Schedule, lex lexicon.Lexicon, words ContentLemmas, sourceLang string) *Blender {
	if lex == nil {
		lex = make(lexicon.Lexicon)
	}
	return &Blender{
		schedule:   schedule,
		lexicon:    lex,
		words:      words,
		sourceLang: sourceLang,
	}
}
