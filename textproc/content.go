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

	"github.com/rs/zerolog/log"
)

var contentTags = []string{
	tagger.TagNoun,
	tagger.TagVerb,
	tagger.TagInfinitive,
	tagger.TagGerund,
}

// ContentWord is a noun/verb-like token of a sentence
type ContentWord struct {
	Lemma         string `json:"lemma"`
	Surface       string `json:"surface"`
	SentenceIndex int    `json:"sentenceIndex"`
	Language      string `json:"language"`
}

// Extractor selects content words using the tagging capability.
// In case a tagger is missing, fails or finds no content word, every
// word of the sentence is considered a content word.
type Extractor struct {
	taggers tagger.Registry
}

func (ex *Extractor) Extract(sentence string, sentenceIndex int, lang string) []ContentWord {
	terms, err := ex.taggers.Tag(lang, sentence)
	if err != nil || len(terms) == 0 {
		if err != nil && !errors.Is(err, tagger.ErrUnavailable) {
			log.Debug().
				Err(err).
				Str("language", lang).
				Int("sentence", sentenceIndex).
				Msg("tagger failed, using whole-token fallback")
		}
		return ex.allWords(sentence, sentenceIndex, lang)
	}
	ans := make([]ContentWord, 0, len(terms))
	for _, term := range terms {
		if !term.HasAnyTag(contentTags...) {
			continue
		}
		ans = append(
			ans,
			ContentWord{
				Lemma:         Lemma(term.Surface, lang),
				Surface:       term.Surface,
				SentenceIndex: sentenceIndex,
				Language:      lang,
			},
		)
	}
	if len(ans) == 0 {
		return ex.allWords(sentence, sentenceIndex, lang)
	}
	return ans
}

func (ex *Extractor) allWords(sentence string, sentenceIndex int, lang string) []ContentWord {
	words := WordTokens(sentence)
	ans := make([]ContentWord, len(words))
	for i, w := range words {
		ans[i] = ContentWord{
			Lemma:         Lemma(w, lang),
			Surface:       w,
			SentenceIndex: sentenceIndex,
			Language:      lang,
		}
	}
	return ans
}

// LemmaSet returns deduplicated non-empty lemmas of the sentence's
// content words in the order of their first occurrence.
func (ex *Extractor) LemmaSet(sentence string, sentenceIndex int, lang string) []string {
	words := ex.Extract(sentence, sentenceIndex, lang)
	ans := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w.Lemma == "" {
			continue
		}
		if _, ok := seen[w.Lemma]; ok {
			continue
		}
		seen[w.Lemma] = struct{}{}
		ans = append(ans, w.Lemma)
	}
	return ans
}

func NewExtractor(taggers tagger.Registry) *Extractor {
	if taggers == nil {
		taggers = make(tagger.Registry)
	}
	return &Extractor{taggers: taggers}
}
