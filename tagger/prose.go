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

package tagger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
)

// pennTags maps Penn Treebank tags (as produced by prose)
// to our coarse tag sets.
var pennTags = map[string][]string{
	"NN":   {TagNoun},
	"NNS":  {TagNoun},
	"NNP":  {TagNoun},
	"NNPS": {TagNoun},
	"VB":   {TagVerb, TagInfinitive},
	"VBG":  {TagVerb, TagGerund},
	"VBD":  {TagVerb},
	"VBN":  {TagVerb},
	"VBP":  {TagVerb},
	"VBZ":  {TagVerb},
	"JJ":   {TagAdjective},
	"JJR":  {TagAdjective},
	"JJS":  {TagAdjective},
	"RB":   {TagAdverb},
	"RBR":  {TagAdverb},
	"RBS":  {TagAdverb},
}

func coarseTags(penn string) []string {
	if v, ok := pennTags[penn]; ok {
		ans := make([]string, len(v), len(v)+1)
		copy(ans, v)
		return append(ans, penn)
	}
	return []string{penn}
}

// ProseTagger is an English tagger based on the averaged perceptron
// model shipped with prose. Tagging results are memoized per sentence
// as texts tend to be tagged repeatedly (induction, each rendering).
type ProseTagger struct {
	cache     map[string][]Term
	cacheLock sync.RWMutex
}

func (pt *ProseTagger) Tag(sentence string) ([]Term, error) {
	if strings.TrimSpace(sentence) == "" {
		return []Term{}, nil
	}
	pt.cacheLock.RLock()
	ans, ok := pt.cache[sentence]
	pt.cacheLock.RUnlock()
	if ok {
		return ans, nil
	}
	doc, err := prose.NewDocument(
		sentence,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag sentence: %w", err)
	}
	tokens := doc.Tokens()
	ans = make([]Term, len(tokens))
	for i, tok := range tokens {
		ans[i] = Term{Surface: tok.Text, Tags: coarseTags(tok.Tag)}
	}
	pt.cacheLock.Lock()
	pt.cache[sentence] = ans
	pt.cacheLock.Unlock()
	return ans, nil
}

func NewProseTagger() *ProseTagger {
	return &ProseTagger{cache: make(map[string][]Term)}
}
