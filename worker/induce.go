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

package worker

import (
	"blendreader/corpus"
	"blendreader/lexicon"
	"blendreader/merror"
	"blendreader/rdb"
	"blendreader/results"
	"blendreader/tagger"
	"blendreader/textproc"
	"errors"
	"fmt"
)

type inducer struct {
	texts     corpus.Provider
	extractor *textproc.Extractor
}

func (ind *inducer) induceLexicon(args rdb.InduceLexiconArgs) *results.LexiconInduction {
	ans := &results.LexiconInduction{TextID: args.TextID, Rounds: args.Rounds}
	text, err := ind.texts.Get(args.TextID)
	if errors.Is(err, corpus.ErrNotFound) {
		ans.Error = merror.NotFoundError{Msg: fmt.Sprintf("text %s not found", args.TextID)}
		return ans

	} else if err != nil {
		ans.Error = err
		return ans
	}
	if args.Rounds < 0 {
		ans.Rounds = lexicon.DefaultRounds
	}
	lexInducer := lexicon.NewInducer(ind.extractor, ans.Rounds)
	evidence := lexInducer.Evidence(text)
	ans.NumEvidence = len(evidence)
	ans.Model = lexicon.Train(evidence, lexInducer.Rounds())
	return ans
}

func newInducer(texts corpus.Provider, taggers tagger.Registry) *inducer {
	return &inducer{
		texts:     texts,
		extractor: textproc.NewExtractor(taggers),
	}
}
