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
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultRounds = 8
)

// AlignedPair is the alignment evidence provided by a single
// sentence pair - deduplicated content-word lemmas of both sides.
type AlignedPair struct {
	Index  int
	Source []string
	Target []string
}

// Seed creates the initial model. All the target lemmas seen in
// the corpus form the vocabulary V and every source lemma gets
// probability 1/|V| for each target lemma it co-occurs with in
// some pair. Entries are never overwritten once seeded.
func Seed(evidence []AlignedPair) Model {
	vocabulary := make(map[string]struct{})
	for _, pair := range evidence {
		for _, f := range pair.Target {
			vocabulary[f] = struct{}{}
		}
	}
	uniform := 1.0 / float64(max(len(vocabulary), 1))

	ans := make(Model)
	for _, pair := range evidence {
		for _, e := range pair.Source {
			dist, ok := ans[e]
			if !ok {
				dist = make(Distribution, len(pair.Target))
				ans[e] = dist
			}
			for _, f := range pair.Target {
				if _, ok := dist[f]; !ok {
					dist[f] = uniform
				}
			}
		}
	}
	return ans
}

// Step performs a single EM round (expectation + maximization)
// in place. Only the source lemmas which collected some mass are
// re-estimated; untouched entries keep their previous values.
func (m Model) Step(evidence []AlignedPair) {
	counts := make(map[string]Distribution)
	totals := make(map[string]float64)
	for _, pair := range evidence {
		for _, f := range pair.Target {
			var norm float64
			for _, e := range pair.Source {
				norm += m[e][f]
			}
			if norm <= 0 {
				continue
			}
			for _, e := range pair.Source {
				p := m[e][f]
				if p <= 0 {
					continue
				}
				posterior := p / norm
				cnt, ok := counts[e]
				if !ok {
					cnt = make(Distribution)
					counts[e] = cnt
				}
				cnt[f] += posterior
				totals[e] += posterior
			}
		}
	}
	for e, cnt := range counts {
		total := totals[e]
		if total <= 0 {
			continue
		}
		dist := m[e]
		for f, v := range cnt {
			dist[f] = v / total
		}
	}
}

// Train seeds a model and runs a fixed number of EM rounds.
// There is no convergence check - the number of rounds is
// the only stopping rule.
func Train(evidence []AlignedPair, rounds int) Model {
	ans := Seed(evidence)
	for i := 0; i < rounds; i++ {
		ans.Step(evidence)
	}
	return ans
}

// ---

// Inducer builds translation models of whole texts
type Inducer struct {
	extractor *textproc.Extractor
	rounds    int
}

// Evidence extracts alignment evidence from sentence pairs.
// Pairs with no content words on either side are skipped.
func (ind *Inducer) Evidence(text *corpus.Text) []AlignedPair {
	ans := make([]AlignedPair, 0, len(text.Pairs))
	for _, pair := range text.Pairs {
		src := ind.extractor.LemmaSet(pair.Source, pair.Index, text.SourceLang)
		tgt := ind.extractor.LemmaSet(pair.Target, pair.Index, text.TargetLang)
		if len(src) == 0 || len(tgt) == 0 {
			continue
		}
		ans = append(ans, AlignedPair{Index: pair.Index, Source: src, Target: tgt})
	}
	return ans
}

// Induce builds the translation model of the text
func (ind *Inducer) Induce(text *corpus.Text) Model {
	t0 := time.Now()
	evidence := ind.Evidence(text)
	ans := Train(evidence, ind.rounds)
	log.Debug().
		Str("textId", text.ID).
		Int("numPairs", len(text.Pairs)).
		Int("numEvidence", len(evidence)).
		Int("numSourceLemmas", len(ans)).
		Int("rounds", ind.rounds).
		Dur("took", time.Since(t0)).
		Msg("induced translation model")
	return ans
}

func (ind *Inducer) Rounds() int {
	return ind.rounds
}

func NewInducer(extractor *textproc.Extractor, rounds int) *Inducer {
	if rounds < 0 {
		rounds = DefaultRounds
	}
	return &Inducer{
		extractor: extractor,
		rounds:    rounds,
	}
}
