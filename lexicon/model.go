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

import "sort"

// Distribution maps target lemmas to probabilities
type Distribution map[string]float64

// Sum returns the total mass of the distribution
func (d Distribution) Sum() float64 {
	var ans float64
	for _, k := range d.sortedKeys() {
		ans += d[k]
	}
	return ans
}

// Best returns the most probable target lemma. Ties are resolved
// in favour of the lexicographically smaller lemma. Zero-probability
// entries never win.
func (d Distribution) Best() (string, float64) {
	var best string
	var bestProb float64
	for f, p := range d {
		if p > bestProb || p == bestProb && p > 0 && f < best {
			best = f
			bestProb = p
		}
	}
	return best, bestProb
}

func (d Distribution) sortedKeys() []string {
	ans := make([]string, 0, len(d))
	for k := range d {
		ans = append(ans, k)
	}
	sort.Strings(ans)
	return ans
}

// Model is a translation model mapping source lemmas to
// a distribution over target lemmas (i.e. P(f|e)).
type Model map[string]Distribution

// Prob returns P(f|e), zero for unknown pairs
func (m Model) Prob(e, f string) float64 {
	return m[e][f]
}

// SourceLemmas returns all the tracked source lemmas, sorted
func (m Model) SourceLemmas() []string {
	ans := make([]string, 0, len(m))
	for k := range m {
		ans = append(ans, k)
	}
	sort.Strings(ans)
	return ans
}

// Lexicon derives the best-translation mapping from the model
func (m Model) Lexicon() Lexicon {
	ans := make(Lexicon, len(m))
	for e, dist := range m {
		if f, p := dist.Best(); p > 0 {
			ans[e] = f
		}
	}
	return ans
}

// ---

// Lexicon maps source lemmas to their single best target lemma
type Lexicon map[string]string

// Lookup returns the translation of a source lemma. A missing
// entry just means there is no substitution available.
func (lex Lexicon) Lookup(lemma string) (string, bool) {
	v, ok := lex[lemma]
	return v, ok
}

// Entry is a single lexicon item in a listing form
type Entry struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Entries returns the lexicon as a list sorted by source lemmas
func (lex Lexicon) Entries() []Entry {
	ans := make([]Entry, 0, len(lex))
	for k, v := range lex {
		ans = append(ans, Entry{Source: k, Target: v})
	}
	sort.Slice(ans, func(i, j int) bool { return ans[i].Source < ans[j].Source })
	return ans
}
