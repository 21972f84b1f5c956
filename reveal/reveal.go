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

// Package reveal implements progressive reveal of a text in chunks
// of sentences. A chunk is closed once it contains at least
// the configured minimum of words (the last chunk may be shorter).
package reveal

const (
	DefaultMinWordsPerChunk = 500
)

// ChunkBoundaries returns the exclusive end indices of chunks.
// The result is strictly increasing and its last item equals
// the number of sentences (for a non-empty text).
func ChunkBoundaries(wordCounts []int, minWords int) []int {
	if minWords <= 0 {
		minWords = DefaultMinWordsPerChunk
	}
	ans := make([]int, 0, len(wordCounts)/2+1)
	var acc int
	for i, cnt := range wordCounts {
		acc += cnt
		if acc >= minWords || i == len(wordCounts)-1 {
			ans = append(ans, i+1)
			acc = 0
		}
	}
	return ans
}

// State tracks how many sentences of a text are revealed
type State struct {
	wordCounts []int
	offsets    []int
	boundaries []int
	revealed   int
}

// Start reveals the first chunk. It is valid only if nothing
// has been revealed yet, otherwise it is a no-op returning false.
func (s *State) Start() bool {
	if s.revealed != 0 || len(s.boundaries) == 0 {
		return false
	}
	s.revealed = s.boundaries[0]
	return true
}

// Advance reveals the next n chunks (clamped to the end of the text).
// It returns false in case nothing changed (end of text, n < 1).
func (s *State) Advance(n int) bool {
	if n < 1 || s.revealed >= s.Total() {
		return false
	}
	next := -1
	for i, b := range s.boundaries {
		if b > s.revealed {
			next = i
			break
		}
	}
	if next < 0 {
		return false
	}
	target := s.boundaries[min(next+n-1, len(s.boundaries)-1)]
	if target <= s.revealed {
		return false
	}
	s.revealed = target
	return true
}

// Reset hides everything again
func (s *State) Reset() {
	s.revealed = 0
}

// Restore sets the number of revealed sentences directly (clamped
// to the valid range). It is meant for restoring saved sessions.
func (s *State) Restore(revealed int) {
	s.revealed = max(0, min(revealed, s.Total()))
}

func (s *State) Revealed() int {
	return s.revealed
}

func (s *State) Total() int {
	return len(s.wordCounts)
}

func (s *State) Finished() bool {
	return s.revealed >= s.Total()
}

// Boundaries returns a copy of chunk boundaries
func (s *State) Boundaries() []int {
	ans := make([]int, len(s.boundaries))
	copy(ans, s.boundaries)
	return ans
}

// WordOffset returns the number of words preceding the sentence
func (s *State) WordOffset(sentenceIndex int) int {
	if sentenceIndex <= 0 {
		return 0
	}
	if sentenceIndex >= len(s.offsets) {
		return s.offsets[len(s.offsets)-1]
	}
	return s.offsets[sentenceIndex]
}

func (s *State) RevealedWords() int {
	return s.WordOffset(s.revealed)
}

func (s *State) TotalWords() int {
	return s.offsets[len(s.offsets)-1]
}

// New creates a reveal state for sentences with the provided
// word counts
func New(wordCounts []int, minWords int) *State {
	counts := make([]int, len(wordCounts))
	copy(counts, wordCounts)
	offsets := make([]int, len(counts)+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + c
	}
	return &State{
		wordCounts: counts,
		offsets:    offsets,
		boundaries: ChunkBoundaries(counts, minWords),
	}
}
