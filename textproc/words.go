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

import "regexp"

var (
	// countedWord defines what counts as a "word read" for curriculum offsets
	countedWord = regexp.MustCompile(`[\p{L}'-]+`)

	// wordRun defines the word runs a sentence is split into for blending
	wordRun = regexp.MustCompile(`[\p{L}\p{N}_'-]+`)
)

// WordTokens returns all the words of text in their original form
func WordTokens(text string) []string {
	return countedWord.FindAllString(text, -1)
}

// CountWords returns the number of words as used by the reading
// progress (word offsets, chunk sizes).
func CountWords(text string) int {
	return len(countedWord.FindAllStringIndex(text, -1))
}

// Run is a maximal substring of a sentence which is either
// a word or a sequence of non-word characters.
type Run struct {
	Text   string
	IsWord bool
}

// Runs splits text into alternating runs starting and ending with
// a non-word run (which may be empty). So words are always found
// at odd indices and concatenating all the runs gives back
// the original text byte by byte.
func Runs(text string) []Run {
	locs := wordRun.FindAllStringIndex(text, -1)
	ans := make([]Run, 0, 2*len(locs)+1)
	var prev int
	for _, loc := range locs {
		ans = append(ans, Run{Text: text[prev:loc[0]]})
		ans = append(ans, Run{Text: text[loc[0]:loc[1]], IsWord: true})
		prev = loc[1]
	}
	ans = append(ans, Run{Text: text[prev:]})
	return ans
}
