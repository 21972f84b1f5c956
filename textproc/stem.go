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

import "strings"

const (
	LangEnglish = "en"
	LangFrench  = "fr"

	// minStemLength is the number of characters that must remain
	// after a suffix is stripped
	minStemLength = 3
)

// suffixes are priority-ordered (longest first) and already in
// the normalized alphabet (no diacritics). The first suffix that
// matches and leaves a long enough stem wins.
var suffixes = map[string][]string{
	LangEnglish: {
		"ational", "fulness", "iveness", "ousness", "ization",
		"ations", "ements",
		"ation", "ement", "ments",
		"ness", "ment", "ings", "able", "ible", "ists",
		"ing", "ies", "ied", "ers", "est", "ful", "ous", "ive", "ist",
		"'s", "ed", "es", "er", "ly",
		"s",
	},
	LangFrench: {
		"issements",
		"issement",
		"atrices",
		"ements", "ations", "ateurs", "atrice", "amment", "emment",
		"ation", "ateur", "ement", "ments", "euses", "aient", "ances",
		"ment", "euse", "ites", "ives", "ance", "ence", "ions", "ique",
		"ite", "ive", "eux", "ait", "ais", "ant", "ent", "ons", "ees",
		"ee", "es", "er", "ir", "ez", "if",
		"e", "s",
	},
}

// Stem strips the longest matching language-specific suffix from
// an already normalized candidate. The suffix is stripped only if
// at least minStemLength characters remain (i.e. the word is longer
// than suffix length + 2). Languages without a suffix list are
// returned unchanged.
func Stem(candidate, lang string) string {
	if candidate == "" {
		return ""
	}
	for _, suff := range suffixes[lang] {
		if len(candidate) >= len(suff)+minStemLength && strings.HasSuffix(candidate, suff) {
			return candidate[:len(candidate)-len(suff)]
		}
	}
	return candidate
}

// SupportsStemming tells whether a suffix list exists for lang
func SupportsStemming(lang string) bool {
	_, ok := suffixes[lang]
	return ok
}
