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
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases the token, decomposes it (NFD) and keeps
// only the characters a-z, apostrophe and hyphen. Combining marks
// produced by the decomposition are dropped along with anything
// else outside the set.
func Normalize(token string) string {
	decomposed := norm.NFD.String(strings.ToLower(token))
	var buff strings.Builder
	buff.Grow(len(decomposed))
	for _, r := range decomposed {
		if r >= 'a' && r <= 'z' || r == '\'' || r == '-' {
			buff.WriteRune(r)
		}
	}
	return buff.String()
}

// Lemma is a shortcut for Stem(Normalize(surface), lang)
func Lemma(surface, lang string) string {
	return Stem(Normalize(surface), lang)
}
