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
	"strconv"
	"unicode/utf16"
)

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
	maxUint32             = float64(^uint32(0))

	sentenceKeyTag = "s"
	tokenKeyTag    = "w"
)

// HashToUnit maps a key to [0, 1) using 32-bit FNV-1a over
// the UTF-16 code units of the key. The result depends only
// on the key (no platform or run specific state).
func HashToUnit(key string) float64 {
	hash := fnvOffsetBasis
	for _, unit := range utf16.Encode([]rune(key)) {
		hash ^= uint32(unit)
		hash *= fnvPrime
	}
	ans := float64(hash) / maxUint32
	if ans >= 1 {
		// hash == MaxUint32 is the only way to get here
		return 0
	}
	return ans
}

// SentenceKey scopes a sentence-level decision to the sentence
// index and its full source text
func SentenceKey(sentenceIndex int, source string) string {
	return sentenceKeyTag + ":" + strconv.Itoa(sentenceIndex) + ":" + source
}

// TokenKey scopes a token-level decision to the sentence index,
// the run index within the sentence and the token surface
func TokenKey(sentenceIndex, tokenIndex int, surface string) string {
	return tokenKeyTag + ":" + strconv.Itoa(sentenceIndex) + ":" + strconv.Itoa(tokenIndex) + ":" + surface
}
