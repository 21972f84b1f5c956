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

package corpus

import (
	"blendreader/textproc"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	dfltSourceLang = textproc.LangEnglish
	dfltTargetLang = textproc.LangFrench
)

var (
	ErrNotFound = errors.New("text not found")
)

// SentencePair is a 1:1 aligned pair of sentences. The Index
// is the position of the pair within its text.
type SentencePair struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Text is a sentence-aligned bilingual text
type Text struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Source      string         `json:"source"`
	SourceLang  string         `json:"sourceLang"`
	TargetLang  string         `json:"targetLang"`
	Pairs       []SentencePair `json:"pairs"`
}

// WordCounts returns the number of words of each source sentence
func (t *Text) WordCounts() []int {
	ans := make([]int, len(t.Pairs))
	for i, p := range t.Pairs {
		ans[i] = textproc.CountWords(p.Source)
	}
	return ans
}

func (t *Text) NumWords() int {
	var ans int
	for _, v := range t.WordCounts() {
		ans += v
	}
	return ans
}

// ---

type rawPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// textFile is the on-disk JSON form of a text
type textFile struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	SourceLang  string    `json:"sourceLang"`
	TargetLang  string    `json:"targetLang"`
	Pairs       []rawPair `json:"pairs"`

	// Repeat makes the text cycle through its pairs multiple
	// times (zero and one both mean "no repetition")
	Repeat int `json:"repeat"`
}

func (tf *textFile) toText() (*Text, error) {
	if strings.TrimSpace(tf.ID) == "" {
		return nil, fmt.Errorf("missing text id")
	}
	if tf.Repeat < 0 {
		return nil, fmt.Errorf("invalid repeat value %d in text %s", tf.Repeat, tf.ID)
	}
	repeat := max(tf.Repeat, 1)
	ans := &Text{
		ID:          tf.ID,
		Title:       tf.Title,
		Description: tf.Description,
		Source:      tf.Source,
		SourceLang:  tf.SourceLang,
		TargetLang:  tf.TargetLang,
		Pairs:       make([]SentencePair, 0, len(tf.Pairs)*repeat),
	}
	if ans.SourceLang == "" {
		ans.SourceLang = dfltSourceLang
	}
	if ans.TargetLang == "" {
		ans.TargetLang = dfltTargetLang
	}
	for i := 0; i < repeat; i++ {
		for _, p := range tf.Pairs {
			ans.Pairs = append(
				ans.Pairs,
				SentencePair{
					Index:  len(ans.Pairs),
					Source: p.Source,
					Target: p.Target,
				},
			)
		}
	}
	return ans, nil
}

// DecodeText parses a JSON-encoded text
func DecodeText(data []byte) (*Text, error) {
	var tf textFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to decode text: %w", err)
	}
	return tf.toText()
}
