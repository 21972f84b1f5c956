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

// Package tagger provides part-of-speech tagging as an injectable
// capability. A language without a configured tagger (or a tagger
// which fails) is reported via ErrUnavailable and consumers are
// expected to fall back to a tagger-free strategy.
package tagger

import (
	"errors"
	"fmt"
)

const (
	TagNoun       = "Noun"
	TagVerb       = "Verb"
	TagInfinitive = "Infinitive"
	TagGerund     = "Gerund"
	TagAdjective  = "Adjective"
	TagAdverb     = "Adverb"
)

var (
	ErrUnavailable = errors.New("tagger unavailable")
)

// Term is a single tagged token of a sentence
type Term struct {
	Surface string   `json:"text"`
	Tags    []string `json:"tags"`
}

func (t Term) HasAnyTag(tags ...string) bool {
	for _, tg := range t.Tags {
		for _, tg2 := range tags {
			if tg == tg2 {
				return true
			}
		}
	}
	return false
}

type Tagger interface {
	Tag(sentence string) ([]Term, error)
}

// Registry maps language codes to taggers
type Registry map[string]Tagger

// Tag tags the sentence with the tagger registered for lang.
// In case there is no such tagger, ErrUnavailable is returned.
func (r Registry) Tag(lang, sentence string) ([]Term, error) {
	tg, ok := r[lang]
	if !ok || tg == nil {
		return nil, ErrUnavailable
	}
	return tg.Tag(sentence)
}

func (r Registry) Available(lang string) bool {
	tg, ok := r[lang]
	if !ok || tg == nil {
		return false
	}
	_, isNull := tg.(unavailable)
	return !isNull
}

// ---

type unavailable struct{}

func (u unavailable) Tag(sentence string) ([]Term, error) {
	return nil, ErrUnavailable
}

// ---

// NewRegistry creates taggers for all the configured languages
func NewRegistry(conf Conf) (Registry, error) {
	ans := make(Registry)
	for lang, engConf := range conf {
		switch engConf.Engine {
		case EngineProse:
			ans[lang] = NewProseTagger()
		case EngineRemote:
			ans[lang] = NewRemoteTagger(lang, engConf)
		case EngineNone:
			ans[lang] = unavailable{}
		default:
			return nil, fmt.Errorf("unknown tagging engine `%s` for language %s", engConf.Engine, lang)
		}
	}
	return ans, nil
}
