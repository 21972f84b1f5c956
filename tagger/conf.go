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

package tagger

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
)

const (
	EngineProse  = "prose"
	EngineRemote = "remote"
	EngineNone   = "none"

	dfltRequestTimeoutSecs  = 10
	dfltIdleConnTimeoutSecs = 60
)

type EngineConf struct {
	Engine string `json:"engine"`

	// URL is required for the `remote` engine. The tagger is
	// called via GET with `q` (sentence) and `lang` arguments
	// and it is expected to respond with a JSON list of terms
	// ({"text": "...", "tags": ["Noun", ...]}).
	URL                 string `json:"url"`
	RequestTimeoutSecs  int    `json:"requestTimeoutSecs"`
	IdleConnTimeoutSecs int    `json:"idleConnTimeoutSecs"`
}

// Conf maps language codes to tagging engines
type Conf map[string]*EngineConf

// DefaultConf provides the built-in English tagger. Other languages
// are handled by the whole-token fallback.
func DefaultConf() Conf {
	return Conf{"en": {Engine: EngineProse}}
}

func (conf Conf) ValidateAndDefaults(confContext string) error {
	for lang, engConf := range conf {
		if engConf == nil {
			return fmt.Errorf("missing `%s.%s` engine configuration", confContext, lang)
		}
		switch engConf.Engine {
		case EngineProse:
			if lang != "en" {
				log.Warn().
					Str("language", lang).
					Msgf("`%s.%s`: the prose tagger supports English only", confContext, lang)
			}
		case EngineRemote:
			if _, err := url.ParseRequestURI(engConf.URL); err != nil {
				return fmt.Errorf("invalid `%s.%s.url`: %w", confContext, lang, err)
			}
			if engConf.RequestTimeoutSecs == 0 {
				engConf.RequestTimeoutSecs = dfltRequestTimeoutSecs
				log.Warn().
					Int("value", dfltRequestTimeoutSecs).
					Msgf("`%s.%s.requestTimeoutSecs` not set, using default", confContext, lang)
			}
			if engConf.IdleConnTimeoutSecs == 0 {
				engConf.IdleConnTimeoutSecs = dfltIdleConnTimeoutSecs
			}
		case EngineNone:
		default:
			return fmt.Errorf("unknown engine `%s` in `%s.%s`", engConf.Engine, confContext, lang)
		}
	}
	return nil
}
