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
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed builtin/*.json
var builtinTexts embed.FS

// Provider gives access to the available texts
type Provider interface {
	Get(id string) (*Text, error)
	List() []*Text
}

// Library is an in-memory Provider loaded once on startup
type Library struct {
	texts map[string]*Text
	order []string
}

func (lib *Library) Get(id string) (*Text, error) {
	t, ok := lib.texts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (lib *Library) List() []*Text {
	ans := make([]*Text, len(lib.order))
	for i, id := range lib.order {
		ans[i] = lib.texts[id]
	}
	return ans
}

func (lib *Library) add(t *Text, origin string) {
	if _, ok := lib.texts[t.ID]; ok {
		log.Warn().
			Str("textId", t.ID).
			Str("origin", origin).
			Msg("duplicate text id, overriding the previous definition")

	} else {
		lib.order = append(lib.order, t.ID)
	}
	lib.texts[t.ID] = t
}

// NewLibrary creates a library from explicitly provided texts
func NewLibrary(texts ...*Text) *Library {
	ans := &Library{texts: make(map[string]*Text)}
	for _, t := range texts {
		ans.add(t, "direct")
	}
	return ans
}

// LoadLibrary loads the built-in texts (unless disabled) and all
// the *.json files found in the configured texts directory.
func LoadLibrary(setup *TextsSetup) (*Library, error) {
	ans := NewLibrary()
	if !setup.DisableBuiltin {
		entries, err := builtinTexts.ReadDir("builtin")
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in texts: %w", err)
		}
		for _, entry := range entries {
			data, err := builtinTexts.ReadFile("builtin/" + entry.Name())
			if err != nil {
				return nil, fmt.Errorf("failed to read built-in text %s: %w", entry.Name(), err)
			}
			t, err := DecodeText(data)
			if err != nil {
				return nil, fmt.Errorf("invalid built-in text %s: %w", entry.Name(), err)
			}
			ans.add(t, "builtin")
		}
	}
	if setup.TextsDir != "" {
		entries, err := os.ReadDir(setup.TextsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to list texts directory: %w", err)
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			path := filepath.Join(setup.TextsDir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read text file %s: %w", path, err)
			}
			t, err := DecodeText(data)
			if err != nil {
				return nil, fmt.Errorf("invalid text file %s: %w", path, err)
			}
			ans.add(t, path)
		}
	}
	log.Info().Int("numTexts", len(ans.order)).Msg("loaded texts")
	return ans, nil
}
