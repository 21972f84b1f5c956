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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTextWithRepeat(t *testing.T) {
	txt, err := DecodeText([]byte(`{
		"id": "cats",
		"title": "Cats",
		"repeat": 3,
		"pairs": [
			{"source": "cat sat", "target": "chat assis"},
			{"source": "cat ran", "target": "chat courut"}
		]
	}`))
	assert.NoError(t, err)
	assert.Equal(t, "cats", txt.ID)
	assert.Equal(t, "en", txt.SourceLang)
	assert.Equal(t, "fr", txt.TargetLang)
	assert.Len(t, txt.Pairs, 6)
	for i, p := range txt.Pairs {
		assert.Equal(t, i, p.Index)
	}
	assert.Equal(t, "cat ran", txt.Pairs[5].Source)
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2}, txt.WordCounts())
	assert.Equal(t, 12, txt.NumWords())
}

func TestDecodeTextInvalid(t *testing.T) {
	_, err := DecodeText([]byte(`{"title": "no id"}`))
	assert.Error(t, err)
	_, err = DecodeText([]byte(`{"id": "x", "repeat": -1}`))
	assert.Error(t, err)
	_, err = DecodeText([]byte(`{`))
	assert.Error(t, err)
}

func TestBuiltinLibrary(t *testing.T) {
	lib, err := LoadLibrary(&TextsSetup{})
	assert.NoError(t, err)
	txt, err := lib.Get("candide-loop")
	assert.NoError(t, err)
	assert.Len(t, txt.Pairs, 16*12)
	assert.Equal(t, txt.Pairs[0].Source, txt.Pairs[16].Source)
	assert.NotEmpty(t, txt.Title)

	_, err = lib.Get("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLibraryFromDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "b.json"),
		[]byte(`{"id": "b", "pairs": [{"source": "dog", "target": "chien"}]}`),
		0o644,
	))
	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "a.json"),
		[]byte(`{"id": "a", "pairs": [{"source": "cat", "target": "chat"}]}`),
		0o644,
	))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	setup := &TextsSetup{TextsDir: dir, DisableBuiltin: true}
	assert.NoError(t, setup.ValidateAndDefaults("texts"))
	lib, err := LoadLibrary(setup)
	assert.NoError(t, err)
	list := lib.List()
	assert.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestTextsSetupValidation(t *testing.T) {
	assert.Error(t, (&TextsSetup{DisableBuiltin: true}).ValidateAndDefaults("texts"))
	assert.Error(t, (&TextsSetup{TextsDir: "/nonexistent/texts/dir"}).ValidateAndDefaults("texts"))
	assert.NoError(t, (&TextsSetup{}).ValidateAndDefaults("texts"))
}
