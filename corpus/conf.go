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
	"fmt"

	"github.com/czcorpus/cnc-gokit/fs"
)

type TextsSetup struct {

	// TextsDir is a directory with *.json text definitions.
	// It is optional as there is always the built-in text
	// available (unless DisableBuiltin is set).
	TextsDir string `json:"textsDir"`

	DisableBuiltin bool `json:"disableBuiltin"`
}

func (ts *TextsSetup) ValidateAndDefaults(confContext string) error {
	if ts == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if ts.TextsDir != "" {
		isDir, err := fs.IsDir(ts.TextsDir)
		if err != nil {
			return fmt.Errorf("failed to test `%s.textsDir`: %w", confContext, err)
		}
		if !isDir {
			return fmt.Errorf("`%s.textsDir` is not a directory", confContext)
		}

	} else if ts.DisableBuiltin {
		return fmt.Errorf("`%s.textsDir` not set and built-in texts disabled - no texts available", confContext)
	}
	return nil
}
