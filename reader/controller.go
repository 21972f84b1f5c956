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

// Package reader puts together text loading, translation model
// induction, blending and progressive reveal into reading sessions.
package reader

import (
	"blendreader/blend"
	"blendreader/corpus"
	"blendreader/lexicon"
	"blendreader/reveal"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// View is a rendering of the current session state
type View struct {
	TextID                string           `json:"textId"`
	Title                 string           `json:"title"`
	Description           string           `json:"description"`
	Source                string           `json:"source"`
	SourceLang            string           `json:"sourceLang"`
	TargetLang            string           `json:"targetLang"`
	Sentences             []blend.Sentence `json:"sentences"`
	RevealedSentenceCount int              `json:"revealedSentenceCount"`
	TotalSentences        int              `json:"totalSentences"`
	RevealedWordCount     int              `json:"revealedWordCount"`
	TotalWordCount        int              `json:"totalWordCount"`
	ActivePhaseLabel      string           `json:"activePhaseLabel"`
	ChunkBoundaries       []int            `json:"chunkBoundaries"`
	Finished              bool             `json:"finished"`
}

// loadedText is everything derived from a loaded text. It is
// replaced as a whole on each load.
type loadedText struct {
	text    *corpus.Text
	lexicon lexicon.Lexicon
	blender *blend.Blender
	reveal  *reveal.State
}

// Controller is a single reading session state machine.
// It is not safe for concurrent use.
type Controller struct {
	texts    corpus.Provider
	models   ModelProvider
	words    blend.ContentLemmas
	schedule blend.Schedule
	minChunk int
	current  *loadedText
}

// LoadText loads a text, induces its translation model and resets
// the reveal state. On failure, the previous state is kept.
func (c *Controller) LoadText(ctx context.Context, textID string) error {
	text, err := c.texts.Get(textID)
	if err != nil {
		return fmt.Errorf("failed to load text %s: %w", textID, err)
	}
	model, err := c.models.TranslationModel(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to induce translation model of %s: %w", textID, err)
	}
	lex := model.Lexicon()
	c.current = &loadedText{
		text:    text,
		lexicon: lex,
		blender: blend.NewBlender(c.schedule, lex, c.words, text.SourceLang),
		reveal:  reveal.New(text.WordCounts(), c.minChunk),
	}
	log.Info().
		Str("textId", text.ID).
		Int("numSentences", len(text.Pairs)).
		Int("lexiconSize", len(lex)).
		Msg("text loaded")
	return nil
}

func (c *Controller) IsLoaded() bool {
	return c.current != nil
}

// TextID returns the loaded text ID (or an empty string)
func (c *Controller) TextID() string {
	if c.current == nil {
		return ""
	}
	return c.current.text.ID
}

// Start reveals the first chunk
func (c *Controller) Start() bool {
	if c.current == nil {
		return false
	}
	return c.current.reveal.Start()
}

// Advance reveals the next n chunks
func (c *Controller) Advance(n int) bool {
	if c.current == nil {
		return false
	}
	return c.current.reveal.Advance(n)
}

// Reset hides all the sentences. The loaded text and its
// model stay untouched.
func (c *Controller) Reset() {
	if c.current != nil {
		c.current.reveal.Reset()
	}
}

// Revealed returns the number of revealed sentences
func (c *Controller) Revealed() int {
	if c.current == nil {
		return 0
	}
	return c.current.reveal.Revealed()
}

// Restore loads a text and sets the reveal state directly
func (c *Controller) Restore(ctx context.Context, textID string, revealed int) error {
	if err := c.LoadText(ctx, textID); err != nil {
		return err
	}
	c.current.reveal.Restore(revealed)
	return nil
}

// Lexicon returns the lexicon of the loaded text
func (c *Controller) Lexicon() []lexicon.Entry {
	if c.current == nil {
		return []lexicon.Entry{}
	}
	return c.current.lexicon.Entries()
}

func (c *Controller) View() View {
	if c.current == nil {
		return View{
			Sentences:        []blend.Sentence{},
			ChunkBoundaries:  []int{},
			ActivePhaseLabel: c.schedule.ActiveLabel(0),
		}
	}
	text := c.current.text
	rs := c.current.reveal
	ans := View{
		TextID:                text.ID,
		Title:                 text.Title,
		Description:           text.Description,
		Source:                text.Source,
		SourceLang:            text.SourceLang,
		TargetLang:            text.TargetLang,
		Sentences:             make([]blend.Sentence, rs.Revealed()),
		RevealedSentenceCount: rs.Revealed(),
		TotalSentences:        rs.Total(),
		RevealedWordCount:     rs.RevealedWords(),
		TotalWordCount:        rs.TotalWords(),
		ActivePhaseLabel:      c.schedule.ActiveLabel(rs.RevealedWords()),
		ChunkBoundaries:       rs.Boundaries(),
		Finished:              rs.Finished(),
	}
	for i := 0; i < rs.Revealed(); i++ {
		ans.Sentences[i] = c.current.blender.Blend(text.Pairs[i], i, rs.WordOffset(i))
	}
	return ans
}

// Blend renders all the sentences of the loaded text regardless
// of the reveal state.
func (c *Controller) Blend() []blend.Sentence {
	if c.current == nil {
		return []blend.Sentence{}
	}
	text := c.current.text
	ans := make([]blend.Sentence, len(text.Pairs))
	for i, pair := range text.Pairs {
		ans[i] = c.current.blender.Blend(pair, i, c.current.reveal.WordOffset(i))
	}
	return ans
}

func NewController(
	texts corpus.Provider,
	models ModelProvider,
	words blend.ContentLemmas,
	conf *blend.Conf,
) *Controller {
	return &Controller{
		texts:    texts,
		models:   models,
		words:    words,
		schedule: conf.Schedule(),
		minChunk: conf.MinWordsPerChunk,
	}
}
