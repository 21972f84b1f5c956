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
	"encoding/json"
	"fmt"
	"math"
)

type Mode string

const (
	ModeToken    Mode = "token"
	ModeSentence Mode = "sentence"
)

func (m Mode) Validate() error {
	if m != ModeToken && m != ModeSentence {
		return fmt.Errorf("unknown phase mode `%s`", m)
	}
	return nil
}

// Phase is a curriculum stage active from Start words read on
type Phase struct {
	Start               int     `json:"start"`
	Mode                Mode    `json:"mode"`
	TokenProbability    float64 `json:"tokenProbability"`
	SentenceProbability float64 `json:"sentenceProbability,omitempty"`
}

// UnmarshalJSON also accepts `probability` as an alias
// of `tokenProbability` for token-mode phases.
func (p *Phase) UnmarshalJSON(data []byte) error {
	type phaseAlias Phase
	var tmp struct {
		phaseAlias
		Probability *float64 `json:"probability"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = Phase(tmp.phaseAlias)
	if tmp.Probability != nil {
		if p.TokenProbability != 0 && p.TokenProbability != *tmp.Probability {
			return fmt.Errorf("phase at %d: conflicting `probability` and `tokenProbability`", p.Start)
		}
		p.TokenProbability = *tmp.Probability
	}
	return nil
}

// Label is a short human readable description of the phase
func (p Phase) Label() string {
	if p.Mode == ModeSentence {
		return fmt.Sprintf(
			"sentences %s, words %s",
			formatPercent(p.SentenceProbability),
			formatPercent(p.TokenProbability),
		)
	}
	if p.TokenProbability <= 0 {
		return "source only"
	}
	return fmt.Sprintf("words %s", formatPercent(p.TokenProbability))
}

func (p Phase) validate() error {
	if p.Start < 0 {
		return fmt.Errorf("negative phase start %d", p.Start)
	}
	if err := p.Mode.Validate(); err != nil {
		return err
	}
	if math.IsNaN(p.TokenProbability) || p.TokenProbability < 0 || p.TokenProbability > 1 {
		return fmt.Errorf("phase at %d: token probability out of [0, 1]", p.Start)
	}
	if math.IsNaN(p.SentenceProbability) || p.SentenceProbability < 0 || p.SentenceProbability > 1 {
		return fmt.Errorf("phase at %d: sentence probability out of [0, 1]", p.Start)
	}
	if p.Mode == ModeToken && p.SentenceProbability > 0 {
		return fmt.Errorf("phase at %d: sentence probability set for a token phase", p.Start)
	}
	return nil
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v*100)))
}

// ---

// Schedule is a step function over words read. Phases are sorted
// by Start (strictly ascending) and the first one starts at zero
// so there is always exactly one active phase.
type Schedule []Phase

// NewSchedule validates the phases and creates a schedule
func NewSchedule(phases []Phase) (Schedule, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("empty phase table")
	}
	if phases[0].Start != 0 {
		return nil, fmt.Errorf("the first phase must start at 0 (found %d)", phases[0].Start)
	}
	for i, p := range phases {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if i > 0 && p.Start <= phases[i-1].Start {
			return nil, fmt.Errorf("phases not sorted by start (%d after %d)", p.Start, phases[i-1].Start)
		}
	}
	ans := make(Schedule, len(phases))
	copy(ans, phases)
	return ans, nil
}

// ActiveIndex returns the index of the phase active at the word
// offset. Negative offsets are treated as zero.
func (s Schedule) ActiveIndex(wordOffset int) int {
	var ans int
	for i, p := range s {
		if p.Start <= wordOffset {
			ans = i

		} else {
			break
		}
	}
	return ans
}

// Active returns the phase active at the word offset
func (s Schedule) Active(wordOffset int) Phase {
	return s[s.ActiveIndex(wordOffset)]
}

// ActiveLabel describes the phase active at the word offset
func (s Schedule) ActiveLabel(wordOffset int) string {
	idx := s.ActiveIndex(wordOffset)
	return fmt.Sprintf("phase %d/%d: %s", idx+1, len(s), s[idx].Label())
}

// DefaultPhases returns the default curriculum
func DefaultPhases() []Phase {
	return []Phase{
		{Start: 0, Mode: ModeToken, TokenProbability: 0},
		{Start: 300, Mode: ModeToken, TokenProbability: 0.1},
		{Start: 600, Mode: ModeToken, TokenProbability: 0.2},
		{Start: 800, Mode: ModeToken, TokenProbability: 0.3},
		{Start: 900, Mode: ModeToken, TokenProbability: 0.4},
		{Start: 1000, Mode: ModeToken, TokenProbability: 0.5},
		{Start: 1100, Mode: ModeSentence, SentenceProbability: 0.2, TokenProbability: 0.5},
		{Start: 1300, Mode: ModeSentence, SentenceProbability: 0.3, TokenProbability: 0.5},
	}
}
