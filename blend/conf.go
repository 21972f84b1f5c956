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
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	dfltMinWordsPerChunk = 500
	dfltEMRounds         = 8
)

// Conf configures the reading curriculum
type Conf struct {
	Phases           []Phase `json:"phases"`
	MinWordsPerChunk int     `json:"minWordsPerChunk"`
	EMRounds         int     `json:"emRounds"`

	schedule Schedule
}

// Schedule returns the validated phase schedule.
// ValidateAndDefaults must be called first.
func (conf *Conf) Schedule() Schedule {
	return conf.schedule
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if len(conf.Phases) == 0 {
		conf.Phases = DefaultPhases()
		log.Warn().
			Int("numPhases", len(conf.Phases)).
			Msgf("`%s.phases` not set, using default curriculum", confContext)
	}
	sched, err := NewSchedule(conf.Phases)
	if err != nil {
		return fmt.Errorf("invalid `%s.phases`: %w", confContext, err)
	}
	conf.schedule = sched
	if conf.MinWordsPerChunk == 0 {
		conf.MinWordsPerChunk = dfltMinWordsPerChunk
		log.Warn().
			Int("value", dfltMinWordsPerChunk).
			Msgf("`%s.minWordsPerChunk` not set, using default", confContext)

	} else if conf.MinWordsPerChunk < 0 {
		return fmt.Errorf("`%s.minWordsPerChunk` must be positive", confContext)
	}
	if conf.EMRounds == 0 {
		conf.EMRounds = dfltEMRounds
		log.Warn().
			Int("value", dfltEMRounds).
			Msgf("`%s.emRounds` not set, using default", confContext)

	} else if conf.EMRounds < 0 {
		return fmt.Errorf("`%s.emRounds` must be positive", confContext)
	}
	return nil
}

// DefaultConf returns a validated default configuration
func DefaultConf() *Conf {
	sched, err := NewSchedule(DefaultPhases())
	if err != nil {
		panic(err)
	}
	return &Conf{
		Phases:           DefaultPhases(),
		MinWordsPerChunk: dfltMinWordsPerChunk,
		EMRounds:         dfltEMRounds,
		schedule:         sched,
	}
}
