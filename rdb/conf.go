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

package rdb

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	dfltPort              = 6379
	dfltKeyPrefix         = "blendreader"
	dfltSessionTTLSecs    = 24 * 3600
	dfltChannelQuery      = "blendreaderQueries"
	dfltChannelResultPref = "blendreaderResults"
	dfltQueueKey          = "blendreaderQueue"
)

type Conf struct {
	Host                string `json:"host"`
	Port                int    `json:"port"`
	DB                  int    `json:"db"`
	Password            string `json:"password"`
	KeyPrefix           string `json:"keyPrefix"`
	QueueKey            string `json:"queueKey"`
	ChannelQuery        string `json:"channelQuery"`
	ChannelResultPrefix string `json:"channelResultPrefix"`

	// SessionTTLSecs specifies how long a reading session snapshot
	// survives in Redis after its last modification
	SessionTTLSecs int `json:"sessionTTLSecs"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.Host == "" {
		return fmt.Errorf("missing `%s.host`", confContext)
	}
	if conf.Port == 0 {
		conf.Port = dfltPort
		log.Warn().Int("port", dfltPort).Msgf("`%s.port` not set, using default", confContext)
	}
	if conf.KeyPrefix == "" {
		conf.KeyPrefix = dfltKeyPrefix
		log.Warn().
			Str("prefix", dfltKeyPrefix).
			Msgf("`%s.keyPrefix` not set, using default", confContext)
	}
	if conf.QueueKey == "" {
		conf.QueueKey = dfltQueueKey
		log.Warn().
			Str("key", dfltQueueKey).
			Msgf("`%s.queueKey` not set, using default", confContext)
	}
	if conf.ChannelQuery == "" {
		conf.ChannelQuery = dfltChannelQuery
		log.Warn().
			Str("channel", dfltChannelQuery).
			Msg("Redis channel for queries not specified, using default")
	}
	if conf.ChannelResultPrefix == "" {
		conf.ChannelResultPrefix = dfltChannelResultPref
		log.Warn().
			Str("channel", dfltChannelResultPref).
			Msg("Redis channel for results not specified, using default")
	}
	if conf.SessionTTLSecs == 0 {
		conf.SessionTTLSecs = dfltSessionTTLSecs
		log.Warn().
			Int("value", dfltSessionTTLSecs).
			Msgf("`%s.sessionTTLSecs` not set, using default", confContext)

	} else if conf.SessionTTLSecs < 0 {
		return fmt.Errorf("`%s.sessionTTLSecs` must be positive", confContext)
	}
	return nil
}
