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

package cnf

import (
	"blendreader/blend"
	"blendreader/corpus"
	"blendreader/monitoring"
	"blendreader/rdb"
	"blendreader/tagger"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerWriteTimeoutSecs = 30
	dfltServerReadTimeoutSecs  = 15
	dfltTimeZone               = "Europe/Prague"
	dfltInductionTimeoutSecs   = 60
	dfltSessionTTLSecs         = 3600
	dfltListenPort             = 8080
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string             `json:"listenAddress"`
	PublicURLs             []string           `json:"publicUrls"`
	ListenPort             int                `json:"listenPort"`
	ServerReadTimeoutSecs  int                `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string           `json:"corsAllowedOrigins"`
	AuthHeaderName         string             `json:"authHeaderName"`
	AuthTokens             []string           `json:"authTokens"`
	LogFile                string             `json:"logFile"`
	LogLevel               logging.LogLevel   `json:"logLevel"`
	TimeZone               string             `json:"timeZone"`
	Texts                  *corpus.TextsSetup `json:"texts"`
	Blending               *blend.Conf        `json:"blending"`
	Tagging                tagger.Conf        `json:"tagging"`
	Redis                  *rdb.Conf          `json:"redis"`
	Monitoring             *monitoring.Conf   `json:"monitoring"`

	// InductionWorkers delegates lexicon induction to `worker`
	// processes (requires Redis).
	InductionWorkers     bool `json:"inductionWorkers"`
	InductionTimeoutSecs int  `json:"inductionTimeoutSecs"`

	// SessionTTLSecs is an idle time after which a session is
	// removed from memory
	SessionTTLSecs int `json:"sessionTTLSecs"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call ValidateAndDefaults()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

func (conf *Conf) HasRedis() bool {
	return conf.Redis != nil
}

func (conf *Conf) InductionTimeout() time.Duration {
	return time.Duration(conf.InductionTimeoutSecs) * time.Second
}

func (conf *Conf) SessionTTL() time.Duration {
	return time.Duration(conf.SessionTTLSecs) * time.Second
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	conf, err := parseConfig(rawData)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	conf.srcPath = path
	return conf
}

func parseConfig(data []byte) (*Conf, error) {
	var conf Conf
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func validateAndDefaults(conf *Conf) error {
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if len(conf.PublicURLs) == 0 {
		conf.PublicURLs = []string{fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)}
		log.Warn().Strs("addresses", conf.PublicURLs).Msg("publicUrls not set, using listenAddress")
	}

	if conf.Texts == nil {
		conf.Texts = &corpus.TextsSetup{}
		log.Warn().Msg("`texts` section not set, using built-in texts only")
	}
	if err := conf.Texts.ValidateAndDefaults("texts"); err != nil {
		return err
	}
	if conf.Blending == nil {
		conf.Blending = &blend.Conf{}
	}
	if err := conf.Blending.ValidateAndDefaults("blending"); err != nil {
		return err
	}
	if conf.Tagging == nil {
		conf.Tagging = tagger.DefaultConf()
		log.Warn().Msg("`tagging` section not set, using the built-in English tagger")
	}
	if err := conf.Tagging.ValidateAndDefaults("tagging"); err != nil {
		return err
	}
	if conf.Redis != nil {
		if err := conf.Redis.ValidateAndDefaults("redis"); err != nil {
			return err
		}

	} else {
		log.Warn().Msg("`redis` section not set, sessions will not be persisted")
	}
	if conf.InductionWorkers && conf.Redis == nil {
		return errors.New("`inductionWorkers` requires the `redis` section")
	}
	if conf.InductionTimeoutSecs == 0 {
		conf.InductionTimeoutSecs = dfltInductionTimeoutSecs
		if conf.InductionWorkers {
			log.Warn().Msgf(
				"inductionTimeoutSecs not specified, using default: %d",
				dfltInductionTimeoutSecs,
			)
		}
	}
	if conf.SessionTTLSecs == 0 {
		conf.SessionTTLSecs = dfltSessionTTLSecs
		log.Warn().Msgf("sessionTTLSecs not specified, using default: %d", dfltSessionTTLSecs)

	} else if conf.SessionTTLSecs < 0 {
		return errors.New("`sessionTTLSecs` must be positive")
	}
	if conf.Monitoring == nil {
		conf.Monitoring = &monitoring.Conf{}
	}

	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

func ValidateAndDefaults(conf *Conf) {
	if err := validateAndDefaults(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
