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

package monitoring

import (
	"blendreader/results"
	"context"
	"time"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

/*
Expected tables:

create table blendreader_induction_stats (
  "time" timestamp with time zone NOT NULL,
  worker_id text,
  text_id text,
  num_jobs int,
  num_errors int,
  duration_secs float,
  rounds int,
  num_evidence int,
  lexicon_size int
);

select create_hypertable('blendreader_induction_stats', 'time');
*/

const (
	statsTableName = "blendreader_induction_stats"
)

type Conf struct {
	DB *hltscl.PgConf `json:"db"`
}

func (conf *Conf) IsDBConfigured() bool {
	return conf != nil && conf.DB != nil
}

// -----------------------------------

type NullStatusWriter struct{}

func (n *NullStatusWriter) Write(rec results.JobLog) {}

// -----------------------------------

type TimescaleDBWriter struct {
	tableWriter *hltscl.TableWriter
	opsDataCh   chan<- hltscl.Entry
	errCh       <-chan hltscl.WriteError
	location    *time.Location
}

func (sw *TimescaleDBWriter) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("about to close StatusWriter")
				return
			case err := <-sw.errCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Msg("error writing data to TimescaleDB")
			}
		}
	}()
}

func (sw *TimescaleDBWriter) Stop(ctx context.Context) error {
	log.Warn().Msg("stopping StatusWriter")
	return nil
}

func (sw *TimescaleDBWriter) Write(item results.JobLog) {
	var numErr int
	if item.Err != nil {
		numErr++
	}
	sw.opsDataCh <- *sw.tableWriter.NewEntry(item.End.In(sw.location)).
		Str("worker_id", item.WorkerID).
		Str("text_id", item.TextID).
		Int("num_jobs", 1).
		Int("num_errors", numErr).
		Float("duration_secs", item.TimeSpent().Seconds()).
		Int("rounds", item.Rounds).
		Int("num_evidence", item.NumEvidence).
		Int("lexicon_size", item.LexiconSize)
}

func NewTimescaleDBWriter(
	ctx context.Context,
	conf hltscl.PgConf,
	tz *time.Location,
) (*TimescaleDBWriter, error) {

	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		return nil, err
	}
	twriter := hltscl.NewTableWriter(conn, statsTableName, "time", tz)
	opsDataCh, errCh := twriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)

	return &TimescaleDBWriter{
		tableWriter: twriter,
		opsDataCh:   opsDataCh,
		errCh:       errCh,
		location:    tz,
	}, nil
}
