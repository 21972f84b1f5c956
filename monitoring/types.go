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
	"time"

	"github.com/bytedance/sonic"
)

// WorkerLoad summarizes jobs processed by a worker (or a group
// of workers) within a time span.
type WorkerLoad struct {
	NumJobs       int
	TotalTimeSecs float64
	NumErrors     int
	FirstUpdate   time.Time
	LastUpdate    time.Time
	NumWorkers    int
}

// TotalSpan returns time span covered by the load info
func (wl WorkerLoad) TotalSpan() time.Duration {
	return wl.LastUpdate.Sub(wl.FirstUpdate)
}

// AvgLoad is the ratio of busy time to the covered time span
// (per worker)
func (wl WorkerLoad) AvgLoad() float64 {
	span := wl.TotalSpan().Seconds()
	if wl.TotalTimeSecs == 0 || span <= 0 || wl.NumWorkers == 0 {
		return 0
	}
	return wl.TotalTimeSecs / span / float64(wl.NumWorkers)
}

func (wl WorkerLoad) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !wl.FirstUpdate.IsZero() {
		t0 = &wl.FirstUpdate
	}
	if !wl.LastUpdate.IsZero() {
		t1 = &wl.LastUpdate
	}
	return sonic.Marshal(
		struct {
			NumJobs       int        `json:"numJobs"`
			TotalTimeSecs float64    `json:"totalTimeSecs"`
			NumErrors     int        `json:"numErrors"`
			FirstUpdate   *time.Time `json:"firstUpdate,omitempty"`
			LastUpdate    *time.Time `json:"lastUpdate,omitempty"`
			NumWorkers    int        `json:"numWorkers"`
			AvgLoad       float64    `json:"avgLoad"`
		}{
			NumJobs:       wl.NumJobs,
			TotalTimeSecs: wl.TotalTimeSecs,
			NumErrors:     wl.NumErrors,
			FirstUpdate:   t0,
			LastUpdate:    t1,
			NumWorkers:    wl.NumWorkers,
			AvgLoad:       wl.AvgLoad(),
		},
	)
}

// ---

// WorkersLoad maps worker IDs to their total loads
type WorkersLoad map[string]WorkerLoad

// SumLoad merges loads of all the workers
func (wl WorkersLoad) SumLoad(tz *time.Location) WorkerLoad {
	var ans WorkerLoad
	for _, v := range wl {
		ans.NumJobs += v.NumJobs
		ans.NumErrors += v.NumErrors
		ans.TotalTimeSecs += v.TotalTimeSecs
		if ans.FirstUpdate.IsZero() || v.FirstUpdate.Before(ans.FirstUpdate) {
			ans.FirstUpdate = v.FirstUpdate
		}
		if v.LastUpdate.After(ans.LastUpdate) {
			ans.LastUpdate = v.LastUpdate
		}
		ans.NumWorkers++
	}
	if tz != nil {
		if !ans.FirstUpdate.IsZero() {
			ans.FirstUpdate = ans.FirstUpdate.In(tz)
		}
		if !ans.LastUpdate.IsZero() {
			ans.LastUpdate = ans.LastUpdate.In(tz)
		}
	}
	return ans
}

func (wl WorkersLoad) cleanOldRecords(now time.Time) {
	for k, v := range wl {
		if now.Sub(v.LastUpdate) > StaleRecordTTL {
			delete(wl, k)
		}
	}
}

// ---

// TextInduction describes lexicon induction runs of a single text.
// The `Last*` values come from the latest successful run.
type TextInduction struct {
	TextID          string    `json:"textId"`
	NumJobs         int       `json:"numJobs"`
	NumErrors       int       `json:"numErrors"`
	TotalTimeSecs   float64   `json:"totalTimeSecs"`
	LastWorkerID    string    `json:"lastWorkerId"`
	LastRounds      int       `json:"lastRounds"`
	LastNumEvidence int       `json:"lastNumEvidence"`
	LastLexiconSize int       `json:"lastLexiconSize"`
	LastUpdate      time.Time `json:"lastUpdate"`
}

// AvgTimeSecs is the mean duration of a single induction
func (ti TextInduction) AvgTimeSecs() float64 {
	if ti.NumJobs == 0 {
		return 0
	}
	return ti.TotalTimeSecs / float64(ti.NumJobs)
}

func (ti TextInduction) update(rec results.JobLog) TextInduction {
	ti.TextID = rec.TextID
	ti.NumJobs++
	ti.TotalTimeSecs += rec.TimeSpent().Seconds()
	ti.LastUpdate = rec.End
	if rec.Err != nil {
		ti.NumErrors++
		return ti
	}
	ti.LastWorkerID = rec.WorkerID
	ti.LastRounds = rec.Rounds
	ti.LastNumEvidence = rec.NumEvidence
	ti.LastLexiconSize = rec.LexiconSize
	return ti
}
