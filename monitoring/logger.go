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
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

const (
	StaleRecordTTL  = time.Hour * 24
	cleanupInterval = 10 * time.Minute
	recentLogSize   = 100
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrTextNotFound   = errors.New("no induction recorded for the text")
)

// StatusWriter stores job logs to a persistent storage
type StatusWriter interface {
	Write(rec results.JobLog)
}

// InductionLogger keeps statistics of lexicon induction runs,
// both the ones performed by remote workers and the local ones.
// Data are organized by workers (load) and by texts (model size
// and evidence).
type InductionLogger struct {
	mu           sync.RWMutex
	workers      WorkersLoad
	texts        map[string]TextInduction
	recent       *collections.CircularList[results.JobLog]
	tz           *time.Location
	statusWriter StatusWriter
}

func (il *InductionLogger) Log(rec results.JobLog) {
	il.mu.Lock()
	wl, ok := il.workers[rec.WorkerID]
	if !ok {
		wl = WorkerLoad{FirstUpdate: rec.Begin, NumWorkers: 1}
	}
	wl.NumJobs++
	wl.TotalTimeSecs += rec.TimeSpent().Seconds()
	wl.LastUpdate = rec.End
	if rec.Err != nil {
		wl.NumErrors++
	}
	il.workers[rec.WorkerID] = wl
	if rec.TextID != "" {
		il.texts[rec.TextID] = il.texts[rec.TextID].update(rec)
	}
	il.recent.Append(rec)
	il.mu.Unlock()

	log.Debug().
		Str("workerId", rec.WorkerID).
		Str("textId", rec.TextID).
		Int("numEvidence", rec.NumEvidence).
		Int("lexiconSize", rec.LexiconSize).
		Float64("timeSpent", rec.TimeSpent().Seconds()).
		Msg("lexicon induction finished")
	il.statusWriter.Write(rec)
}

// recentLoad sums recent jobs accepted by the filter. The second
// value tells whether there was at least one such job.
func (il *InductionLogger) recentLoad(accept func(rec results.JobLog) bool) (WorkerLoad, bool) {
	var ans WorkerLoad
	workers := collections.NewSet[string]()
	il.recent.ForEach(func(i int, rec results.JobLog) bool {
		if !accept(rec) {
			return true
		}
		if workers.Size() == 0 {
			ans.FirstUpdate = rec.Begin
		}
		workers.Add(rec.WorkerID)
		ans.LastUpdate = rec.End
		ans.NumJobs++
		ans.TotalTimeSecs += rec.TimeSpent().Seconds()
		if rec.Err != nil {
			ans.NumErrors++
		}
		return true
	})
	ans.NumWorkers = workers.Size()
	return ans, ans.NumJobs > 0
}

func (il *InductionLogger) TotalLoad() WorkerLoad {
	il.mu.RLock()
	defer il.mu.RUnlock()
	return il.workers.SumLoad(il.tz)
}

func (il *InductionLogger) RecentLoad() WorkerLoad {
	il.mu.RLock()
	defer il.mu.RUnlock()
	ans, _ := il.recentLoad(func(rec results.JobLog) bool { return true })
	return ans
}

func (il *InductionLogger) TotalWorkerLoad(workerID string) (WorkerLoad, error) {
	il.mu.RLock()
	defer il.mu.RUnlock()
	if ans, ok := il.workers[workerID]; ok {
		return ans, nil
	}
	return WorkerLoad{}, ErrWorkerNotFound
}

func (il *InductionLogger) RecentWorkerLoad(workerID string) (WorkerLoad, error) {
	il.mu.RLock()
	defer il.mu.RUnlock()
	ans, found := il.recentLoad(func(rec results.JobLog) bool { return rec.WorkerID == workerID })
	if !found {
		return ans, ErrWorkerNotFound
	}
	return ans, nil
}

// RecentRecords returns the latest induction runs, oldest first
func (il *InductionLogger) RecentRecords() []results.JobLog {
	il.mu.RLock()
	defer il.mu.RUnlock()
	ans := make([]results.JobLog, 0, il.recent.Len())
	il.recent.ForEach(func(i int, rec results.JobLog) bool {
		ans = append(ans, rec)
		return true
	})
	return ans
}

// Texts returns induction statistics of all the texts sorted by ID
func (il *InductionLogger) Texts() []TextInduction {
	il.mu.RLock()
	defer il.mu.RUnlock()
	ans := make([]TextInduction, 0, len(il.texts))
	for _, v := range il.texts {
		ans = append(ans, v)
	}
	sort.Slice(ans, func(i, j int) bool { return ans[i].TextID < ans[j].TextID })
	return ans
}

func (il *InductionLogger) Text(textID string) (TextInduction, error) {
	il.mu.RLock()
	defer il.mu.RUnlock()
	if ans, ok := il.texts[textID]; ok {
		return ans, nil
	}
	return TextInduction{}, ErrTextNotFound
}

func (il *InductionLogger) cleanup(now time.Time) {
	il.mu.Lock()
	defer il.mu.Unlock()
	il.workers.cleanOldRecords(now)
	for k, v := range il.texts {
		if now.Sub(v.LastUpdate) > StaleRecordTTL {
			delete(il.texts, k)
		}
	}
}

func (il *InductionLogger) Start(ctx context.Context) {
	log.Info().Msg("starting induction logger")
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				il.cleanup(now)
			}
		}
	}()
}

func (il *InductionLogger) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down induction logger")
	return nil
}

// NewInductionLogger creates a logger. The statusWriter is optional.
func NewInductionLogger(statusWriter StatusWriter, tz *time.Location) *InductionLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	return &InductionLogger{
		workers:      make(WorkersLoad),
		texts:        make(map[string]TextInduction),
		recent:       collections.NewCircularList[results.JobLog](recentLogSize),
		tz:           tz,
		statusWriter: statusWriter,
	}
}
