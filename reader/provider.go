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

package reader

import (
	"blendreader/corpus"
	"blendreader/lexicon"
	"blendreader/merror"
	"blendreader/rdb"
	"blendreader/results"
	"context"
	"fmt"
	"time"
)

const (
	LocalWorkerID = "local"
)

// ModelProvider induces translation models of texts
type ModelProvider interface {
	TranslationModel(ctx context.Context, text *corpus.Text) (lexicon.Model, error)
}

type jobLogger interface {
	Log(rec results.JobLog)
}

// ---

// LocalInduction runs the inducer directly in the API process
type LocalInduction struct {
	inducer   *lexicon.Inducer
	jobLogger jobLogger
}

func (li *LocalInduction) TranslationModel(ctx context.Context, text *corpus.Text) (lexicon.Model, error) {
	rec := results.JobLog{
		WorkerID: LocalWorkerID,
		Func:     rdb.FuncInduceLexicon,
		Begin:    time.Now(),
	}
	evidence := li.inducer.Evidence(text)
	ans := lexicon.Train(evidence, li.inducer.Rounds())
	rec.End = time.Now()
	rec.SetInduction(&results.LexiconInduction{
		TextID:      text.ID,
		Rounds:      li.inducer.Rounds(),
		NumEvidence: len(evidence),
		Model:       ans,
	})
	if li.jobLogger != nil {
		li.jobLogger.Log(rec)
	}
	return ans, nil
}

func NewLocalInduction(inducer *lexicon.Inducer, jobLogger jobLogger) *LocalInduction {
	return &LocalInduction{
		inducer:   inducer,
		jobLogger: jobLogger,
	}
}

// ---

type queryPublisher interface {
	PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error)
}

// WorkerInduction delegates model induction to worker processes
// via the Redis query queue.
type WorkerInduction struct {
	queue     queryPublisher
	rounds    int
	timeout   time.Duration
	jobLogger jobLogger
}

func (wi *WorkerInduction) logResult(
	wr *rdb.WorkerResult,
	textID string,
	res *results.LexiconInduction,
	err error,
) {
	if wi.jobLogger == nil || wr == nil || wr.ProcBegin.IsZero() {
		return
	}
	rec := results.JobLog{
		WorkerID: wr.WorkerID,
		Func:     rdb.FuncInduceLexicon,
		TextID:   textID,
		Begin:    wr.ProcBegin,
		End:      wr.ProcEnd,
		Err:      err,
	}
	rec.SetInduction(res)
	wi.jobLogger.Log(rec)
}

// userError makes sure a user error reported by a worker keeps
// its class on the API side
func userError(wr *rdb.WorkerResult, err error) error {
	if err == nil || wr == nil || !wr.HasUserError || merror.IsUserError(err) {
		return err
	}
	return merror.InputError{Msg: err.Error()}
}

func (wi *WorkerInduction) TranslationModel(ctx context.Context, text *corpus.Text) (lexicon.Model, error) {
	query, err := rdb.NewInduceLexiconQuery(rdb.InduceLexiconArgs{TextID: text.ID, Rounds: wi.rounds})
	if err != nil {
		return nil, err
	}
	wait, err := wi.queue.PublishQuery(query)
	if err != nil {
		return nil, fmt.Errorf("failed to publish induction query: %w", err)
	}
	timer := time.NewTimer(wi.timeout)
	defer timer.Stop()
	select {
	case wr := <-wait:
		res, err := rdb.DeserializeLexiconInductionResult(wr)
		if err != nil {
			err = userError(wr, err)
			wi.logResult(wr, text.ID, nil, err)
			return nil, err
		}
		wi.logResult(wr, text.ID, res, res.Err())
		if err := userError(wr, res.Err()); err != nil {
			return nil, err
		}
		if res.Model == nil {
			res.Model = make(lexicon.Model)
		}
		return res.Model, nil
	case <-timer.C:
		return nil, merror.TimeoutError{
			Msg: fmt.Sprintf("lexicon induction of %s timed out after %s", text.ID, wi.timeout)}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func NewWorkerInduction(
	queue queryPublisher,
	rounds int,
	timeout time.Duration,
	jobLogger jobLogger,
) *WorkerInduction {
	return &WorkerInduction{
		queue:     queue,
		rounds:    rounds,
		timeout:   timeout,
		jobLogger: jobLogger,
	}
}
