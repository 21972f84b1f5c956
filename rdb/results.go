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
	"blendreader/results"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	FuncInduceLexicon = "induceLexicon"
)

// InduceLexiconArgs are arguments of the `induceLexicon` worker function
type InduceLexiconArgs struct {
	TextID string `json:"textId"`
	Rounds int    `json:"rounds"`
}

// NewInduceLexiconQuery creates a query for the worker
func NewInduceLexiconQuery(args InduceLexiconArgs) (Query, error) {
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return Query{}, fmt.Errorf("failed to create induceLexicon query: %w", err)
	}
	return Query{Func: FuncInduceLexicon, Args: rawArgs}, nil
}

// ----

// WorkerResult wraps a serialized result along with some
// job metadata
type WorkerResult struct {
	ID           string             `json:"id"`
	WorkerID     string             `json:"workerId"`
	ResultType   results.ResultType `json:"resultType"`
	Value        json.RawMessage    `json:"value"`
	HasUserError bool               `json:"hasUserError"`
	ProcBegin    time.Time          `json:"procBegin"`
	ProcEnd      time.Time          `json:"procEnd"`
}

// AttachValue serializes the value into the result. In case
// the serialization fails, an ErrorResult is attached instead.
func (wr *WorkerResult) AttachValue(value results.SerializableResult) {
	data, err := json.Marshal(value)
	if err != nil {
		wr.ResultType = results.ResultTypeError
		wr.Value, _ = json.Marshal(&results.ErrorResult{Error: err.Error()})
		return
	}
	wr.ResultType = value.Type()
	wr.Value = data
}

func CreateWorkerResult(value results.SerializableResult) (*WorkerResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker result: %w", err)
	}
	return &WorkerResult{
		ResultType: value.Type(),
		Value:      data,
	}, nil
}

// DeserializeLexiconInductionResult decodes a worker result. Worker
// errors (ErrorResult) are returned as the error value.
func DeserializeLexiconInductionResult(res *WorkerResult) (*results.LexiconInduction, error) {
	if res == nil {
		return nil, errors.New("no worker result")
	}
	switch res.ResultType {
	case results.ResultTypeError:
		var errRes results.ErrorResult
		if err := json.Unmarshal(res.Value, &errRes); err != nil {
			return nil, fmt.Errorf("failed to deserialize error result: %w", err)
		}
		return nil, fmt.Errorf("worker error (%s): %w", errRes.Func, errRes.Err())
	case results.ResultTypeLexiconInduction:
		var ans results.LexiconInduction
		if err := json.Unmarshal(res.Value, &ans); err != nil {
			return nil, fmt.Errorf("failed to deserialize lexicon induction: %w", err)
		}
		return &ans, nil
	default:
		return nil, fmt.Errorf("unexpected result type `%s`", res.ResultType)
	}
}
