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

package results

import (
	"blendreader/lexicon"
	"blendreader/merror"
	"errors"
	"math"
	"time"

	"github.com/bytedance/sonic"
)

const (
	ResultTypeLexiconInduction ResultType = "lexiconInduction"
	ResultTypeError            ResultType = "error"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

// SerializableResult is a result of a worker job
type SerializableResult interface {
	Type() ResultType
	Err() error
}

func errToStr(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

// ----

// JobLog describes a single lexicon induction run
type JobLog struct {
	WorkerID    string    `json:"workerId"`
	Func        string    `json:"func"`
	TextID      string    `json:"textId,omitempty"`
	Rounds      int       `json:"rounds"`
	NumEvidence int       `json:"numEvidence"`
	LexiconSize int       `json:"lexiconSize"`
	Begin       time.Time `json:"begin"`
	End         time.Time `json:"end"`
	Err         error     `json:"error"`
}

// SetInduction attaches numbers describing an induced model
func (jl *JobLog) SetInduction(res *LexiconInduction) {
	if res == nil {
		return
	}
	jl.TextID = res.TextID
	jl.Rounds = res.Rounds
	jl.NumEvidence = res.NumEvidence
	jl.LexiconSize = len(res.Model.Lexicon())
}

func (jl JobLog) TimeSpent() time.Duration {
	return jl.End.Sub(jl.Begin)
}

func (jl JobLog) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		WorkerID    string    `json:"workerId"`
		Func        string    `json:"func"`
		TextID      string    `json:"textId,omitempty"`
		Rounds      int       `json:"rounds"`
		NumEvidence int       `json:"numEvidence"`
		LexiconSize int       `json:"lexiconSize"`
		Begin       time.Time `json:"begin"`
		End         time.Time `json:"end"`
		TimeSpent   float64   `json:"timeSpentSecs"`
		Err         string    `json:"error,omitempty"`
	}{
		WorkerID:    jl.WorkerID,
		Func:        jl.Func,
		TextID:      jl.TextID,
		Rounds:      jl.Rounds,
		NumEvidence: jl.NumEvidence,
		LexiconSize: jl.LexiconSize,
		Begin:       jl.Begin,
		End:         jl.End,
		TimeSpent:   NormRound(jl.TimeSpent().Seconds()),
		Err:         errToStr(jl.Err),
	})
}

// ----

type ErrorResult struct {
	Func  string `json:"func"`
	Error string `json:"error"`
}

func (res *ErrorResult) Err() error {
	if res.Error != "" {
		return errors.New(res.Error)
	}
	return nil
}

func (res *ErrorResult) Type() ResultType {
	return ResultTypeError
}

// ----

// LexiconInduction is a translation model induced by a worker
// for a single text
type LexiconInduction struct {
	TextID      string
	Rounds      int
	NumEvidence int
	Model       lexicon.Model
	Error       error
}

func (res *LexiconInduction) Err() error {
	return res.Error
}

func (res *LexiconInduction) Type() ResultType {
	return ResultTypeLexiconInduction
}

type lexiconInductionResponse struct {
	TextID      string        `json:"textId"`
	Rounds      int           `json:"rounds"`
	NumEvidence int           `json:"numEvidence"`
	Model       lexicon.Model `json:"model"`
	ResultType  ResultType    `json:"resultType"`
	Error       string        `json:"error,omitempty"`
	ErrorKind   string        `json:"errorKind,omitempty"`
}

func (res *LexiconInduction) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(lexiconInductionResponse{
		TextID:      res.TextID,
		Rounds:      res.Rounds,
		NumEvidence: res.NumEvidence,
		Model:       res.Model,
		ResultType:  res.Type(),
		Error:       errToStr(res.Error),
		ErrorKind:   merror.UserErrorKind(res.Error),
	})
}

func (res *LexiconInduction) UnmarshalJSON(data []byte) error {
	var tmp lexiconInductionResponse
	if err := sonic.Unmarshal(data, &tmp); err != nil {
		return err
	}
	res.TextID = tmp.TextID
	res.Rounds = tmp.Rounds
	res.NumEvidence = tmp.NumEvidence
	res.Model = tmp.Model
	if tmp.Error != "" {
		res.Error = merror.FromUserErrorKind(tmp.ErrorKind, tmp.Error)
	}
	return nil
}

// NormRound performs a normalized rounding to
// the three decimal places so we can provide
// consistent rounding across all the results
func NormRound(val float64) float64 {
	return math.Round(val*1000) / 1000
}
