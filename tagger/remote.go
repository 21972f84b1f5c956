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

package tagger

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/czcorpus/cnc-gokit/httpclient"
	"github.com/rs/zerolog/log"
)

// RemoteTagger calls an external tagging service over HTTP
type RemoteTagger struct {
	taggerURL string
	lang      string
	client    *http.Client
}

func (rt *RemoteTagger) Tag(sentence string) ([]Term, error) {
	req, err := http.NewRequest("GET", rt.taggerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tagger request: %w", err)
	}
	q := req.URL.Query()
	q.Add("q", sentence)
	q.Add("lang", rt.lang)
	req.URL.RawQuery = q.Encode()

	resp, err := rt.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call remote tagger: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote tagger response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Debug().
			Int("status", resp.StatusCode).
			Str("url", rt.taggerURL).
			Msg("remote tagger responded with an error")
		return nil, fmt.Errorf("remote tagger responded with status %d", resp.StatusCode)
	}
	var ans []Term
	if err := json.Unmarshal(body, &ans); err != nil {
		return nil, fmt.Errorf("failed to decode remote tagger response: %w", err)
	}
	return ans, nil
}

func NewRemoteTagger(lang string, conf *EngineConf) *RemoteTagger {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = httpclient.TransportMaxIdleConns
	transport.MaxConnsPerHost = httpclient.TransportMaxConnsPerHost
	transport.MaxIdleConnsPerHost = httpclient.TransportMaxIdleConnsPerHost
	transport.IdleConnTimeout = time.Duration(conf.IdleConnTimeoutSecs) * time.Second
	return &RemoteTagger{
		taggerURL: conf.URL,
		lang:      lang,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Timeout:   time.Duration(conf.RequestTimeoutSecs) * time.Second,
			Transport: transport,
		},
	}
}
