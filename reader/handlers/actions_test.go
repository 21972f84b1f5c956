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

package handlers

import (
	"blendreader/blend"
	"blendreader/corpus"
	"blendreader/lexicon"
	"blendreader/merror"
	"blendreader/reader"
	"blendreader/textproc"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	lib := corpus.NewLibrary(
		&corpus.Text{
			ID:         "cats",
			Title:      "Cats",
			SourceLang: textproc.LangEnglish,
			TargetLang: textproc.LangFrench,
			Pairs: []corpus.SentencePair{
				{Index: 0, Source: "cat sat", Target: "chat assis"},
				{Index: 1, Source: "cat ran", Target: "chat courut"},
			},
		},
	)
	conf := &blend.Conf{MinWordsPerChunk: 2, EMRounds: 8}
	assert.NoError(t, conf.ValidateAndDefaults("blending"))
	extractor := textproc.NewExtractor(nil)
	factory := func() *reader.Controller {
		return reader.NewController(
			lib,
			reader.NewLocalInduction(lexicon.NewInducer(extractor, conf.EMRounds), nil),
			extractor,
			conf,
		)
	}
	actions := NewActions(lib, reader.NewSessions(factory, nil, time.Hour))

	engine := gin.New()
	engine.GET("/texts", actions.ListTexts)
	engine.POST("/sessions", actions.CreateSession)
	engine.GET("/sessions/:sessionId", actions.GetSession)
	engine.POST("/sessions/:sessionId/load", actions.LoadText)
	engine.POST("/sessions/:sessionId/start", actions.Start)
	engine.POST("/sessions/:sessionId/advance", actions.Advance)
	engine.POST("/sessions/:sessionId/reset", actions.Reset)
	engine.GET("/sessions/:sessionId/lexicon", actions.Lexicon)
	engine.DELETE("/sessions/:sessionId", actions.DeleteSession)
	return engine
}

func doRequest(engine *gin.Engine, method, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, nil)
	engine.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) sessionResponse {
	var ans sessionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	return ans
}

func TestListTexts(t *testing.T) {
	engine := newTestRouter(t)
	w := doRequest(engine, http.MethodGet, "/texts")
	assert.Equal(t, http.StatusOK, w.Code)
	var ans textListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Len(t, ans.Texts, 1)
	assert.Equal(t, "cats", ans.Texts[0].ID)
	assert.Equal(t, 2, ans.Texts[0].NumSentences)
	assert.Equal(t, 4, ans.Texts[0].NumWords)
}

func TestSessionLifecycle(t *testing.T) {
	engine := newTestRouter(t)
	w := doRequest(engine, http.MethodPost, "/sessions?textId=cats")
	assert.Equal(t, http.StatusOK, w.Code)
	created := decodeSession(t, w)
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, 0, created.View.RevealedSentenceCount)
	base := "/sessions/" + created.SessionID

	w = doRequest(engine, http.MethodPost, base+"/start")
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeSession(t, w)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.View.RevealedSentenceCount)
	assert.Len(t, resp.View.Sentences, 1)

	// start is valid only once
	resp = decodeSession(t, doRequest(engine, http.MethodPost, base+"/start"))
	assert.False(t, resp.Changed)

	resp = decodeSession(t, doRequest(engine, http.MethodPost, base+"/advance?chunks=3"))
	assert.True(t, resp.Changed)
	assert.True(t, resp.View.Finished)

	resp = decodeSession(t, doRequest(engine, http.MethodPost, base+"/advance"))
	assert.False(t, resp.Changed)
	assert.Equal(t, 2, resp.View.RevealedSentenceCount)

	resp = decodeSession(t, doRequest(engine, http.MethodGet, base))
	assert.False(t, resp.Changed)
	assert.Equal(t, "cats", resp.View.TextID)

	resp = decodeSession(t, doRequest(engine, http.MethodPost, base+"/reset"))
	assert.True(t, resp.Changed)
	assert.Equal(t, 0, resp.View.RevealedSentenceCount)

	w = doRequest(engine, http.MethodGet, base+"/lexicon")
	assert.Equal(t, http.StatusOK, w.Code)
	var lex lexiconResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &lex))
	assert.Equal(t, "cats", lex.TextID)
	assert.Contains(t, lex.Entries, lexicon.Entry{Source: "cat", Target: "chat"})

	w = doRequest(engine, http.MethodDelete, base)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(engine, http.MethodGet, base)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestErrors(t *testing.T) {
	engine := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, doRequest(engine, http.MethodPost, "/sessions").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(engine, http.MethodPost, "/sessions?textId=foo").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(engine, http.MethodPost, "/sessions/xyz/start").Code)

	created := decodeSession(t, doRequest(engine, http.MethodPost, "/sessions?textId=cats"))
	base := "/sessions/" + created.SessionID
	assert.Equal(t, http.StatusBadRequest, doRequest(engine, http.MethodPost, base+"/load").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(engine, http.MethodPost, base+"/load?textId=foo").Code)

	resp := decodeSession(t, doRequest(engine, http.MethodPost, base+"/load?textId=cats"))
	assert.True(t, resp.Changed)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errorStatus(fmt.Errorf("load: %w", corpus.ErrNotFound)))
	assert.Equal(t, http.StatusNotFound, errorStatus(reader.ErrSessionNotFound))
	assert.Equal(t, http.StatusNotFound, errorStatus(merror.NotFoundError{Msg: "x"}))
	assert.Equal(t, http.StatusBadRequest, errorStatus(merror.InputError{Msg: "x"}))
	assert.Equal(t, http.StatusGatewayTimeout, errorStatus(fmt.Errorf("w: %w", merror.TimeoutError{Msg: "x"})))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(errors.New("x")))
}
