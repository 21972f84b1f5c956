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
	"blendreader/corpus"
	"blendreader/lexicon"
	"blendreader/merror"
	"blendreader/reader"
	"errors"
	"fmt"
	"net/http"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type textInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Source       string `json:"source"`
	SourceLang   string `json:"sourceLang"`
	TargetLang   string `json:"targetLang"`
	NumSentences int    `json:"numSentences"`
	NumWords     int    `json:"numWords"`
}

type textListResponse struct {
	Texts []textInfo `json:"texts"`
}

type sessionResponse struct {
	SessionID string      `json:"sessionId"`
	Changed   bool        `json:"changed"`
	View      reader.View `json:"view"`
}

type lexiconResponse struct {
	SessionID string          `json:"sessionId"`
	TextID    string          `json:"textId"`
	Entries   []lexicon.Entry `json:"entries"`
}

type Actions struct {
	texts    corpus.Provider
	sessions *reader.Sessions
}

func errorStatus(err error) int {
	var nfErr merror.NotFoundError
	var inputErr merror.InputError
	var timeoutErr merror.TimeoutError
	switch {
	case errors.Is(err, corpus.ErrNotFound), errors.Is(err, reader.ErrSessionNotFound), errors.As(err, &nfErr):
		return http.StatusNotFound
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (a *Actions) respondError(ctx *gin.Context, err error) {
	uniresp.WriteJSONErrorResponse(
		ctx.Writer,
		uniresp.NewActionErrorFrom(err),
		errorStatus(err),
	)
}

func (a *Actions) ListTexts(ctx *gin.Context) {
	ans := textListResponse{
		Texts: collections.SliceMap(
			a.texts.List(),
			func(t *corpus.Text, i int) textInfo {
				return textInfo{
					ID:           t.ID,
					Title:        t.Title,
					Description:  t.Description,
					Source:       t.Source,
					SourceLang:   t.SourceLang,
					TargetLang:   t.TargetLang,
					NumSentences: len(t.Pairs),
					NumWords:     t.NumWords(),
				}
			},
		),
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) CreateSession(ctx *gin.Context) {
	textID := ctx.Query("textId")
	if textID == "" {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("missing `textId` argument"), http.StatusBadRequest)
		return
	}
	sessionID, view, err := a.sessions.Create(ctx.Request.Context(), textID)
	if err != nil {
		a.respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(
		ctx.Writer,
		sessionResponse{SessionID: sessionID, Changed: true, View: view},
	)
}

// runCommand applies a session command and responds with
// the resulting view
func (a *Actions) runCommand(ctx *gin.Context, cmd func(ctrl *reader.Controller) (bool, error)) {
	sessionID := ctx.Param("sessionId")
	var ans sessionResponse
	ans.SessionID = sessionID
	err := a.sessions.With(
		ctx.Request.Context(),
		sessionID,
		func(ctrl *reader.Controller) error {
			changed, err := cmd(ctrl)
			if err != nil {
				return err
			}
			ans.Changed = changed
			ans.View = ctrl.View()
			return nil
		},
	)
	if err != nil {
		a.respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) GetSession(ctx *gin.Context) {
	a.runCommand(ctx, func(ctrl *reader.Controller) (bool, error) {
		return false, nil
	})
}

func (a *Actions) LoadText(ctx *gin.Context) {
	textID := ctx.Query("textId")
	if textID == "" {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("missing `textId` argument"), http.StatusBadRequest)
		return
	}
	a.runCommand(ctx, func(ctrl *reader.Controller) (bool, error) {
		if err := ctrl.LoadText(ctx.Request.Context(), textID); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (a *Actions) Start(ctx *gin.Context) {
	a.runCommand(ctx, func(ctrl *reader.Controller) (bool, error) {
		return ctrl.Start(), nil
	})
}

func (a *Actions) Advance(ctx *gin.Context) {
	numChunks, ok := unireq.GetURLIntArgOrFail(ctx, "chunks", 1)
	if !ok {
		return
	}
	a.runCommand(ctx, func(ctrl *reader.Controller) (bool, error) {
		return ctrl.Advance(numChunks), nil
	})
}

func (a *Actions) Reset(ctx *gin.Context) {
	a.runCommand(ctx, func(ctrl *reader.Controller) (bool, error) {
		changed := ctrl.Revealed() > 0
		ctrl.Reset()
		return changed, nil
	})
}

func (a *Actions) Lexicon(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	ans := lexiconResponse{SessionID: sessionID}
	err := a.sessions.With(
		ctx.Request.Context(),
		sessionID,
		func(ctrl *reader.Controller) error {
			ans.TextID = ctrl.TextID()
			ans.Entries = ctrl.Lexicon()
			return nil
		},
	)
	if err != nil {
		a.respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) DeleteSession(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	if err := a.sessions.Delete(sessionID); err != nil {
		a.respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"ok": true, "sessionId": sessionID})
}

func NewActions(texts corpus.Provider, sessions *reader.Sessions) *Actions {
	return &Actions{
		texts:    texts,
		sessions: sessions,
	}
}
