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

package openapi

import (
	"blendreader/cnf"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCurrentPublicURL(t *testing.T) {
	conf := &cnf.Conf{
		PublicURLs: []string{"https://reader.example.org", "https://reader.example.org/api"},
	}
	req := httptest.NewRequest(http.MethodGet, "https://reader.example.org/api/openapi", nil)
	ans, err := findCurrentPublicURL(conf, req)
	assert.NoError(t, err)
	assert.Equal(t, "https://reader.example.org/api", ans)

	req = httptest.NewRequest(http.MethodGet, "http://internal:8080/openapi", nil)
	req.Header.Set("x-forwarded-proto", "https")
	req.Header.Set("x-forwarded-host", "reader.example.org")
	ans, err = findCurrentPublicURL(conf, req)
	assert.NoError(t, err)
	assert.Equal(t, "https://reader.example.org", ans)

	req = httptest.NewRequest(http.MethodGet, "http://elsewhere/openapi", nil)
	ans, err = findCurrentPublicURL(conf, req)
	assert.NoError(t, err)
	assert.Equal(t, "", ans)
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse("1.0.0", "https://reader.example.org")
	assert.Equal(t, "1.0.0", resp.Info.Version)
	assert.Contains(t, resp.Paths, "/sessions/{sessionId}/advance")
	assert.NotNil(t, resp.Paths["/sessions/{sessionId}"].Delete)
	for path, methods := range resp.Paths {
		for _, m := range []*Method{methods.Get, methods.Post, methods.Delete} {
			if m == nil {
				continue
			}
			for _, r := range m.Responses {
				for _, c := range r.Content {
					_, ok := resp.Components.Schemas[c.Schema.Ref[len("#/components/schemas/"):]]
					assert.True(t, ok, "missing schema %s in %s", c.Schema.Ref, path)
				}
			}
		}
	}
	_, err := json.Marshal(resp)
	assert.NoError(t, err)
}
