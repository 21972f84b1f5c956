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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSnapshotNotFound = errors.New("session snapshot not found")
)

// SessionSnapshot is the minimal state needed to restore a reading
// session. The translation model is not stored, it is always induced
// again from the text.
type SessionSnapshot struct {
	TextID   string `json:"textId"`
	Revealed int    `json:"revealed"`
}

func (a *Adapter) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", a.keyPrefix, sessionID)
}

func (a *Adapter) SaveSession(sessionID string, snap SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	if err := a.c.Set(a.ctx, a.sessionKey(sessionID), data, a.sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return nil
}

func (a *Adapter) LoadSession(sessionID string) (SessionSnapshot, error) {
	var ans SessionSnapshot
	data, err := a.c.Get(a.ctx, a.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ans, ErrSnapshotNotFound

	} else if err != nil {
		return ans, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if err := json.Unmarshal(data, &ans); err != nil {
		return ans, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return ans, nil
}

// DeleteSession removes the session snapshot. ErrSnapshotNotFound
// is returned if there was nothing to remove.
func (a *Adapter) DeleteSession(sessionID string) error {
	n, err := a.c.Del(a.ctx, a.sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	if n == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}
