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
	"blendreader/rdb"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	sweepInterval = time.Minute
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// SnapshotStore keeps session snapshots so sessions survive
// eviction and server restarts
type SnapshotStore interface {
	SaveSession(sessionID string, snap rdb.SessionSnapshot) error
	LoadSession(sessionID string) (rdb.SessionSnapshot, error)
	DeleteSession(sessionID string) error
}

// Session is a controller with its own lock. All the commands
// of a session run one at a time.
type Session struct {
	ID         string
	mu         sync.Mutex
	ctrl       *Controller
	lastAccess time.Time
}

// Sessions is a registry of reading sessions
type Sessions struct {
	mu       sync.Mutex
	items    map[string]*Session
	factory  func() *Controller
	store    SnapshotStore
	idleTTL  time.Duration
	nowFn    func() time.Time
	sweepInt time.Duration
}

func (s *Sessions) saveSnapshot(sess *Session) {
	if s.store == nil || !sess.ctrl.IsLoaded() {
		return
	}
	snap := rdb.SessionSnapshot{TextID: sess.ctrl.TextID(), Revealed: sess.ctrl.Revealed()}
	if err := s.store.SaveSession(sess.ID, snap); err != nil {
		log.Error().Err(err).Str("sessionId", sess.ID).Msg("failed to save session snapshot")
	}
}

// Create creates a new session and loads the text into it
func (s *Sessions) Create(ctx context.Context, textID string) (string, View, error) {
	sess := &Session{
		ID:         uuid.New().String(),
		ctrl:       s.factory(),
		lastAccess: s.nowFn(),
	}
	if err := sess.ctrl.LoadText(ctx, textID); err != nil {
		return "", View{}, err
	}
	s.saveSnapshot(sess)
	s.mu.Lock()
	s.items[sess.ID] = sess
	s.mu.Unlock()
	log.Info().Str("sessionId", sess.ID).Str("textId", textID).Msg("created reading session")
	return sess.ID, sess.ctrl.View(), nil
}

func (s *Sessions) get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.items[sessionID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}
	if s.store == nil {
		return nil, ErrSessionNotFound
	}
	snap, err := s.store.LoadSession(sessionID)
	if errors.Is(err, rdb.ErrSnapshotNotFound) {
		return nil, ErrSessionNotFound

	} else if err != nil {
		return nil, err
	}
	restored := &Session{
		ID:         sessionID,
		ctrl:       s.factory(),
		lastAccess: s.nowFn(),
	}
	if err := restored.ctrl.Restore(ctx, snap.TextID, snap.Revealed); err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", sessionID, err)
	}
	log.Info().
		Str("sessionId", sessionID).
		Str("textId", snap.TextID).
		Int("revealed", snap.Revealed).
		Msg("restored reading session from snapshot")

	s.mu.Lock()
	defer s.mu.Unlock()
	if curr, ok := s.items[sessionID]; ok {
		// restored concurrently by someone else
		return curr, nil
	}
	s.items[sessionID] = restored
	return restored, nil
}

// With runs fn on the session controller. The session is locked
// during the call and its snapshot is saved afterwards.
func (s *Sessions) With(ctx context.Context, sessionID string, fn func(ctrl *Controller) error) error {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastAccess = s.nowFn()
	if err := fn(sess.ctrl); err != nil {
		return err
	}
	s.saveSnapshot(sess)
	return nil
}

// Delete removes the session including its snapshot. A session
// unknown both in memory and in the snapshot store is reported
// as ErrSessionNotFound.
func (s *Sessions) Delete(sessionID string) error {
	s.mu.Lock()
	_, inMemory := s.items[sessionID]
	delete(s.items, sessionID)
	s.mu.Unlock()
	if s.store == nil {
		if !inMemory {
			return ErrSessionNotFound
		}
		return nil
	}
	err := s.store.DeleteSession(sessionID)
	if errors.Is(err, rdb.ErrSnapshotNotFound) {
		if !inMemory {
			return ErrSessionNotFound
		}
		return nil

	} else if err != nil {
		return err
	}
	return nil
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// evictIdle removes idle sessions from memory. Their snapshots
// (if any) are kept so they can be restored later.
func (s *Sessions) evictIdle() int {
	now := s.nowFn()
	s.mu.Lock()
	defer s.mu.Unlock()
	var numEvicted int
	for id, sess := range s.items {
		if !sess.mu.TryLock() {
			continue
		}
		if now.Sub(sess.lastAccess) > s.idleTTL {
			delete(s.items, id)
			numEvicted++
		}
		sess.mu.Unlock()
	}
	return numEvicted
}

func (s *Sessions) Start(ctx context.Context) {
	log.Info().Dur("idleTTL", s.idleTTL).Msg("starting session sweeper")
	go func() {
		ticker := time.NewTicker(s.sweepInt)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.evictIdle(); n > 0 {
					log.Debug().Int("numEvicted", n).Msg("evicted idle sessions")
				}
			}
		}
	}()
}

func (s *Sessions) Stop(ctx context.Context) error {
	log.Warn().Int("numSessions", s.Len()).Msg("stopping session registry")
	return nil
}

// NewSessions creates a session registry. The store is optional
// (nil means sessions live in memory only).
func NewSessions(factory func() *Controller, store SnapshotStore, idleTTL time.Duration) *Sessions {
	return &Sessions{
		items:    make(map[string]*Session),
		factory:  factory,
		store:    store,
		idleTTL:  idleTTL,
		nowFn:    time.Now,
		sweepInt: sweepInterval,
	}
}
