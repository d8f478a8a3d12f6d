/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"sort"

	"playboard/internal/board"
	applog "playboard/internal/log"
)

// Namespace is the key prefix all saved plays live under. Keys have the form
// Namespace + "/" + play ID.
const Namespace = "playboard.plays"

// ErrEmptyName rejects saving a play without a name.
var ErrEmptyName = errors.New("play name must not be empty")

func playKey(id string) string { return Namespace + "/" + id }

// Library is the saved-play index on top of a KV store.
type Library struct {
	kv KV
}

func NewLibrary(kv KV) *Library { return &Library{kv: kv} }

// Save persists the play under its ID, overwriting any previous version.
func (l *Library) Save(p board.Play) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	text, err := Encode(p)
	if err != nil {
		return err
	}
	return l.kv.Set(playKey(p.ID), text)
}

// Get loads one play by ID. The second return is false when no such play
// is stored.
func (l *Library) Get(id string) (board.Play, bool, error) {
	text, ok, err := l.kv.Get(playKey(id))
	if err != nil || !ok {
		return board.Play{}, ok, err
	}
	p, err := Decode(text)
	if err != nil {
		return board.Play{}, false, err
	}
	return p, true, nil
}

// List returns all decodable saved plays, newest first. Entries that fail to
// decode are logged and skipped so one damaged document never hides the rest.
func (l *Library) List() ([]board.Play, error) {
	docs, err := l.kv.List(Namespace + "/")
	if err != nil {
		return nil, err
	}
	log := applog.WithComponent("storage")
	plays := make([]board.Play, 0, len(docs))
	for key, text := range docs {
		p, err := Decode(text)
		if err != nil {
			log.Warn("skipping undecodable play", "key", key, "err", err)
			continue
		}
		plays = append(plays, p)
	}
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].CreatedAt.After(plays[j].CreatedAt)
	})
	return plays, nil
}

// Delete removes a play. Deleting an absent ID is a no-op.
func (l *Library) Delete(id string) error {
	return l.kv.Delete(playKey(id))
}
