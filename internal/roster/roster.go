/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package roster loads the team roster shown in the photo row. The board
// never depends on where entries come from; it only sees the Source port.
package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Entry is one selectable roster member.
type Entry struct {
	ID          string
	DisplayName string
	PhotoRef    string
}

// Source yields the current roster.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// PostgresSource reads the roster from the club database.
type PostgresSource struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenPostgres connects to the roster database. The connection is verified
// lazily on the first query, not here.
func OpenPostgres(dsn string, timeout time.Duration) (*PostgresSource, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open roster db: %w", err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresSource{db: db, timeout: timeout}, nil
}

func (s *PostgresSource) Entries(ctx context.Context) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, COALESCE(photo_ref, '') FROM players ORDER BY display_name`)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.DisplayName, &e.PhotoRef); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return entries, nil
}

func (s *PostgresSource) Close() error { return s.db.Close() }

// StaticSource serves a fixed roster. Used when no database is configured
// and in tests.
type StaticSource []Entry

func (s StaticSource) Entries(context.Context) ([]Entry, error) {
	return append([]Entry(nil), s...), nil
}

// Placeholder returns a small demo roster so the board is usable without a
// configured database.
func Placeholder() StaticSource {
	return StaticSource{
		{ID: "demo-1", DisplayName: "Alex"},
		{ID: "demo-2", DisplayName: "Jordan"},
		{ID: "demo-3", DisplayName: "Kim"},
		{ID: "demo-4", DisplayName: "Sam"},
		{ID: "demo-5", DisplayName: "Taylor"},
	}
}
