// Package store archives finished party datasets in sqlite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// ErrNoRuns is returned when the archive holds no runs yet
var ErrNoRuns = errors.New("no party runs stored")

const timeLayout = "2006-01-02T15:04:05.000000000Z"

const (
	createRunsTableSQL = `
	CREATE TABLE IF NOT EXISTS party_runs (
		"id" TEXT NOT NULL PRIMARY KEY,
		"finished_at" TEXT NOT NULL,
		"character_count" INTEGER NOT NULL
	);`

	createCharactersTableSQL = `
	CREATE TABLE IF NOT EXISTS party_characters (
		"run_id" TEXT NOT NULL REFERENCES party_runs(id) ON DELETE CASCADE,
		"position" INTEGER NOT NULL,
		"char_id" TEXT NOT NULL,
		"char_name" TEXT NOT NULL,
		"data" TEXT NOT NULL,
		PRIMARY KEY (run_id, char_id)
	);`
)

// Run describes one archived scrape run
type Run struct {
	ID             string
	FinishedAt     time.Time
	CharacterCount int
}

// Store is the sqlite run archive
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and if needed creates) the archive at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	for _, stmt := range []string{createRunsTableSQL, createCharactersTableSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a finished dataset as a new run and returns the run id.
// Runs are never merged; each call adds a complete snapshot.
func (s *Store) SaveRun(ctx context.Context, party *models.Party) (string, error) {
	runID := uuid.NewString()
	finished := s.now().UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO party_runs (id, finished_at, character_count) VALUES (?, ?, ?)`,
		runID, finished, party.Len(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, c := range party.Characters() {
		data, err := json.Marshal(c)
		if err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO party_characters (run_id, position, char_id, char_name, data) VALUES (?, ?, ?, ?, ?)`,
			runID, i, c.CharID, c.CharName, string(data),
		); err != nil {
			return "", fmt.Errorf("insert character %s: %w", c.CharID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// LatestRun loads the most recently stored run
func (s *Store) LatestRun(ctx context.Context) (Run, *models.Party, error) {
	var run Run
	var finished string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, finished_at, character_count FROM party_runs ORDER BY finished_at DESC, rowid DESC LIMIT 1`,
	).Scan(&run.ID, &finished, &run.CharacterCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, ErrNoRuns
	}
	if err != nil {
		return Run{}, nil, err
	}
	run.FinishedAt, err = time.Parse(timeLayout, finished)
	if err != nil {
		return Run{}, nil, fmt.Errorf("parse finished_at: %w", err)
	}

	party, err := s.loadParty(ctx, run.ID)
	if err != nil {
		return Run{}, nil, err
	}
	return run, party, nil
}

func (s *Store) loadParty(ctx context.Context, runID string) (*models.Party, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM party_characters WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	party := models.NewParty()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		c := models.NewCharacter("", "")
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("decode character: %w", err)
		}
		if err := party.Put(c); err != nil {
			return nil, err
		}
	}
	return party, rows.Err()
}
