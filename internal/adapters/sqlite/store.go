package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/config"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

const schemaVersion = "1"

// timeLayout sorts lexically in time order
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements ports.ProjectStore over a local SQLite file or a remote
// libsql database. Each project is one JSON snapshot row.
type Store struct {
	db     *sql.DB
	remote bool
	log    *slog.Logger

	// Now stamps last_modified; defaults to the wall clock
	Now func() time.Time
}

// Ensure Store implements ProjectStore
var _ ports.ProjectStore = (*Store)(nil)

// Open connects to dbURL and prepares the schema. A libsql:// URL selects
// the remote driver; anything else is a local file path.
func Open(ctx context.Context, dbURL string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Store{remote: config.IsRemoteDatabase(dbURL), log: log}

	var err error
	if s.remote {
		s.db, err = sql.Open("libsql", dbURL)
	} else {
		path := expandHome(dbURL)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// Open database with WAL mode for better concurrency
		s.db, err = sql.Open("sqlite", path+"?_journal_mode=WAL")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := s.migrate(ctx); err != nil {
		s.db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	log.Debug("project store opened", "remote", s.remote)
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	var stmts []string
	if !s.remote {
		stmts = append(stmts,
			`PRAGMA synchronous = NORMAL`,
			`PRAGMA busy_timeout = 5000`,
			`PRAGMA temp_store = MEMORY`,
		)
	}
	stmts = append(stmts,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			project_name TEXT NOT NULL,
			site_url TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			snapshot TEXT NOT NULL,
			last_modified TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_modified ON projects(last_modified)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	)

	// One statement per call so both drivers accept it
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Save writes the snapshot, replacing any previous version
func (s *Store) Save(ctx context.Context, id string, state domain.ProjectState) error {
	if id == "" {
		return application.ErrInvalidID
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO projects (id, project_name, site_url, page_count, snapshot, last_modified)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, state.Config.ProjectName, state.Config.SiteURL, len(state.Pages), string(blob), s.now().Format(timeLayout)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_saved_project', ?)`, id)
		return err
	})
}

// Load reads a snapshot by ID
func (s *Store) Load(ctx context.Context, id string) (*domain.ProjectState, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM projects WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.NotFoundError{Kind: "project", ID: id}
	}
	if err != nil {
		return nil, err
	}

	var state domain.ProjectState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", id, err)
	}
	return &state, nil
}

// List returns project summaries, most recently modified first
func (s *Store) List(ctx context.Context) ([]ports.ProjectInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_name, site_url, page_count, last_modified
		FROM projects
		ORDER BY last_modified DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infos := []ports.ProjectInfo{}
	for rows.Next() {
		var info ports.ProjectInfo
		var modified string
		if err := rows.Scan(&info.ID, &info.Name, &info.SiteURL, &info.PageCount, &modified); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, modified); err == nil {
			info.LastModified = t.Format(time.RFC3339)
		} else {
			info.LastModified = modified
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a project
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &application.NotFoundError{Kind: "project", ID: id}
	}
	s.log.Info("project deleted", "project", id)
	return nil
}

// Exists reports whether a project is stored
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
