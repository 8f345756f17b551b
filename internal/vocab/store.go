package vocab

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped on incompatible schema changes; an existing
// database with a different version is refused rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version of the tool.
var ErrSchemaMismatch = errors.New("vocabulary schema version mismatch")

// ErrWordNotFound indicates the requested word is not tracked.
var ErrWordNotFound = errors.New("word not found")

// Store persists vocabulary state in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (or creates) the vocabulary database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx,
		"SELECT version FROM schema_version LIMIT 1",
	).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf(
			"%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path,
		)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_version (version) VALUES (?)", schemaVersion,
	); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// Upsert inserts a word or updates its level, preserving learner status
// on existing rows.
func (s *Store) Upsert(ctx context.Context, word, lang string, level Level) (*Word, error) {
	word = normalizeWord(word)
	lang = strings.ToLower(strings.TrimSpace(lang))
	if word == "" || lang == "" {
		return nil, fmt.Errorf("word and language are required")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO words (word, language, level, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (word, language)
         DO UPDATE SET level = excluded.level, updated_at = excluded.updated_at`,
		word, lang, string(level), string(StatusNew), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert word %q: %w", word, err)
	}
	return s.Lookup(ctx, word, lang)
}

// SetStatus updates the learner status of a tracked word.
func (s *Store) SetStatus(ctx context.Context, word, lang string, status Status) error {
	word = normalizeWord(word)
	lang = strings.ToLower(strings.TrimSpace(lang))

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		"UPDATE words SET status = ?, updated_at = ? WHERE word = ? AND language = ?",
		string(status), now, word, lang,
	)
	if err != nil {
		return fmt.Errorf("update status for %q: %w", word, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status for %q: %w", word, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q (%s)", ErrWordNotFound, word, lang)
	}
	return nil
}

// MarkKnown marks a tracked word as known.
func (s *Store) MarkKnown(ctx context.Context, word, lang string) error {
	return s.SetStatus(ctx, word, lang, StatusKnown)
}

// Lookup fetches one tracked word.
func (s *Store) Lookup(ctx context.Context, word, lang string) (*Word, error) {
	word = normalizeWord(word)
	lang = strings.ToLower(strings.TrimSpace(lang))

	row := s.db.QueryRowContext(ctx,
		`SELECT id, word, language, level, status, created_at, updated_at
         FROM words WHERE word = ? AND language = ?`,
		word, lang,
	)
	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q (%s)", ErrWordNotFound, word, lang)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup word %q: %w", word, err)
	}
	return w, nil
}

// List returns tracked words matching the filter, ordered by level then
// alphabetically.
func (s *Store) List(ctx context.Context, filter Filter) ([]Word, error) {
	query := `SELECT id, word, language, level, status, created_at, updated_at
              FROM words WHERE 1=1`
	var args []any
	if filter.Language != "" {
		query += " AND language = ?"
		args = append(args, strings.ToLower(filter.Language))
	}
	if filter.Level != "" {
		query += " AND level = ?"
		args = append(args, string(filter.Level))
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY level, word"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var words []Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// CountsByLevel reports how many words per CEFR level are tracked for a
// language, split by known vs not yet known.
func (s *Store) CountsByLevel(ctx context.Context, lang string) (map[Level][2]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, status, COUNT(1) FROM words
         WHERE language = ? GROUP BY level, status`,
		strings.ToLower(strings.TrimSpace(lang)),
	)
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[Level][2]int)
	for rows.Next() {
		var level, status string
		var n int
		if err := rows.Scan(&level, &status, &n); err != nil {
			return nil, fmt.Errorf("scan counts: %w", err)
		}
		pair := counts[Level(level)]
		if Status(status) == StatusKnown {
			pair[0] += n
		} else {
			pair[1] += n
		}
		counts[Level(level)] = pair
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*Word, error) {
	var w Word
	var level, status, createdAt, updatedAt string
	if err := row.Scan(
		&w.ID, &w.Word, &w.Language, &level, &status, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	w.Level = Level(level)
	w.Status = Status(status)
	w.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	w.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &w, nil
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
