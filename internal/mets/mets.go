// Package mets keeps a local SQLite table of metabolic equivalents (METs) per
// activity and estimates calories burned from them.
package mets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/five82/fitlog/internal/model"
)

// ErrNotFound is returned by Lookup for an unknown activity.
var ErrNotFound = errors.New("activity not found")

// Entry is one row of the table.
type Entry struct {
	Name     string
	Category model.ExerciseCategory
	Value    float64
}

// Table is the METs lookup table.
type Table struct {
	db *sql.DB
}

// seed values follow the Compendium of Physical Activities.
var seed = []Entry{
	{"跑步", model.ExerciseCardio, 9.8},
	{"慢跑", model.ExerciseCardio, 7.0},
	{"快走", model.ExerciseCardio, 4.3},
	{"徒步", model.ExerciseCardio, 6.0},
	{"骑自行车", model.ExerciseCardio, 7.5},
	{"游泳", model.ExerciseCardio, 8.0},
	{"跳绳", model.ExerciseCardio, 12.3},
	{"爬楼梯", model.ExerciseCardio, 8.8},
	{"力量训练", model.ExerciseStrength, 5.0},
	{"深蹲", model.ExerciseStrength, 5.0},
	{"俯卧撑", model.ExerciseStrength, 3.8},
	{"瑜伽", model.ExerciseFlexibility, 2.5},
	{"拉伸", model.ExerciseFlexibility, 2.3},
	{"太极", model.ExerciseFlexibility, 3.0},
	{"篮球", model.ExerciseSports, 6.5},
	{"足球", model.ExerciseSports, 7.0},
	{"羽毛球", model.ExerciseSports, 5.5},
	{"乒乓球", model.ExerciseSports, 4.0},
	{"网球", model.ExerciseSports, 7.3},
	{"跳舞", model.ExerciseOther, 5.0},
}

const schema = `
CREATE TABLE IF NOT EXISTS mets (
    name TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    value REAL NOT NULL CHECK (value > 0)
);
`

// Open opens (creating if needed) the table at path and seeds missing rows.
// Use ":memory:" for a throwaway table.
func Open(ctx context.Context, path string) (*Table, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create mets dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open mets database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mets database: %w", err)
	}

	t := &Table{db: db}
	if err := t.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

// Close releases the database.
func (t *Table) Close() error {
	return t.db.Close()
}

func (t *Table) init(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create mets schema: %w", err)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, e := range seed {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO mets (name, category, value) VALUES (?, ?, ?)`,
			e.Name, e.Category.Backend(), e.Value); err != nil {
			return fmt.Errorf("seed %s: %w", e.Name, err)
		}
	}
	return tx.Commit()
}

// Lookup returns the entry for name, matched exactly after trimming.
func (t *Table) Lookup(ctx context.Context, name string) (Entry, error) {
	row := t.db.QueryRowContext(ctx,
		`SELECT name, category, value FROM mets WHERE name = ?`, strings.TrimSpace(name))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, err
}

// Search returns entries whose name contains keyword.
func (t *Table) Search(ctx context.Context, keyword string) ([]Entry, error) {
	pattern := "%" + strings.TrimSpace(keyword) + "%"
	return t.query(ctx, `SELECT name, category, value FROM mets WHERE name LIKE ? ORDER BY name`, pattern)
}

// List returns every entry ordered by category then name.
func (t *Table) List(ctx context.Context) ([]Entry, error) {
	return t.query(ctx, `SELECT name, category, value FROM mets ORDER BY category, name`)
}

// Upsert inserts or replaces an entry.
func (t *Table) Upsert(ctx context.Context, e Entry) error {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return fmt.Errorf("mets entry name is empty")
	}
	if e.Value <= 0 {
		return fmt.Errorf("mets value for %s must be positive", name)
	}
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO mets (name, category, value) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET category = excluded.category, value = excluded.value`,
		name, e.Category.Backend(), e.Value)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

func (t *Table) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query mets: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query mets: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e        Entry
		category string
	)
	if err := s.Scan(&e.Name, &category, &e.Value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan mets row: %w", err)
	}
	if category != "" {
		c, err := model.ParseExerciseCategory(category)
		if err != nil {
			return Entry{}, fmt.Errorf("mets row %s: %w", e.Name, err)
		}
		e.Category = c
	}
	return e, nil
}

// EstimateBurned returns kcal burned: METs × body weight (kg) × hours.
func EstimateBurned(mets, weightKg float64, d time.Duration) float64 {
	if mets <= 0 || weightKg <= 0 || d <= 0 {
		return 0
	}
	return mets * weightKg * d.Hours()
}
