// Package database provides connection setup for MariaDB and Redis.
// This file validates migration SQL files to catch schema mistakes early.
package database

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	// This test file lives in internal/database/, project root is two dirs up.
	dir := filepath.Join("..", "..", "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// migrationVersionPattern matches golang-migrate file names like
// 000002_create_mood_entries.up.sql.
var migrationVersionPattern = regexp.MustCompile(`^(\d{6})_[a-z0-9_]+\.(up|down)\.sql$`)

// TestMigrations_UpDownPairs verifies that every up migration has a matching
// down migration and that file names follow the golang-migrate convention.
// A missing down file breaks rollbacks; a misnamed file is silently skipped
// by the migrator, which is worse than failing loudly here.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading migrations dir: %v", err)
	}

	ups := make(map[string]bool)
	downs := make(map[string]bool)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := migrationVersionPattern.FindStringSubmatch(e.Name())
		if m == nil {
			t.Errorf("migration file %q does not match the golang-migrate naming convention", e.Name())
			continue
		}
		if m[2] == "up" {
			ups[m[1]] = true
		} else {
			downs[m[1]] = true
		}
	}

	for v := range ups {
		if !downs[v] {
			t.Errorf("migration version %s has an up file but no down file", v)
		}
	}
	for v := range downs {
		if !ups[v] {
			t.Errorf("migration version %s has a down file but no up file", v)
		}
	}
}

// TestMigrations_SequentialVersions verifies that migration versions start at
// 1 and increase without gaps. golang-migrate tolerates gaps, but they are
// almost always the result of a botched rebase.
func TestMigrations_SequentialVersions(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no up migrations found")
	}

	seen := make(map[int]bool)
	max := 0
	for _, f := range files {
		m := migrationVersionPattern.FindStringSubmatch(filepath.Base(f))
		if m == nil {
			continue
		}
		v, _ := strconv.Atoi(m[1])
		seen[v] = true
		if v > max {
			max = v
		}
	}

	for v := 1; v <= max; v++ {
		if !seen[v] {
			t.Errorf("migration version %d is missing (versions must be sequential)", v)
		}
	}
}

// TestMigrations_MoodScoreConstraint verifies that the mood_entries table
// enforces the 1..5 score range at the schema level. The tag upsert and the
// score invariant both rely on database constraints, so losing the CHECK in
// a rewrite of the migration would silently drop the guarantee.
func TestMigrations_MoodScoreConstraint(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}

	var found bool
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		sql := strings.ToLower(string(content))
		if strings.Contains(sql, "mood_entries") && strings.Contains(sql, "mood_score between 1 and 5") {
			found = true
			break
		}
	}
	if !found {
		t.Error("no migration defines a CHECK constraint keeping mood_score between 1 and 5")
	}
}

// TestMigrations_TagNameUnique verifies the unique index on emotion_tags.name.
// The conflict-safe tag upsert depends on this index existing.
func TestMigrations_TagNameUnique(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}

	var found bool
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		sql := strings.ToLower(string(content))
		if strings.Contains(sql, "emotion_tags") && strings.Contains(sql, "unique key uq_emotion_tags_name") {
			found = true
			break
		}
	}
	if !found {
		t.Error("emotion_tags.name is missing its unique index; tag upsert-by-name requires it")
	}
}
