package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// ScorePoint is the slim projection the dashboard reads: when an entry was
// created and how it scored. Kept separate from Entry so the dashboard query
// never drags note text across the wire.
type ScorePoint struct {
	Date      time.Time `json:"date"`
	MoodScore int       `json:"moodScore"`
}

// EntryRepository defines the data access contract for mood entries and
// their emotion tags. One repository per aggregate root; all SQL lives here.
type EntryRepository interface {
	// Create persists an entry together with its tag set in one
	// transaction. Tags are upserted by name; the resolved Tag rows are
	// set on the entry before returning.
	Create(ctx context.Context, entry *Entry, tagNames []string) error

	// ListByUser returns all of a user's entries, newest first, with tags
	// attached.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// ListSince returns the user's entries created at or after the given
	// time, oldest first. Tags are not attached; the insight digests only
	// need mood, note, score, and date.
	ListSince(ctx context.Context, userID string, since time.Time) ([]Entry, error)

	// ListRecent returns up to limit of the user's newest entries, newest
	// first, without tags.
	ListRecent(ctx context.Context, userID string, limit int) ([]Entry, error)

	// ListScorePoints returns (created_at, mood_score) pairs for all of a
	// user's entries in ascending chronological order.
	ListScorePoints(ctx context.Context, userID string) ([]ScorePoint, error)
}

// entryRepository implements EntryRepository using MariaDB with hand-written SQL.
type entryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new EntryRepository backed by the given database connection.
func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

// Create inserts the entry row, upserts each named tag, and links them in
// the entry_tags join table, all inside a single transaction so a failed
// tag write never leaves an orphaned entry.
func (r *entryRepository) Create(ctx context.Context, entry *Entry, tagNames []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning entry transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO mood_entries (id, user_id, mood, note, mood_score, created_at)
	           VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Mood, entry.Note, entry.MoodScore, entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting mood entry: %w", err)
	}

	tags := make([]Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := upsertTag(ctx, tx, name)
		if err != nil {
			return err
		}

		link := `INSERT IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, link, entry.ID, tag.ID); err != nil {
			return fmt.Errorf("linking tag %q to entry: %w", name, err)
		}

		tags = append(tags, tag)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry transaction: %w", err)
	}

	entry.Tags = tags
	return nil
}

// upsertTag resolves a tag name to its row, creating it on first use.
// ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id) makes the statement
// return the existing row's id on conflict, so two requests racing to
// create the same name both resolve to one row -- the unique index on
// name arbitrates.
func upsertTag(ctx context.Context, tx *sql.Tx, name string) (Tag, error) {
	query := `INSERT INTO emotion_tags (name) VALUES (?)
	           ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`

	result, err := tx.ExecContext(ctx, query, name)
	if err != nil {
		return Tag{}, fmt.Errorf("upserting tag %q: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Tag{}, fmt.Errorf("reading tag id: %w", err)
	}

	return Tag{ID: int(id), Name: name}, nil
}

// ListByUser returns the user's entries newest-first with tags attached via
// one batched join query (no per-entry queries).
func (r *entryRepository) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	query := `SELECT id, user_id, mood, note, mood_score, created_at
	           FROM mood_entries WHERE user_id = ?
	           ORDER BY created_at DESC`

	entries, err := r.scanEntries(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// ListSince returns entries created at or after since, ascending, so the
// last element is the most recent.
func (r *entryRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]Entry, error) {
	query := `SELECT id, user_id, mood, note, mood_score, created_at
	           FROM mood_entries WHERE user_id = ? AND created_at >= ?
	           ORDER BY created_at ASC`

	return r.scanEntries(ctx, query, userID, since)
}

// ListRecent returns up to limit newest entries for the user.
func (r *entryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]Entry, error) {
	query := `SELECT id, user_id, mood, note, mood_score, created_at
	           FROM mood_entries WHERE user_id = ?
	           ORDER BY created_at DESC LIMIT ?`

	return r.scanEntries(ctx, query, userID, limit)
}

// ListScorePoints returns the dashboard projection in ascending order.
func (r *entryRepository) ListScorePoints(ctx context.Context, userID string) ([]ScorePoint, error) {
	query := `SELECT created_at, mood_score
	           FROM mood_entries WHERE user_id = ?
	           ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing score points: %w", err)
	}
	defer rows.Close()

	var points []ScorePoint
	for rows.Next() {
		var p ScorePoint
		if err := rows.Scan(&p.Date, &p.MoodScore); err != nil {
			return nil, fmt.Errorf("scanning score point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating score points: %w", err)
	}

	return points, nil
}

// scanEntries runs an entry query and scans the rows into a slice.
func (r *entryRepository) scanEntries(ctx context.Context, query string, args ...interface{}) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing mood entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Note, &e.MoodScore, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning mood entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mood entry rows: %w", err)
	}

	return entries, nil
}

// attachTags loads tags for all given entries in a single join query,
// keyed by entry ID. This avoids N+1 queries on the entries list view.
func (r *entryRepository) attachTags(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	// Build parameterized IN clause to avoid SQL injection.
	placeholders := make([]string, len(entries))
	args := make([]interface{}, len(entries))
	for i, e := range entries {
		placeholders[i] = "?"
		args[i] = e.ID
	}

	query := fmt.Sprintf(`SELECT et.entry_id, t.id, t.name, t.created_at
	           FROM emotion_tags t
	           INNER JOIN entry_tags et ON et.tag_id = t.id
	           WHERE et.entry_id IN (%s)
	           ORDER BY t.name ASC`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("batch loading entry tags: %w", err)
	}
	defer rows.Close()

	byEntry := make(map[string][]Tag)
	for rows.Next() {
		var entryID string
		var t Tag
		if err := rows.Scan(&entryID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return fmt.Errorf("scanning entry tag row: %w", err)
		}
		byEntry[entryID] = append(byEntry[entryID], t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating entry tag rows: %w", err)
	}

	for i := range entries {
		tags := byEntry[entries[i].ID]
		if tags == nil {
			tags = []Tag{}
		}
		entries[i].Tags = tags
	}

	return nil
}
