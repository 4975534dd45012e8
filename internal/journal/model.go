// Package journal implements mood entries for Moodlog: the entry and
// emotion-tag models, the keyword mood classifier, and the persistence and
// HTTP surface for creating and listing entries.
//
// Entries are immutable once written. There is no update or delete
// operation; corrections are new entries.
package journal

import "time"

// Entry represents a single journaled mood record. Tags are attached by the
// repository when listing; an entry may carry zero or more.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note"`
	MoodScore int       `json:"moodScore"`
	CreatedAt time.Time `json:"createdAt"`
	Tags      []Tag     `json:"emotionTags"`
}

// Tag represents a named emotion label shared across entries. Names are
// unique (case-sensitive); referencing an existing name reuses the row.
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateEntryRequest holds the data submitted to POST /api/entries.
// MoodScore is a pointer so "absent" (derive via the classifier) is
// distinguishable from an explicit value.
type CreateEntryRequest struct {
	Mood      string   `json:"mood"`
	Note      string   `json:"note"`
	Tags      []string `json:"tags"`
	MoodScore *int     `json:"moodScore"`
}
