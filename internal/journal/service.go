package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pville/moodlog/internal/apperror"
	"github.com/pville/moodlog/internal/sanitize"
)

// maxMoodLen and maxTagLen mirror the column widths in the schema.
const (
	maxMoodLen = 120
	maxTagLen  = 100
)

// EntryService defines the business logic contract for mood entries.
// Handlers call these methods -- they never touch the repository directly.
type EntryService interface {
	// Create validates and persists a new entry for the user. When the
	// request carries no score, one is derived from the mood label, note,
	// and tags via the keyword classifier.
	Create(ctx context.Context, userID string, req CreateEntryRequest) (*Entry, error)

	// ListByUser returns the user's entries, newest first, tags attached.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}

// entryService implements EntryService with validation and score derivation.
type entryService struct {
	repo EntryRepository
}

// NewEntryService creates a new EntryService backed by the given repository.
func NewEntryService(repo EntryRepository) EntryService {
	return &entryService{repo: repo}
}

// Create validates the request, strips any HTML from the free-text fields,
// derives or clamps the mood score, and persists the entry with its tags.
func (s *entryService) Create(ctx context.Context, userID string, req CreateEntryRequest) (*Entry, error) {
	if userID == "" {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	mood := sanitize.Text(req.Mood)
	if mood == "" {
		return nil, apperror.NewValidation("mood is required")
	}
	if len(mood) > maxMoodLen {
		mood = mood[:maxMoodLen]
	}

	note := sanitize.Text(req.Note)

	tags := normalizeTags(req.Tags)

	score := 0
	if req.MoodScore != nil {
		score = clampScore(*req.MoodScore)
	} else {
		score = Classify(mood + " " + note + " " + strings.Join(tags, " "))
	}

	entry := &Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      mood,
		Note:      note,
		MoodScore: score,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry, tags); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating mood entry: %w", err))
	}

	slog.Info("mood entry created",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", userID),
		slog.Int("mood_score", entry.MoodScore),
		slog.Int("tags", len(entry.Tags)),
	)

	return entry, nil
}

// ListByUser returns the user's entries, newest first.
func (s *entryService) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	if userID == "" {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing mood entries: %w", err))
	}

	return entries, nil
}

// normalizeTags sanitizes, trims, bounds, and de-duplicates tag names while
// preserving their submitted order. Comparison is case-sensitive: "Work"
// and "work" are distinct tags.
func normalizeTags(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, name := range raw {
		name = sanitize.Text(name)
		if name == "" {
			continue
		}
		if len(name) > maxTagLen {
			name = name[:maxTagLen]
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}

// clampScore forces a client-supplied score into the valid [1,5] range.
// Out-of-range values are clamped rather than rejected; the invariant on
// stored scores matters more than punishing a sloppy client.
func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}
