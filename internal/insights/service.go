package insights

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pville/moodlog/internal/apperror"
	"github.com/pville/moodlog/internal/genai"
	"github.com/pville/moodlog/internal/journal"
)

const (
	reflectionWindow = 7 * 24 * time.Hour
	triggerLookback  = 50
)

// InsightService produces AI-backed views over a user's recent entries.
type InsightService interface {
	Reflection(ctx context.Context, userID string) (*Reflection, error)
	Quote(ctx context.Context, userID string) (string, error)
	TriggerAnalysis(ctx context.Context, userID string) (string, error)
}

type insightService struct {
	entries journal.EntryRepository
	gen     genai.TextGenerator
}

func NewInsightService(entries journal.EntryRepository, gen genai.TextGenerator) InsightService {
	return &insightService{entries: entries, gen: gen}
}

// Reflection summarizes the last 7 days of entries in two generated
// paragraphs and pairs them with chart data and activity suggestions.
// With no entries in the window it returns a canned result without
// calling the model.
func (s *insightService) Reflection(ctx context.Context, userID string) (*Reflection, error) {
	entries, err := s.recentWindow(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return &Reflection{
			Summary:             noDataSummary,
			Motivational:        "",
			MoodData:            []MoodDatum{},
			ActivitySuggestions: []string{},
		}, nil
	}

	prompt := reflectionInstruction + "\n\nHere are my recent mood entries:\n" + reflectionDigest(entries)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	summary := emptyGeneration
	motivational := ""
	if paragraphs := splitParagraphs(raw); len(paragraphs) > 0 {
		summary = paragraphs[0]
		if len(paragraphs) > 1 {
			motivational = paragraphs[1]
		}
	}

	moodData := make([]MoodDatum, 0, len(entries))
	for _, e := range entries {
		moodData = append(moodData, MoodDatum{
			Date:      e.CreatedAt.Format("2006-01-02"),
			Mood:      e.Mood,
			MoodScore: e.MoodScore,
			Note:      e.Note,
		})
	}

	lastScore := entries[len(entries)-1].MoodScore

	return &Reflection{
		Summary:             summary,
		Motivational:        motivational,
		MoodData:            moodData,
		ActivitySuggestions: suggestionsFor(lastScore),
	}, nil
}

// Quote generates a short motivational quote grounded in the same 7-day
// window the reflection uses.
func (s *insightService) Quote(ctx context.Context, userID string) (string, error) {
	entries, err := s.recentWindow(ctx, userID)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return noDataSummary, nil
	}

	prompt := quoteInstruction +
		"\n\nHere are my recent mood entries. Analyze this data and follow your instructions. Mood Entries:\n" +
		reflectionDigest(entries)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	quote := cleanQuote(raw)
	if quote == "" {
		quote = emptyGeneration
	}
	return quote, nil
}

// TriggerAnalysis asks the model for recurring emotional triggers across
// the user's last entries and returns its answer verbatim.
func (s *insightService) TriggerAnalysis(ctx context.Context, userID string) (string, error) {
	entries, err := s.entries.ListRecent(ctx, userID, triggerLookback)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return noDataSummary, nil
	}

	prompt := triggerInstruction + "\nData:\n" + triggerDigest(entries)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return emptyGeneration, nil
	}
	return raw, nil
}

func (s *insightService) recentWindow(ctx context.Context, userID string) ([]journal.Entry, error) {
	since := time.Now().UTC().Add(-reflectionWindow)
	return s.entries.ListSince(ctx, userID, since)
}

func (s *insightService) generate(ctx context.Context, prompt string) (string, error) {
	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		slog.Error("genai generation failed", "error", err)
		return "", apperror.NewUpstream(err)
	}
	return raw, nil
}
