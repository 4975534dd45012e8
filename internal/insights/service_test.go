package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pville/moodlog/internal/apperror"
	"github.com/pville/moodlog/internal/journal"
)

// --- Fakes ---

// fakeGenerator implements genai.TextGenerator, recording the prompt it
// was given.
type fakeGenerator struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeEntryRepo serves canned entries for the window and recency queries.
type fakeEntryRepo struct {
	entries     []journal.Entry
	err         error
	recentLimit int
}

func (f *fakeEntryRepo) Create(ctx context.Context, entry *journal.Entry, tagNames []string) error {
	return nil
}

func (f *fakeEntryRepo) ListByUser(ctx context.Context, userID string) ([]journal.Entry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]journal.Entry, error) {
	return f.entries, f.err
}

func (f *fakeEntryRepo) ListRecent(ctx context.Context, userID string, limit int) ([]journal.Entry, error) {
	f.recentLimit = limit
	return f.entries, f.err
}

func (f *fakeEntryRepo) ListScorePoints(ctx context.Context, userID string) ([]journal.ScorePoint, error) {
	return nil, nil
}

func sampleEntries() []journal.Entry {
	return []journal.Entry{
		{
			Mood:      "sad",
			Note:      "long day",
			MoodScore: 1,
			CreatedAt: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		},
		{
			Mood:      "happy",
			Note:      "friends visited",
			MoodScore: 5,
			CreatedAt: time.Date(2026, 8, 27, 18, 30, 0, 0, time.UTC),
		},
	}
}

// --- Reflection Tests ---

func TestReflection_NoEntries(t *testing.T) {
	gen := &fakeGenerator{response: "should not be used"}
	svc := NewInsightService(&fakeEntryRepo{}, gen)

	result, err := svc.Reflection(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "No recent mood entries found for the past 7 days." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if result.Motivational != "" {
		t.Errorf("expected empty motivational, got %q", result.Motivational)
	}
	if result.MoodData == nil || len(result.MoodData) != 0 {
		t.Errorf("expected empty mood data, got %v", result.MoodData)
	}
	if gen.calls != 0 {
		t.Errorf("expected no generation calls, got %d", gen.calls)
	}
}

func TestReflection_TwoParagraphs(t *testing.T) {
	gen := &fakeGenerator{response: "Your week trended upward.\n\nKeep going, brighter days ahead."}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	result, err := svc.Reflection(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Your week trended upward." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if result.Motivational != "Keep going, brighter days ahead." {
		t.Errorf("unexpected motivational: %q", result.Motivational)
	}
}

func TestReflection_SingleParagraph(t *testing.T) {
	gen := &fakeGenerator{response: "Just one paragraph this time."}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	result, err := svc.Reflection(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Just one paragraph this time." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if result.Motivational != "" {
		t.Errorf("expected empty motivational, got %q", result.Motivational)
	}
}

func TestReflection_BlankResponse(t *testing.T) {
	gen := &fakeGenerator{response: "   \n\n  "}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	result, err := svc.Reflection(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "No reflection could be generated." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
}

func TestReflection_MoodDataAndDigest(t *testing.T) {
	gen := &fakeGenerator{response: "Summary.\n\nMotivation."}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	result, err := svc.Reflection(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.MoodData) != 2 {
		t.Fatalf("expected 2 mood data points, got %d", len(result.MoodData))
	}
	first := result.MoodData[0]
	if first.Date != "2026-08-25" || first.Mood != "sad" || first.MoodScore != 1 || first.Note != "long day" {
		t.Errorf("unexpected first datum: %+v", first)
	}

	if !strings.Contains(gen.prompt, "Tue Aug 25 2026: score 1 (sad) note: long day") {
		t.Errorf("prompt missing digest line, got:\n%s", gen.prompt)
	}
}

func TestReflection_SuggestionsByLastScore(t *testing.T) {
	cases := []struct {
		lastScore int
		wantFirst string
	}{
		{1, "Try a 5-min guided meditation"},
		{3, "Try a 5-min guided meditation"},
		{4, "Go for a short walk"},
		{5, "Go for a short walk"},
	}

	for _, tc := range cases {
		entries := []journal.Entry{{
			Mood:      "mixed feelings",
			MoodScore: tc.lastScore,
			CreatedAt: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		}}
		gen := &fakeGenerator{response: "Summary.\n\nMotivation."}
		svc := NewInsightService(&fakeEntryRepo{entries: entries}, gen)

		result, err := svc.Reflection(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("score %d: unexpected error: %v", tc.lastScore, err)
		}
		if len(result.ActivitySuggestions) != 2 {
			t.Fatalf("score %d: expected 2 suggestions, got %d", tc.lastScore, len(result.ActivitySuggestions))
		}
		if result.ActivitySuggestions[0] != tc.wantFirst {
			t.Errorf("score %d: expected %q, got %q", tc.lastScore, tc.wantFirst, result.ActivitySuggestions[0])
		}
	}
}

func TestReflection_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	_, err := svc.Reflection(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T", err)
	}
	if appErr.Code != 500 || appErr.Type != "upstream_error" {
		t.Errorf("expected 500 upstream_error, got %d %s", appErr.Code, appErr.Type)
	}
}

// --- Quote Tests ---

func TestQuote_NoEntries(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewInsightService(&fakeEntryRepo{}, gen)

	quote, err := svc.Quote(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote != "No recent mood entries found for the past 7 days." {
		t.Errorf("unexpected quote: %q", quote)
	}
	if gen.calls != 0 {
		t.Errorf("expected no generation calls, got %d", gen.calls)
	}
}

func TestQuote_Normalized(t *testing.T) {
	gen := &fakeGenerator{response: "\n\n\"Storms make trees    take deeper roots.\"\r\n\r\n- Dolly Parton\n"}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	quote, err := svc.Quote(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\"Storms make trees take deeper roots.\"\n- Dolly Parton"
	if quote != want {
		t.Errorf("expected %q, got %q", want, quote)
	}
}

func TestQuote_LineCap(t *testing.T) {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "line"
	}
	gen := &fakeGenerator{response: strings.Join(lines, "\n")}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	quote, err := svc.Quote(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(strings.Split(quote, "\n")); got != 8 {
		t.Errorf("expected 8 lines, got %d", got)
	}
}

func TestQuote_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	svc := NewInsightService(&fakeEntryRepo{entries: sampleEntries()}, gen)

	_, err := svc.Quote(context.Background(), "user-1")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 500 {
		t.Fatalf("expected 500 AppError, got %v", err)
	}
}

// --- Trigger Analysis Tests ---

func TestTriggerAnalysis_Passthrough(t *testing.T) {
	gen := &fakeGenerator{response: "- Top triggers: work deadlines\n- Advice: take breaks"}
	repo := &fakeEntryRepo{entries: sampleEntries()}
	svc := NewInsightService(repo, gen)

	result, err := svc.TriggerAnalysis(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != gen.response {
		t.Errorf("expected verbatim response, got %q", result)
	}
	if repo.recentLimit != 50 {
		t.Errorf("expected lookback of 50 entries, got %d", repo.recentLimit)
	}
	if !strings.Contains(gen.prompt, "Tue Aug 25 2026: (sad) long day") {
		t.Errorf("prompt missing digest line, got:\n%s", gen.prompt)
	}
}

func TestTriggerAnalysis_NoEntries(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewInsightService(&fakeEntryRepo{}, gen)

	result, err := svc.TriggerAnalysis(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "No recent mood entries found for the past 7 days." {
		t.Errorf("unexpected result: %q", result)
	}
	if gen.calls != 0 {
		t.Errorf("expected no generation calls, got %d", gen.calls)
	}
}
