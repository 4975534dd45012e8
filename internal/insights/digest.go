package insights

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pville/moodlog/internal/journal"
)

const (
	reflectionInstruction = "You are a friendly emotional wellness assistant. " +
		"Provide a reflection of the user's emotional trend over the last 7 days. " +
		"Format your response in exactly and strictly in two paragraphs: " +
		"first paragraph should be a concise summary of the user's mood trend, " +
		"second paragraph should be a short motivational message based on that trend."

	quoteInstruction = "You are a friendly emotional wellness assistant. " +
		"Provide a short, precise highly relevant motivational quote."

	triggerInstruction = "You are a sentiment pattern analyzer.\n" +
		"Find the most common emotional TRIGGERS or themes from these entries.\n" +
		"Return a summary like:\n" +
		"- Top triggers\n" +
		"- Emotions linked with each\n" +
		"- Short advice for managing each trigger."

	noDataSummary    = "No recent mood entries found for the past 7 days."
	emptyGeneration  = "No reflection could be generated."
	digestDateLayout = "Mon Jan 02 2006"
)

// reflectionDigest renders entries as one line per entry, the form the
// reflection and quote prompts embed as context.
func reflectionDigest(entries []journal.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: score %d (%s) note: %s",
			e.CreatedAt.Format(digestDateLayout), e.MoodScore, e.Mood, e.Note))
	}
	return strings.Join(lines, "\n")
}

// triggerDigest is the terser form used for trigger analysis, where the
// score is noise and the note text carries the signal.
func triggerDigest(entries []journal.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: (%s) %s",
			e.CreatedAt.Format(digestDateLayout), e.Mood, e.Note))
	}
	return strings.Join(lines, "\n")
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs breaks generated text on blank lines and drops empty
// segments. The reflection prompt asks for exactly two paragraphs, but
// models do not always comply, so callers must tolerate fewer.
func splitParagraphs(text string) []string {
	parts := paragraphBreak.Split(strings.TrimSpace(text), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var (
	newlineRuns    = regexp.MustCompile(`[\r\n]+`)
	whitespaceRuns = regexp.MustCompile(`\s{2,}`)
)

const maxQuoteLines = 8

// cleanQuote normalizes a generated quote: newline runs collapse to a
// single newline, longer whitespace runs to a single space, and the
// result is capped at maxQuoteLines non-empty lines.
func cleanQuote(text string) string {
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
		if len(out) == maxQuoteLines {
			break
		}
	}
	return strings.Join(out, "\n")
}

// suggestionsFor maps the most recent score to a pair of activity
// suggestions, one bucket per rough mood band.
func suggestionsFor(lastScore int) []string {
	switch {
	case lastScore <= 3:
		return []string{"Try a 5-min guided meditation", "Listen to calming music"}
	case lastScore <= 6:
		return []string{"Go for a short walk", "Write down 3 things you're grateful for"}
	default:
		return []string{"Share your positivity with a friend", "Do a creative activity you enjoy"}
	}
}
