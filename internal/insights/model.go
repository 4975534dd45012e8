// Package insights generates AI-backed reflections, motivational quotes,
// and trigger analyses from a user's recent mood entries. It owns the
// prompt construction and the parsing of the free-text responses; the
// actual model call goes through genai.TextGenerator.
//
// Response parsing is deliberately isolated in digest.go so the strategy
// can be hardened (e.g. structured output) without touching handlers or
// the service contract.
package insights

// Reflection is the payload of GET /api/ai-reflection: a two-paragraph
// generated reflection plus the structured data it was derived from.
type Reflection struct {
	Summary             string      `json:"summary"`
	Motivational        string      `json:"motivational"`
	MoodData            []MoodDatum `json:"moodData"`
	ActivitySuggestions []string    `json:"activitySuggestions"`
}

// MoodDatum is one entry of the 7-day window in client-chart form.
type MoodDatum struct {
	Date      string `json:"date"`
	Mood      string `json:"mood"`
	MoodScore int    `json:"moodScore"`
	Note      string `json:"note"`
}
