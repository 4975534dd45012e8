package journal

import "strings"

// NeutralScore is the fallback when no keyword category matches.
const NeutralScore = 3

// moodCategory associates a score with its trigger keywords.
type moodCategory struct {
	score    int
	keywords []string
}

// moodCategories are tested in order; the first category with any keyword
// present in the input wins. The lowest score comes first so that mixed
// inputs ("sad but hopeful") resolve to the more negative reading.
var moodCategories = []moodCategory{
	{score: 1, keywords: []string{"sad", "angry", "tired", "lonely", "upset", "depressed", "anxious"}},
	{score: 2, keywords: []string{"low", "weird", "frustated"}},
	{score: 3, keywords: []string{"neutral", "okay", "fine", "bored", "unknown"}},
	{score: 4, keywords: []string{"good", "excited", "hopeful", "positive", "productive"}},
	{score: 5, keywords: []string{"love", "amazing", "great", "joy", "awesome", "wonderful", "happy", "grateful", "calm", "relaxed", "satisfied"}},
}

// Classify maps free text to a mood score in [1,5]. Matching is
// case-insensitive and substring-based: a keyword contained inside a longer
// word still counts ("sadly" matches "sad"). Empty or unrecognized input
// scores neutral.
func Classify(text string) int {
	lower := strings.ToLower(text)
	for _, c := range moodCategories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.score
			}
		}
	}
	return NeutralScore
}
