package service

import "strings"

// TagSuggester derives up to five tags from prompt text. The keyword
// implementation below can be swapped for a real classifier without
// touching PromptService.
type TagSuggester interface {
	SuggestTags(text string) []string
}

const maxSuggestedTags = 5

// keyword -> tag. Keys are matched as lowercase substrings.
var keywordTags = []struct {
	keyword string
	tag     string
}{
	{"react", "react"},
	{"node", "nodejs"},
	{"python", "python"},
	{"image", "images"},
	{"sql", "sql"},
}

// KeywordSuggester matches trigger keywords in the prompt text.
type KeywordSuggester struct{}

func NewKeywordSuggester() *KeywordSuggester {
	return &KeywordSuggester{}
}

func (s *KeywordSuggester) SuggestTags(text string) []string {
	lower := strings.ToLower(text)

	tags := []string{}
	seen := map[string]bool{}
	for _, kt := range keywordTags {
		if !strings.Contains(lower, kt.keyword) || seen[kt.tag] {
			continue
		}
		seen[kt.tag] = true
		tags = append(tags, kt.tag)
		if len(tags) == maxSuggestedTags {
			break
		}
	}
	return tags
}
