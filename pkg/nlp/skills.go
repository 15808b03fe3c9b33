package nlp

import (
	"strings"
)

// aliases maps a normalized skill to the spellings it is also known by.
var aliases = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd"},
	"cicd":       {"ci cd"},
}

// SplitSkills splits a free-text skill list on commas, semicolons and line
// breaks, dropping blanks and case-insensitive duplicates.
func SplitSkills(list string) []string {
	parts := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '•'
	})
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		key := NormalizeText(p)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SkillVariants returns normalized variants for matching (synonyms/aliases).
func SkillVariants(skill string) []string {
	base := NormalizeText(skill)
	if base == "" {
		return []string{}
	}
	return append([]string{base}, aliases[base]...)
}

// MatchSkills splits skills into those mentioned in text and those that are
// not. A skill matches on whole words only, so "go" does not match "google".
func MatchSkills(skills []string, text string) (matched, missing []string) {
	padded := " " + NormalizeText(text) + " "
	matched, missing = []string{}, []string{}
	for _, s := range skills {
		variants := SkillVariants(s)
		if len(variants) == 0 {
			continue
		}
		found := false
		for _, v := range variants {
			if strings.Contains(padded, " "+v+" ") {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}
