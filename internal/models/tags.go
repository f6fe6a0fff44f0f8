package models

import (
	"sort"
	"strings"
)

// TagCount is how often one tag appears across a collection.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// RankTags counts tags case-insensitively, most used first with ties in
// alphabetical order. The first spelling seen is kept. limit < 0 keeps all.
func RankTags(lists [][]string, limit int) []TagCount {
	index := map[string]int{}
	var out []TagCount
	for _, tags := range lists {
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			key := strings.ToLower(tag)
			if i, ok := index[key]; ok {
				out[i].Count++
				continue
			}
			index[key] = len(out)
			out = append(out, TagCount{Tag: tag, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Tag) < strings.ToLower(out[j].Tag)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// HasTag reports whether tags contains tag, ignoring case.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}
