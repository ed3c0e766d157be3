// Package stats implements the aggregation core.
//
// This file (languages.go) merges per-repository language bytes and topic
// sets into overall distributions. Accumulation is insertion-ordered so the
// first-seen-wins rules are explicit rather than dependent on map ordering.
package stats

import (
	"math"
	"sort"

	"github.com/LukeHagar/stats-action/internal/output"
)

// DefaultTopTopics caps the topic frequency table.
const DefaultTopTopics = 20

// AggregateLanguages merges the language edges of all repositories, in input
// order, into one distribution sorted descending by byte size. The first
// occurrence of a language establishes its display color; later occurrences
// only add bytes. Ties in byte size keep first-insertion order (the sort is
// stable). Percentages are round(bytes/total*10000)/100, or 0 when the total
// is zero.
//
// The second return value is the byte total across all entries.
func AggregateLanguages(repos []output.RepoInfo) ([]output.LanguageAggregate, int64) {
	languages := []output.LanguageAggregate{}
	index := make(map[string]int)

	for _, repo := range repos {
		for _, edge := range repo.Languages {
			if i, ok := index[edge.Name]; ok {
				languages[i].TotalBytes += edge.Size
				continue
			}
			index[edge.Name] = len(languages)
			languages = append(languages, output.LanguageAggregate{
				LanguageName: edge.Name,
				Color:        edge.Color,
				TotalBytes:   edge.Size,
			})
		}
	}

	var total int64
	for _, lang := range languages {
		total += lang.TotalBytes
	}

	sort.SliceStable(languages, func(i, j int) bool {
		return languages[i].TotalBytes > languages[j].TotalBytes
	})

	for i := range languages {
		if total > 0 {
			languages[i].Percentage = math.Round(float64(languages[i].TotalBytes)/float64(total)*10000) / 100
		}
	}

	return languages, total
}

// AggregateTopics counts topic occurrences across all repositories. It
// returns the frequency table sorted descending by count (ties keep
// first-insertion order), truncated to topN, plus the unabridged
// alphabetical list of distinct topics.
func AggregateTopics(repos []output.RepoInfo, topN int) ([]output.TopicCount, []string) {
	counts := []output.TopicCount{}
	index := make(map[string]int)

	for _, repo := range repos {
		for _, topic := range repo.Topics {
			if i, ok := index[topic]; ok {
				counts[i].Count++
				continue
			}
			index[topic] = len(counts)
			counts = append(counts, output.TopicCount{Topic: topic, Count: 1})
		}
	}

	all := make([]string, 0, len(counts))
	for _, tc := range counts {
		all = append(all, tc.Topic)
	}
	sort.Strings(all)

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if topN > 0 && len(counts) > topN {
		counts = counts[:topN]
	}

	return counts, all
}
