// Package history reduces a rider's journal into the compact signal that
// goes into a plan request: recent session quality, recurring obstacle
// themes, and reflection activity.
package history

import (
	"sort"
	"strings"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/journal"
)

// recentDebriefs is how many of the latest debriefs feed the digest.
const recentDebriefs = 5

// maxThemes caps the common-challenge keywords surfaced per digest.
const maxThemes = 3

// Digest is the summarized journal signal. AverageQuality is the raw
// arithmetic mean, unrounded; HasQuality is false when no debriefs carried
// scores. Categories keeps first-seen order.
type Digest struct {
	NoHistory       bool     `json:"noHistory"`
	AverageQuality  float64  `json:"averageQuality,omitempty"`
	HasQuality      bool     `json:"hasQuality"`
	Themes          []string `json:"themes,omitempty"`
	ReflectionCount int      `json:"reflectionCount"`
	Categories      []string `json:"categories,omitempty"`
}

// Summarize builds a digest from journal history. Entries are assumed to be
// in chronological order; only the most recent debriefs count. With no
// history at all the digest is the fixed "no history" sentinel.
func Summarize(debriefs []journal.Debrief, reflections []journal.Reflection) Digest {
	if len(debriefs) == 0 && len(reflections) == 0 {
		return Digest{NoHistory: true}
	}

	d := Digest{}

	recent := debriefs
	if len(recent) > recentDebriefs {
		recent = recent[len(recent)-recentDebriefs:]
	}

	if len(recent) > 0 {
		sum := 0
		for _, e := range recent {
			sum += e.Quality
		}
		d.AverageQuality = float64(sum) / float64(len(recent))
		d.HasQuality = true

		obstacles := make([]string, 0, len(recent))
		for _, e := range recent {
			if e.Obstacles != "" {
				obstacles = append(obstacles, e.Obstacles)
			}
		}
		d.Themes = ExtractThemes(obstacles)
	}

	d.ReflectionCount = len(reflections)
	seen := make(map[string]bool)
	for _, r := range reflections {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		d.Categories = append(d.Categories, r.Category)
	}

	return d
}

// ExtractThemes surfaces the most frequent substantial words across the
// given texts. Tokens shorter than 4 characters are noise ("the", "leg",
// "a") and are dropped; ties rank by first occurrence.
func ExtractThemes(texts []string) []string {
	counts := make(map[string]int)
	var words []string // first-occurrence order

	for _, text := range texts {
		for _, tok := range strings.Fields(strings.ToLower(text)) {
			if len(tok) < 4 {
				continue
			}
			if counts[tok] == 0 {
				words = append(words, tok)
			}
			counts[tok]++
		}
	}

	// Stable sort keeps first-occurrence order on equal counts.
	sort.SliceStable(words, func(i, j int) bool {
		return counts[words[i]] > counts[words[j]]
	})

	if len(words) > maxThemes {
		words = words[:maxThemes]
	}
	return words
}
