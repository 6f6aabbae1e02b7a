package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/event"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/history"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/timeline"
)

func sampleSpec() event.Specification {
	return event.Specification{
		Name:  "Spring Championship",
		Type:  "dressage",
		Date:  time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		Venue: event.Venue{Name: "Rhine Arena", Location: "Cologne"},
		Context: event.Context{
			Rider:     "Birgit",
			Horse:     "Cassiopeia",
			Level:     "L-level",
			Readiness: "solid basics, tension in the ring",
		},
		Goals:    []string{"score above 65%", "clean walk pirouettes"},
		Concerns: []string{"spooking at the judge's booth"},
		Resources: event.Resources{
			Availability: "5 rides per week",
			Support:      "weekly lesson",
		},
	}
}

func TestCompose_SectionOrder(t *testing.T) {
	body := Compose(sampleSpec(), history.Digest{NoHistory: true}, timeline.Timeframe{DaysUntil: 84, WeeksUntil: 12}, VoiceClassical)

	sections := []string{
		"## Event Details",
		"## Rider Context",
		"## Goals",
		"## Concerns",
		"## Resources",
		"## Timeframe",
		"## Training History",
		"## Coaching Voice",
		"## Required Output Format",
	}

	last := -1
	for _, sec := range sections {
		idx := strings.Index(body, sec)
		if idx < 0 {
			t.Fatalf("section %q missing from composed request", sec)
		}
		if idx < last {
			t.Errorf("section %q out of order", sec)
		}
		last = idx
	}
}

func TestCompose_NumberedLists(t *testing.T) {
	body := Compose(sampleSpec(), history.Digest{NoHistory: true}, timeline.Timeframe{DaysUntil: 84, WeeksUntil: 12}, DefaultVoice)

	if !strings.Contains(body, "1. score above 65%") {
		t.Error("goals not numbered")
	}
	if !strings.Contains(body, "2. clean walk pirouettes") {
		t.Error("second goal missing")
	}
	if !strings.Contains(body, "1. spooking at the judge's booth") {
		t.Error("concerns not numbered")
	}
}

func TestCompose_EmptyListsKeepHeadings(t *testing.T) {
	spec := sampleSpec()
	spec.Goals = nil
	spec.Concerns = nil

	body := Compose(spec, history.Digest{NoHistory: true}, timeline.Timeframe{DaysUntil: 30, WeeksUntil: 4}, DefaultVoice)

	if !strings.Contains(body, "## Goals") {
		t.Error("empty goals must still emit the heading")
	}
	if !strings.Contains(body, "## Concerns") {
		t.Error("empty concerns must still emit the heading")
	}
}

func TestCompose_DigestLines(t *testing.T) {
	d := history.Digest{
		HasQuality:      true,
		AverageQuality:  7,
		Themes:          []string{"late", "tension"},
		ReflectionCount: 3,
		Categories:      []string{"mindset"},
	}
	body := Compose(sampleSpec(), d, timeline.Timeframe{DaysUntil: 42, WeeksUntil: 6}, DefaultVoice)

	if !strings.Contains(body, "Average session quality (last 5 sessions): 7/10") {
		t.Errorf("raw average not preserved:\n%s", body)
	}
	if !strings.Contains(body, "Recurring challenges: late, tension") {
		t.Error("themes line missing")
	}
	if !strings.Contains(body, "Reflections logged: 3") {
		t.Error("reflection count missing")
	}
}

func TestCompose_NoHistorySentinel(t *testing.T) {
	body := Compose(sampleSpec(), history.Digest{NoHistory: true}, timeline.Timeframe{DaysUntil: 42, WeeksUntil: 6}, DefaultVoice)
	if !strings.Contains(body, "No prior training history recorded.") {
		t.Error("sentinel digest line missing")
	}
}

func TestCompose_DirectiveCoversEveryWeek(t *testing.T) {
	body := Compose(sampleSpec(), history.Digest{NoHistory: true}, timeline.Timeframe{DaysUntil: 84, WeeksUntil: 12}, DefaultVoice)
	if !strings.Contains(body, "\"Week 1\" through \"Week 12\"") {
		t.Error("directive does not enumerate week headings")
	}
	for _, heading := range []string{"Executive Summary", "Event Day Strategy", "Goal-Specific Guidance", "Concern-Specific Mitigation"} {
		if !strings.Contains(body, heading) {
			t.Errorf("directive missing heading %q", heading)
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	spec := sampleSpec()
	d := history.Digest{HasQuality: true, AverageQuality: 6.4, Themes: []string{"contact"}}
	tf := timeline.Timeframe{DaysUntil: 56, WeeksUntil: 8}

	a := Compose(spec, d, tf, VoiceMindful)
	b := Compose(spec, d, tf, VoiceMindful)
	if a != b {
		t.Error("Compose is not deterministic for identical inputs")
	}
}

func TestSystemPrompt_PerVoice(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range []Voice{VoiceClassical, VoiceEncouraging, VoiceCompetitive, VoiceMindful} {
		p := SystemPrompt(v)
		if p == "" {
			t.Fatalf("empty system prompt for %s", v)
		}
		if seen[p] {
			t.Errorf("voice %s shares a persona with another voice", v)
		}
		seen[p] = true
	}
	if SystemPrompt("unknown") != SystemPrompt(VoiceEncouraging) {
		t.Error("unknown voice should fall back to the default persona")
	}
}
