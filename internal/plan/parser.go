package plan

import (
	"bufio"
	"strings"
)

// parser state: which buffer non-heading lines flow into.
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionWeek
	sectionEventDay
	sectionGoals
	sectionConcerns
)

// ParseContent splits a raw reply into typed sections with a single pass
// over its lines. Only top-level headings (# or ##) switch sections; deeper
// headings belong to whatever section is open, so a "### Weekly Summary"
// inside a week block stays in that week. Heading names are matched by
// lower-cased substring in a fixed priority order. Text before the first
// recognized heading is dropped. Goal/concern guidance in the reply has no
// buffer: those cards render from the event specification instead.
func ParseContent(raw string) Parsed {
	var p Parsed
	var summary, eventDay strings.Builder
	state := sectionNone

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if level, title := headingOf(line); level > 0 {
			if level <= 2 {
				state = transition(state, title, &p)
				continue
			}
			// Sub-heading: falls through as content of the open section.
		}

		switch state {
		case sectionSummary:
			summary.WriteString(line)
			summary.WriteByte('\n')
		case sectionWeek:
			w := &p.Weeks[len(p.Weeks)-1]
			w.Content += line + "\n"
		case sectionEventDay:
			eventDay.WriteString(line)
			eventDay.WriteByte('\n')
		}
		// Goals/concerns sections, and text before any heading, are dropped.
	}

	p.Summary = summary.String()
	p.EventDay = eventDay.String()
	return p
}

// transition tests the heading text against the known section names, in
// priority order. "week" starts a fresh WeekRecord; unrecognized headings
// leave the state unchanged.
func transition(state section, title string, p *Parsed) section {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "summary"):
		return sectionSummary
	case strings.Contains(lower, "week"):
		p.Weeks = append(p.Weeks, WeekRecord{
			Index: len(p.Weeks) + 1,
			Title: title,
		})
		return sectionWeek
	case strings.Contains(lower, "event day"):
		return sectionEventDay
	case strings.Contains(lower, "goal"):
		return sectionGoals
	case strings.Contains(lower, "concern"):
		return sectionConcerns
	}
	return state
}

// headingOf reports the markdown heading level of a line (0 if it is not a
// heading) and its text with the markers stripped.
func headingOf(line string) (int, string) {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level >= len(trimmed) || trimmed[level] != ' ' {
		return 0, ""
	}
	return level, strings.TrimSpace(trimmed[level:])
}
