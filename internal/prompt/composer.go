// Package prompt composes the structured plan request sent to the
// generation service. Section order is a contract: the reply parser depends
// on the output-format directive emitted here, so sections are never
// reordered or dropped, even when their data is empty.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/event"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/history"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/timeline"
)

// Compose serializes the plan inputs into one request body. Pure function:
// identical inputs always produce identical text.
//
// Section order (fixed): event details, rider context, goals, concerns,
// resources, timeframe, history digest, voice, output-format directive.
func Compose(spec event.Specification, digest history.Digest, tf timeline.Timeframe, voice Voice) string {
	var b strings.Builder

	b.WriteString("## Event Details\n")
	fmt.Fprintf(&b, "- Name: %s\n", spec.Name)
	fmt.Fprintf(&b, "- Type: %s\n", spec.Type)
	fmt.Fprintf(&b, "- Date: %s\n", spec.Date.Format("2006-01-02"))
	if spec.Venue.Name != "" || spec.Venue.Location != "" {
		fmt.Fprintf(&b, "- Venue: %s\n", joinNonEmpty(spec.Venue.Name, spec.Venue.Location))
	}

	b.WriteString("\n## Rider Context\n")
	if spec.Context.Rider != "" {
		fmt.Fprintf(&b, "- Rider: %s\n", spec.Context.Rider)
	}
	fmt.Fprintf(&b, "- Horse: %s\n", spec.Context.Horse)
	if spec.Context.Level != "" {
		fmt.Fprintf(&b, "- Level: %s\n", spec.Context.Level)
	}
	if spec.Context.Readiness != "" {
		fmt.Fprintf(&b, "- Readiness: %s\n", spec.Context.Readiness)
	}

	// Empty lists still emit their heading; the output directive below
	// references these sections by name.
	b.WriteString("\n## Goals\n")
	for i, g := range spec.Goals {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g)
	}

	b.WriteString("\n## Concerns\n")
	for i, c := range spec.Concerns {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}

	b.WriteString("\n## Resources\n")
	if spec.Resources.Availability != "" {
		fmt.Fprintf(&b, "- Availability: %s\n", spec.Resources.Availability)
	}
	if spec.Resources.Support != "" {
		fmt.Fprintf(&b, "- Support: %s\n", spec.Resources.Support)
	}

	b.WriteString("\n## Timeframe\n")
	fmt.Fprintf(&b, "- Days until event: %d\n", tf.DaysUntil)
	fmt.Fprintf(&b, "- Weeks until event: %d\n", tf.WeeksUntil)

	b.WriteString("\n## Training History\n")
	writeDigest(&b, digest)

	b.WriteString("\n## Coaching Voice\n")
	fmt.Fprintf(&b, "%s\n", voice)

	b.WriteString("\n")
	b.WriteString(outputDirective(tf.WeeksUntil))

	return b.String()
}

func writeDigest(b *strings.Builder, d history.Digest) {
	if d.NoHistory {
		b.WriteString("- No prior training history recorded.\n")
		return
	}
	if d.HasQuality {
		fmt.Fprintf(b, "- Average session quality (last %d sessions): %s/10\n",
			5, strconv.FormatFloat(d.AverageQuality, 'f', -1, 64))
	}
	if len(d.Themes) > 0 {
		fmt.Fprintf(b, "- Recurring challenges: %s\n", strings.Join(d.Themes, ", "))
	}
	fmt.Fprintf(b, "- Reflections logged: %d\n", d.ReflectionCount)
	if len(d.Categories) > 0 {
		fmt.Fprintf(b, "- Reflection categories: %s\n", strings.Join(d.Categories, ", "))
	}
}

// outputDirective tells the model exactly which top-level headings the
// reply must contain. The parser keys off these names.
func outputDirective(weeksUntil int) string {
	var b strings.Builder

	b.WriteString("## Required Output Format\n")
	b.WriteString("Respond in markdown with exactly these top-level (##) headings, in this order:\n")
	b.WriteString("1. \"Executive Summary\" - the overall preparation strategy in a few paragraphs.\n")

	weeks := weeksUntil
	if weeks < 0 {
		weeks = 0
	}
	if weeks > 0 {
		fmt.Fprintf(&b, "2. One heading per training week, \"Week 1\" through \"Week %d\" (add a short focus title after the number). Inside each week include these labeled blocks:\n", weeks)
	} else {
		b.WriteString("2. One heading per training week (\"Week 1\", \"Week 2\", ...) if any full weeks remain. Inside each week include these labeled blocks:\n")
	}
	b.WriteString("   - Focus Theme\n")
	b.WriteString("   - Technical Targets\n")
	b.WriteString("   - Mental Game\n")
	b.WriteString("   - Horse & Resource Management\n")
	b.WriteString("   - Success Markers\n")
	b.WriteString("3. \"Event Day Strategy\" - warm-up, timing, and ringcraft for the day itself.\n")
	b.WriteString("4. \"Goal-Specific Guidance\" - one paragraph per stated goal.\n")
	b.WriteString("5. \"Concern-Specific Mitigation\" - one paragraph per stated concern.\n")
	b.WriteString("Use deeper headings (###) freely inside sections, but never for the sections themselves.\n")

	return b.String()
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
