package timeline

import (
	"testing"
	"time"
)

func TestUntil(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		eventDate time.Time
		days      int
		weeks     int
	}{
		{"twelve weeks out", now.AddDate(0, 0, 84), 84, 12},
		{"six weeks out", now.AddDate(0, 0, 42), 42, 6},
		{"same day", now, 0, 0},
		{"tomorrow", now.AddDate(0, 0, 1), 1, 0},
		{"partial day rounds down", now.Add(30 * time.Hour), 1, 0},
		{"event passed yesterday", now.AddDate(0, 0, -1), -1, -1},
		{"event passed two weeks ago", now.AddDate(0, 0, -14), -14, -2},
	}

	for _, tt := range tests {
		tf := Until(now, tt.eventDate)
		if tf.DaysUntil != tt.days {
			t.Errorf("%s: DaysUntil = %d, want %d", tt.name, tf.DaysUntil, tt.days)
		}
		if tf.WeeksUntil != tt.weeks {
			t.Errorf("%s: WeeksUntil = %d, want %d", tt.name, tf.WeeksUntil, tt.weeks)
		}
	}
}

func TestUntil_NegativeFloors(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// 10 hours in the past is already "day -1", not day 0.
	tf := Until(now, now.Add(-10*time.Hour))
	if tf.DaysUntil != -1 {
		t.Errorf("DaysUntil = %d, want -1", tf.DaysUntil)
	}
	if tf.WeeksUntil != -1 {
		t.Errorf("WeeksUntil = %d, want -1", tf.WeeksUntil)
	}
}

func TestBuildSchedule(t *testing.T) {
	tests := []struct {
		weeks int
		want  Schedule
	}{
		{12, Schedule{
			Foundation:  Window{4, 1, 4},
			Preparation: Window{4, 5, 8},
			Peak:        Window{3, 9, 11},
			Taper:       Window{1, 12, 12},
		}},
		{20, Schedule{ // same 12-week skeleton, weeks 13-20 unscheduled
			Foundation:  Window{4, 1, 4},
			Preparation: Window{4, 5, 8},
			Peak:        Window{3, 9, 11},
			Taper:       Window{1, 12, 12},
		}},
		{8, Schedule{
			Foundation:  Window{3, 1, 3},
			Preparation: Window{3, 4, 6},
			Peak:        Window{1, 7, 7},
			Taper:       Window{1, 8, 8},
		}},
		{11, Schedule{
			Foundation:  Window{3, 1, 3},
			Preparation: Window{3, 4, 6},
			Peak:        Window{1, 7, 7},
			Taper:       Window{1, 8, 8},
		}},
		{6, Schedule{
			Foundation:  Window{2, 1, 2},
			Preparation: Window{1, 3, 3},
			Peak:        Window{0, 0, 0},
			Taper:       Window{1, 4, 4},
		}},
		{3, Schedule{
			Foundation:  Window{0, 0, 0},
			Preparation: Window{2, 1, 2},
			Peak:        Window{0, 0, 0},
			Taper:       Window{1, 3, 3},
		}},
		{2, Schedule{
			Foundation:  Window{0, 0, 0},
			Preparation: Window{1, 1, 1},
			Peak:        Window{0, 0, 0},
			Taper:       Window{1, 2, 2},
		}},
		{1, Schedule{
			Foundation:  Window{0, 0, 0},
			Preparation: Window{1, 1, 1},
			Peak:        Window{0, 0, 0},
			Taper:       Window{1, 1, 1},
		}},
	}

	for _, tt := range tests {
		got := BuildSchedule(tt.weeks)
		if got != tt.want {
			t.Errorf("BuildSchedule(%d) = %+v, want %+v", tt.weeks, got, tt.want)
		}
	}
}

func TestPhaseFor(t *testing.T) {
	s := BuildSchedule(12)

	tests := []struct {
		week int
		want Phase
	}{
		{1, PhaseFoundation},
		{4, PhaseFoundation},
		{5, PhasePreparation},
		{8, PhasePreparation},
		{9, PhasePeak},
		{11, PhasePeak},
		{12, PhaseTaper},
		{13, PhasePreparation}, // past the template: default
	}

	for _, tt := range tests {
		if got := s.PhaseFor(tt.week); got != tt.want {
			t.Errorf("PhaseFor(%d) = %s, want %s", tt.week, got, tt.want)
		}
	}
}

// Week 1 must always resolve to a real window, never the fallthrough
// default, for every future countdown.
func TestPhaseFor_WeekOneNeverDefaults(t *testing.T) {
	for weeks := 1; weeks <= 30; weeks++ {
		s := BuildSchedule(weeks)
		got := s.PhaseFor(1)
		if got == PhasePreparation && !s.Preparation.contains(1) {
			t.Errorf("weeksUntil=%d: week 1 fell through to the preparation default", weeks)
		}
		if !s.Foundation.contains(1) && !s.Preparation.contains(1) && !s.Taper.contains(1) {
			t.Errorf("weeksUntil=%d: week 1 not covered by any window", weeks)
		}
	}
}

func TestTotalWeeks(t *testing.T) {
	tests := []struct {
		weeks int
		want  int
	}{
		{12, 12},
		{20, 12},
		{9, 8},
		{6, 4},
		{2, 2},
	}
	for _, tt := range tests {
		if got := BuildSchedule(tt.weeks).TotalWeeks(); got != tt.want {
			t.Errorf("BuildSchedule(%d).TotalWeeks() = %d, want %d", tt.weeks, got, tt.want)
		}
	}
}
