package services

import (
	"strings"
	"testing"

	"github.com/sageleaf/curricula-backend/internal/types"
)

func TestCurriculumTypeBuckets(t *testing.T) {
	cfg := DefaultPromptConfig()
	cases := []struct {
		name     string
		sessions int
		want     string
	}{
		{name: "crash_course_boundary", sessions: 5, want: "crash_course"},
		{name: "standard_low", sessions: 6, want: "standard"},
		{name: "standard_typical", sessions: 8, want: "standard"},
		{name: "standard_boundary", sessions: 15, want: "standard"},
		{name: "comprehensive", sessions: 16, want: "comprehensive"},
		{name: "comprehensive_boundary", sessions: 30, want: "comprehensive"},
		{name: "mastery", sessions: 31, want: "mastery"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CurriculumType(cfg, tc.sessions); got != tc.want {
				t.Fatalf("CurriculumType(%d)=%q, want %q", tc.sessions, got, tc.want)
			}
		})
	}
}

func TestContentDensityBuckets(t *testing.T) {
	cfg := DefaultPromptConfig()
	cases := []struct {
		name string
		mins int
		want string
	}{
		{name: "light", mins: 20, want: "light"},
		{name: "light_boundary", mins: 30, want: "light"},
		{name: "moderate_low", mins: 31, want: "moderate"},
		{name: "moderate_typical", mins: 45, want: "moderate"},
		{name: "moderate_high", mins: 74, want: "moderate"},
		{name: "intensive_boundary", mins: 75, want: "intensive"},
		{name: "intensive", mins: 90, want: "intensive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContentDensity(cfg, tc.mins); got != tc.want {
				t.Fatalf("ContentDensity(%d)=%q, want %q", tc.mins, got, tc.want)
			}
		})
	}
}

func TestTotalSessions(t *testing.T) {
	p := &types.UserProfile{TotalWeeks: 4, SessionsPerWeek: 2, SessionLengthMins: 45}
	if got := TotalSessions(p); got != 8 {
		t.Fatalf("TotalSessions=%d, want 8", got)
	}
	cfg := DefaultPromptConfig()
	if got := CurriculumType(cfg, TotalSessions(p)); got != "standard" {
		t.Fatalf("CurriculumType=%q, want standard", got)
	}
	if got := ContentDensity(cfg, p.SessionLengthMins); got != "moderate" {
		t.Fatalf("ContentDensity=%q, want moderate", got)
	}
	if got := TotalSessions(nil); got != 0 {
		t.Fatalf("TotalSessions(nil)=%d, want 0", got)
	}
}

func TestComposeSyllabusPromptMentionsScheduleAndShape(t *testing.T) {
	cfg := DefaultPromptConfig()
	p := &types.UserProfile{
		LearningSubject:   "Bayesian statistics",
		SkillLevel:        "intermediate",
		TotalWeeks:        4,
		SessionsPerWeek:   2,
		SessionLengthMins: 45,
	}
	prompt := ComposeSyllabusPrompt(cfg, p)
	for _, want := range []string{
		"Bayesian statistics",
		"exactly 8 sessions",
		"standard",
		"moderate",
		"curriculum_overview",
		"session_list",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("syllabus prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestComposePromptsTolerateEmptyProfile(t *testing.T) {
	cfg := DefaultPromptConfig()
	// Absent fields interpolate as empty strings rather than failing.
	if got := ComposeGenerationPrompt(cfg, nil); !strings.Contains(got, "session_list") {
		t.Fatalf("generation prompt for nil profile malformed:\n%s", got)
	}
	meta := types.SessionContent{SessionNumber: 1, Title: "Intro"}
	if got := ComposeSessionEssayPrompt(nil, meta); !strings.Contains(got, "3000-4000") {
		t.Fatalf("essay prompt for nil profile malformed:\n%s", got)
	}
}
