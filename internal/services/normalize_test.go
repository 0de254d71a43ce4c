package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sageleaf/curricula-backend/internal/types"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantKey string
		wantErr bool
	}{
		{
			name:    "clean_object",
			text:    `{"session_list": []}`,
			wantKey: "session_list",
		},
		{
			name:    "prose_wrapped",
			text:    "Sure! Here is your curriculum:\n```json\n{\"sessions\": [{\"title\": \"a\"}]}\n```\nEnjoy!",
			wantKey: "sessions",
		},
		{
			name:    "no_object",
			text:    "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "truncated_object",
			text:    `{"session_list": [{"title": "a"`,
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := ExtractJSONObject(tc.text)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", obj)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := obj[tc.wantKey]; !ok {
				t.Fatalf("parsed object missing %q: %v", tc.wantKey, obj)
			}
		})
	}
}

func TestNormalizeCurriculumShapes(t *testing.T) {
	sessions := []any{
		map[string]any{"session_number": float64(1), "title": "First", "description": "intro"},
		map[string]any{"session_number": float64(2), "title": "Second", "description": "more"},
		map[string]any{"title": "Third"},
	}

	shapes := []struct {
		name string
		obj  map[string]any
	}{
		{name: "session_list", obj: map[string]any{"session_list": sessions}},
		{name: "sessions", obj: map[string]any{"sessions": sessions}},
		{name: "syllabus_direct", obj: map[string]any{"syllabus": sessions}},
		{name: "curriculum_direct", obj: map[string]any{"curriculum": sessions}},
		{name: "curriculum_nested", obj: map[string]any{"curriculum": map[string]any{"session_list": sessions}}},
		{name: "syllabus_nested", obj: map[string]any{"syllabus": map[string]any{"sessions": sessions}}},
	}

	for _, tc := range shapes {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeCurriculum(tc.obj)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.SessionList) != len(sessions) {
				t.Fatalf("session count=%d, want %d", len(got.SessionList), len(sessions))
			}
			if got.CurriculumOverview.TotalSessions != len(sessions) {
				t.Fatalf("total_sessions=%d, want %d", got.CurriculumOverview.TotalSessions, len(sessions))
			}
		})
	}
}

func TestNormalizeCurriculumFallbackOrder(t *testing.T) {
	// When both keys exist, session_list wins over sessions.
	obj := map[string]any{
		"session_list": []any{map[string]any{"title": "from session_list"}},
		"sessions":     []any{map[string]any{"title": "a"}, map[string]any{"title": "b"}},
	}
	got, err := NormalizeCurriculum(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.SessionList) != 1 || got.SessionList[0].Title != "from session_list" {
		t.Fatalf("fallback order violated: %+v", got.SessionList)
	}
}

func TestNormalizeCurriculumCorrectsOverviewCount(t *testing.T) {
	obj := map[string]any{
		"curriculum_overview": map[string]any{
			"title":          "Intro to X",
			"description":    "A plan",
			"total_sessions": float64(99),
		},
		"session_list": []any{
			map[string]any{"title": "one", "description": "d"},
			map[string]any{"title": "two", "description": "d"},
		},
	}
	got, err := NormalizeCurriculum(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurriculumOverview.TotalSessions != 2 {
		t.Fatalf("total_sessions=%d, want corrected 2", got.CurriculumOverview.TotalSessions)
	}
}

func TestNormalizeCurriculumDefaults(t *testing.T) {
	obj := map[string]any{"sessions": []any{map[string]any{}}}
	got, err := NormalizeCurriculum(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := got.SessionList[0]
	if s.SessionNumber != 1 {
		t.Fatalf("session_number=%d, want 1", s.SessionNumber)
	}
	if s.Title != "Session 1" {
		t.Fatalf("title=%q, want default", s.Title)
	}
	if len(s.LearningObjectives) != 1 || s.LearningObjectives[0] != defaultObjective {
		t.Fatalf("objectives=%v, want default backfill", s.LearningObjectives)
	}
	if s.EstimatedMinutes != 60 {
		t.Fatalf("estimated_minutes=%d, want 60", s.EstimatedMinutes)
	}
}

func TestNormalizeCurriculumRejectsUnknownShape(t *testing.T) {
	if _, err := NormalizeCurriculum(map[string]any{"plan": []any{}}); err == nil {
		t.Fatal("expected error for unknown container key")
	}
	if _, err := NormalizeCurriculum(nil); err == nil {
		t.Fatal("expected error for nil object")
	}
}

func TestValidateCurriculum(t *testing.T) {
	valid := &types.GeneratedCurriculum{
		CurriculumOverview: types.CurriculumOverview{
			Title:         "Intro to X",
			Description:   "A minimal plan",
			TotalSessions: 1,
		},
		SessionList: []types.SessionStub{
			{SessionNumber: 1, Title: "One", Description: "d", LearningObjectives: []string{"a"}},
		},
	}
	if ok, defects := ValidateCurriculum(valid); !ok {
		t.Fatalf("valid curriculum reported defects: %v", defects)
	}

	missingTitle := &types.GeneratedCurriculum{
		CurriculumOverview: types.CurriculumOverview{Description: "d", TotalSessions: 1},
		SessionList: []types.SessionStub{
			{SessionNumber: 1, Title: "One", Description: "d", LearningObjectives: []string{"a"}},
		},
	}
	ok, defects := ValidateCurriculum(missingTitle)
	if ok {
		t.Fatal("curriculum without overview title reported valid")
	}
	found := false
	for _, d := range defects {
		if strings.Contains(d, "title") {
			found = true
		}
	}
	if !found {
		t.Fatalf("defects missing title complaint: %v", defects)
	}

	if ok, _ := ValidateCurriculum(nil); ok {
		t.Fatal("nil curriculum reported valid")
	}
}

func TestNormalizeSessionContentBackfillsFromStub(t *testing.T) {
	stub := types.SessionStub{
		SessionNumber:      3,
		Title:              "Stub title",
		Description:        "Stub description",
		LearningObjectives: []string{"obj1"},
	}
	got := NormalizeSessionContent(map[string]any{
		"readings": []any{
			map[string]any{"title": "Book A", "author": "Someone"},
		},
		"discussion_prompts": []any{"What about X?"},
	}, stub)

	if got.SessionNumber != 3 || got.Title != "Stub title" || got.Overview != "Stub description" {
		t.Fatalf("stub backfill failed: %+v", got)
	}
	if len(got.Objectives) != 1 || got.Objectives[0] != "obj1" {
		t.Fatalf("objectives backfill failed: %v", got.Objectives)
	}
	if len(got.Readings) != 1 || got.Readings[0].Title != "Book A" {
		t.Fatalf("readings lost: %v", got.Readings)
	}
	if len(got.DiscussionPrompts) != 1 {
		t.Fatalf("discussion prompts lost: %v", got.DiscussionPrompts)
	}

	empty := NormalizeSessionContent(nil, types.SessionStub{SessionNumber: 1})
	if len(empty.Objectives) != 1 || empty.Objectives[0] != defaultObjective {
		t.Fatalf("empty metadata should default objectives, got %v", empty.Objectives)
	}
}

func TestNormalizePreservesLengthForAnySyntacticallyValidArray(t *testing.T) {
	for _, n := range []int{1, 4, 12} {
		sessions := make([]any, 0, n)
		for i := 0; i < n; i++ {
			sessions = append(sessions, map[string]any{"title": fmt.Sprintf("S%d", i+1)})
		}
		got, err := NormalizeCurriculum(map[string]any{"syllabus": sessions})
		if err != nil {
			t.Fatalf("n=%d unexpected error: %v", n, err)
		}
		if len(got.SessionList) != n || got.CurriculumOverview.TotalSessions != n {
			t.Fatalf("n=%d got %d/%d", n, len(got.SessionList), got.CurriculumOverview.TotalSessions)
		}
	}
}
