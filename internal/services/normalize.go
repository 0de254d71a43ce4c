package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sageleaf/curricula-backend/internal/types"
)

// The model does not reliably put the session array under one key. Each known
// shape gets its own entry here; fallback order is fixed and new shapes get a
// new entry instead of another ad hoc branch.
type responseShape struct {
	name    string
	extract func(obj map[string]any) ([]any, bool)
}

func arrayUnder(key string) func(obj map[string]any) ([]any, bool) {
	return func(obj map[string]any) ([]any, bool) {
		v, ok := obj[key]
		if !ok {
			return nil, false
		}
		arr, ok := v.([]any)
		if !ok || len(arr) == 0 {
			return nil, false
		}
		return arr, true
	}
}

// nestedArrayUnder handles responses that wrap the whole syllabus under a key,
// e.g. {"curriculum": {"session_list": [...]}}.
func nestedArrayUnder(key string) func(obj map[string]any) ([]any, bool) {
	direct := arrayUnder(key)
	return func(obj map[string]any) ([]any, bool) {
		if arr, ok := direct(obj); ok {
			return arr, true
		}
		inner, ok := obj[key].(map[string]any)
		if !ok {
			return nil, false
		}
		for _, innerKey := range []string{"session_list", "sessions"} {
			if arr, ok := arrayUnder(innerKey)(inner); ok {
				return arr, true
			}
		}
		return nil, false
	}
}

var curriculumShapes = []responseShape{
	{name: "session_list", extract: arrayUnder("session_list")},
	{name: "sessions", extract: arrayUnder("sessions")},
	{name: "syllabus", extract: nestedArrayUnder("syllabus")},
	{name: "curriculum", extract: nestedArrayUnder("curriculum")},
}

const defaultObjective = "Learn key concepts"

// ExtractJSONObject pulls the outermost {...} out of raw model text. There is
// no recovery if the model truncated mid-object.
func ExtractJSONObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: response contains no JSON object", ErrGeneration)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: response JSON did not parse: %v", ErrGeneration, err)
	}
	return obj, nil
}

// NormalizeCurriculum converts raw parsed model output into the canonical
// GeneratedCurriculum, backfilling safe defaults for missing optional fields.
func NormalizeCurriculum(obj map[string]any) (*types.GeneratedCurriculum, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: empty response object", ErrGeneration)
	}

	var sessionsRaw []any
	for _, shape := range curriculumShapes {
		if arr, ok := shape.extract(obj); ok {
			sessionsRaw = arr
			break
		}
	}
	if sessionsRaw == nil {
		return nil, fmt.Errorf("%w: no session array under any known key", ErrGeneration)
	}

	out := &types.GeneratedCurriculum{}
	if ov, ok := obj["curriculum_overview"].(map[string]any); ok {
		out.CurriculumOverview = normalizeOverview(ov)
	} else if ov, ok := obj["overview"].(map[string]any); ok {
		out.CurriculumOverview = normalizeOverview(ov)
	}

	out.SessionList = make([]types.SessionStub, 0, len(sessionsRaw))
	for i, raw := range sessionsRaw {
		m, ok := raw.(map[string]any)
		if !ok {
			m = map[string]any{}
		}
		out.SessionList = append(out.SessionList, normalizeSessionStub(m, i+1))
	}

	// Keep the overview honest regardless of what the model claimed.
	out.CurriculumOverview.TotalSessions = len(out.SessionList)
	return out, nil
}

func normalizeOverview(m map[string]any) types.CurriculumOverview {
	return types.CurriculumOverview{
		Title:          stringFromAny(m["title"], ""),
		Description:    stringFromAny(m["description"], ""),
		TotalSessions:  intFromAny(m["total_sessions"], 0),
		TotalHours:     floatFromAny(m["total_hours"], 0),
		CurriculumType: stringFromAny(m["curriculum_type"], ""),
		ContentDensity: stringFromAny(m["content_density"], ""),
	}
}

func normalizeSessionStub(m map[string]any, fallbackNumber int) types.SessionStub {
	stub := types.SessionStub{
		SessionNumber:      intFromAny(m["session_number"], fallbackNumber),
		Title:              stringFromAny(m["title"], fmt.Sprintf("Session %d", fallbackNumber)),
		Description:        stringFromAny(m["description"], ""),
		LearningObjectives: toStringSlice(m["learning_objectives"]),
		EstimatedMinutes:   intFromAny(m["estimated_minutes"], 60),
		Topics:             toStringSlice(m["topics"]),
	}
	if len(stub.LearningObjectives) == 0 {
		stub.LearningObjectives = []string{defaultObjective}
	}
	return stub
}

// NormalizeSessionContent converts the raw metadata response into the
// canonical SessionContent, backfilling from the stub where fields are absent.
func NormalizeSessionContent(obj map[string]any, stub types.SessionStub) types.SessionContent {
	if obj == nil {
		obj = map[string]any{}
	}
	out := types.SessionContent{
		SessionNumber:     intFromAny(obj["session_number"], stub.SessionNumber),
		Title:             stringFromAny(obj["title"], stub.Title),
		Overview:          stringFromAny(obj["overview"], stub.Description),
		Objectives:        toStringSlice(obj["objectives"]),
		DiscussionPrompts: toStringSlice(obj["discussion_prompts"]),
	}
	if len(out.Objectives) == 0 {
		out.Objectives = stub.LearningObjectives
	}
	if len(out.Objectives) == 0 {
		out.Objectives = []string{defaultObjective}
	}

	if arr, ok := obj["readings"].([]any); ok {
		for _, raw := range arr {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			out.Readings = append(out.Readings, types.Reading{
				Title:  stringFromAny(m["title"], ""),
				Author: stringFromAny(m["author"], ""),
				Source: stringFromAny(m["source"], ""),
				Why:    stringFromAny(m["why"], ""),
			})
		}
	}
	if arr, ok := obj["case_studies"].([]any); ok {
		for _, raw := range arr {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			out.CaseStudies = append(out.CaseStudies, types.CaseStudy{
				Title:    stringFromAny(m["title"], ""),
				Summary:  stringFromAny(m["summary"], ""),
				Takeaway: stringFromAny(m["takeaway"], ""),
			})
		}
	}
	if arr, ok := obj["videos"].([]any); ok {
		for _, raw := range arr {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			out.Videos = append(out.Videos, types.VideoRef{
				Title:    stringFromAny(m["title"], ""),
				Creator:  stringFromAny(m["creator"], ""),
				SearchBy: stringFromAny(m["search_by"], ""),
			})
		}
	}
	return out
}

// ValidateCurriculum is the soft pass: it never rejects a shape the
// normalizer already accepted, it just reports human-readable defects so the
// caller can decide whether to keep the batch.
func ValidateCurriculum(gc *types.GeneratedCurriculum) (bool, []string) {
	var defects []string
	if gc == nil {
		return false, []string{"curriculum is empty"}
	}
	if strings.TrimSpace(gc.CurriculumOverview.Title) == "" {
		defects = append(defects, "curriculum_overview.title is missing")
	}
	if strings.TrimSpace(gc.CurriculumOverview.Description) == "" {
		defects = append(defects, "curriculum_overview.description is missing")
	}
	if len(gc.SessionList) == 0 {
		defects = append(defects, "session_list is empty")
	}
	if gc.CurriculumOverview.TotalSessions != len(gc.SessionList) {
		defects = append(defects, fmt.Sprintf(
			"curriculum_overview.total_sessions is %d but session_list has %d entries",
			gc.CurriculumOverview.TotalSessions, len(gc.SessionList)))
	}
	for i, s := range gc.SessionList {
		if strings.TrimSpace(s.Title) == "" {
			defects = append(defects, fmt.Sprintf("session %d has no title", i+1))
		}
		if strings.TrimSpace(s.Description) == "" {
			defects = append(defects, fmt.Sprintf("session %d has no description", i+1))
		}
		if len(s.LearningObjectives) == 0 {
			defects = append(defects, fmt.Sprintf("session %d has no learning objectives", i+1))
		}
	}
	return len(defects) == 0, defects
}

// ---- any->Go helpers ----

func stringFromAny(v any, def string) string {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	}
	return fmt.Sprint(v)
}

func intFromAny(v any, def int) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case json.Number:
		i, _ := t.Int64()
		return int(i)
	default:
		return def
	}
}

func floatFromAny(v any, def float64) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	default:
		return def
	}
}

func toStringSlice(v any) []string {
	if v == nil {
		return []string{}
	}
	a, ok := v.([]any)
	if !ok {
		if ss, ok2 := v.([]string); ok2 {
			return ss
		}
		return []string{}
	}
	out := make([]string, 0, len(a))
	for _, x := range a {
		out = append(out, fmt.Sprint(x))
	}
	return out
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
