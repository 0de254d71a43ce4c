package services

import (
	"fmt"
	"strings"

	"github.com/sageleaf/curricula-backend/internal/types"
)

// PromptConfig holds the product thresholds that bucket a profile into a
// curriculum type and content density. These are policy knobs, not derived
// math; keep them configurable.
type PromptConfig struct {
	CrashCourseMaxSessions   int
	StandardMaxSessions      int
	ComprehensiveMaxSessions int
	LightMaxMinutes          int
	IntensiveMinMinutes      int
}

func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		CrashCourseMaxSessions:   5,
		StandardMaxSessions:      15,
		ComprehensiveMaxSessions: 30,
		LightMaxMinutes:          30,
		IntensiveMinMinutes:      75,
	}
}

func TotalSessions(p *types.UserProfile) int {
	if p == nil {
		return 0
	}
	return p.TotalWeeks * p.SessionsPerWeek
}

func CurriculumType(cfg PromptConfig, totalSessions int) string {
	switch {
	case totalSessions <= cfg.CrashCourseMaxSessions:
		return "crash_course"
	case totalSessions <= cfg.StandardMaxSessions:
		return "standard"
	case totalSessions <= cfg.ComprehensiveMaxSessions:
		return "comprehensive"
	default:
		return "mastery"
	}
}

func ContentDensity(cfg PromptConfig, sessionLengthMins int) string {
	switch {
	case sessionLengthMins <= cfg.LightMaxMinutes:
		return "light"
	case sessionLengthMins >= cfg.IntensiveMinMinutes:
		return "intensive"
	default:
		return "moderate"
	}
}

func profileSummary(p *types.UserProfile) string {
	if p == nil {
		p = &types.UserProfile{}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Learner background: %s\n", p.Background)
	fmt.Fprintf(&b, "Interests: %s\n", p.Interests)
	fmt.Fprintf(&b, "Prior experience: %s\n", p.Experience)
	fmt.Fprintf(&b, "Subject to learn: %s\n", p.LearningSubject)
	fmt.Fprintf(&b, "Skill level: %s\n", p.SkillLevel)
	fmt.Fprintf(&b, "Goals: %s\n", p.Goals)
	fmt.Fprintf(&b, "Schedule: %d weeks, %d sessions per week, %d minutes per session\n",
		p.TotalWeeks, p.SessionsPerWeek, p.SessionLengthMins)
	return b.String()
}

// ComposeGenerationPrompt drafts the reusable prompt the user can review and
// reuse for curriculum generation.
func ComposeGenerationPrompt(cfg PromptConfig, p *types.UserProfile) string {
	total := TotalSessions(p)
	var b strings.Builder
	b.WriteString("Draft a single, reusable instruction prompt that tells a curriculum-authoring AI how to build a personalized learning plan for the learner below.\n\n")
	b.WriteString(profileSummary(p))
	fmt.Fprintf(&b, "\nThe plan has %d sessions in total (%s format, %s density).\n",
		total, CurriculumType(cfg, total), ContentDensity(cfg, p.SessionLengthMins))
	b.WriteString("The prompt must explicitly ask for a JSON object with a curriculum_overview and an ordered session_list.\n")
	return b.String()
}

// ComposeSyllabusPrompt instructs the model to directly draft the full
// syllabus as a JSON object.
func ComposeSyllabusPrompt(cfg PromptConfig, p *types.UserProfile) string {
	total := TotalSessions(p)
	var b strings.Builder
	b.WriteString("Design a personalized learning curriculum for the learner below.\n\n")
	b.WriteString(profileSummary(p))
	fmt.Fprintf(&b, "\nProduce exactly %d sessions. Format: %s. Content density per session: %s.\n",
		total, CurriculumType(cfg, total), ContentDensity(cfg, p.SessionLengthMins))
	b.WriteString(`
Respond with a single JSON object, no prose before or after, shaped as:
{
  "curriculum_overview": {
    "title": string,
    "description": string,
    "total_sessions": integer,
    "total_hours": number,
    "curriculum_type": string,
    "content_density": string
  },
  "session_list": [
    {
      "session_number": integer,
      "title": string,
      "description": string,
      "learning_objectives": [string],
      "estimated_minutes": integer,
      "topics": [string]
    }
  ]
}
Session numbers start at 1 and are consecutive. Titles must be specific, not generic.
`)
	return b.String()
}

// ComposeSessionMetadataPrompt asks for the structured half of one session:
// objectives, readings, case studies, videos, discussion prompts.
func ComposeSessionMetadataPrompt(cfg PromptConfig, p *types.UserProfile, stub types.SessionStub) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are preparing session %d, %q, of a personalized curriculum.\n\n", stub.SessionNumber, stub.Title)
	b.WriteString(profileSummary(p))
	fmt.Fprintf(&b, "\nSession description: %s\n", stub.Description)
	if len(stub.LearningObjectives) > 0 {
		fmt.Fprintf(&b, "Planned objectives: %s\n", strings.Join(stub.LearningObjectives, "; "))
	}
	fmt.Fprintf(&b, "Content density: %s.\n", ContentDensity(cfg, p.SessionLengthMins))
	b.WriteString(`
Respond with a single JSON object, no prose before or after, shaped as:
{
  "session_number": integer,
  "title": string,
  "overview": string,
  "objectives": [string],
  "readings": [{"title": string, "author": string, "source": string, "why": string}],
  "case_studies": [{"title": string, "summary": string, "takeaway": string}],
  "videos": [{"title": string, "creator": string, "search_by": string}],
  "discussion_prompts": [string]
}
Recommend real, findable readings and videos where possible.
`)
	return b.String()
}

// ComposeSessionEssayPrompt asks for the long-form lesson essay, using the
// already-generated metadata as context.
func ComposeSessionEssayPrompt(p *types.UserProfile, meta types.SessionContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the full lesson essay for session %d, %q.\n\n", meta.SessionNumber, meta.Title)
	b.WriteString(profileSummary(p))
	fmt.Fprintf(&b, "\nSession overview: %s\n", meta.Overview)
	if len(meta.Objectives) > 0 {
		fmt.Fprintf(&b, "Objectives to cover: %s\n", strings.Join(meta.Objectives, "; "))
	}
	b.WriteString(`
Write a 3000-4000 word teaching essay in Markdown that a motivated learner can read in one sitting.
Use clear section headings, concrete examples, and plain language calibrated to the learner's skill level.
Return the essay text only, no JSON wrapper, no preamble.
`)
	return b.String()
}
