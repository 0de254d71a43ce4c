package types

// Pure JSON contracts for generated curriculum content. Not DB models; these
// are what gets stored in the jsonb columns and returned to the frontend.

type CurriculumOverview struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	TotalSessions  int     `json:"total_sessions"`
	TotalHours     float64 `json:"total_hours"`
	CurriculumType string  `json:"curriculum_type"` // crash_course|standard|comprehensive|mastery
	ContentDensity string  `json:"content_density"` // light|moderate|intensive
}

type SessionStub struct {
	SessionNumber      int      `json:"session_number"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	LearningObjectives []string `json:"learning_objectives"`
	EstimatedMinutes   int      `json:"estimated_minutes"`
	Topics             []string `json:"topics,omitempty"`
}

type GeneratedCurriculum struct {
	CurriculumOverview CurriculumOverview `json:"curriculum_overview"`
	SessionList        []SessionStub      `json:"session_list"`
}

type Reading struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Source string `json:"source,omitempty"`
	Why    string `json:"why,omitempty"`
}

type CaseStudy struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Takeaway string `json:"takeaway,omitempty"`
}

type VideoRef struct {
	Title    string `json:"title"`
	Creator  string `json:"creator,omitempty"`
	SearchBy string `json:"search_by,omitempty"`
}

type SessionContent struct {
	SessionNumber     int         `json:"session_number"`
	Title             string      `json:"title"`
	Overview          string      `json:"overview"`
	Objectives        []string    `json:"objectives"`
	Essay             string      `json:"essay"`
	Readings          []Reading   `json:"readings"`
	CaseStudies       []CaseStudy `json:"case_studies"`
	Videos            []VideoRef  `json:"videos"`
	DiscussionPrompts []string    `json:"discussion_prompts"`
}
