package analyze

// SkillGap describes a skill required by the job but missing from the resume.
type SkillGap struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	Suggestion string `json:"suggestion"`
}

// AnalysisResult is the guaranteed output schema of the analyzer. Every field is
// always present: the score is clamped to [0, 10] and list fields are non-nil,
// regardless of what the model returned.
type AnalysisResult struct {
	MatchScore     float64    `json:"match_score"`
	MatchLevel     string     `json:"match_level"`
	SkillsMatched  []string   `json:"skills_matched"`
	SkillsGaps     []SkillGap `json:"skills_gaps"`
	StrengthsFound []string   `json:"strengths_found"`
	ActionableTip  string     `json:"actionable_tip"`
}

// DefaultResult is the single failure terminal of the analysis path: the fixed
// result returned whenever the model output cannot be turned into a usable
// analysis.
func DefaultResult() AnalysisResult {
	return AnalysisResult{
		MatchScore:    5.0,
		MatchLevel:    "Analysis in progress - please try again",
		SkillsMatched: []string{},
		SkillsGaps: []SkillGap{{
			Skill:      "Unable to analyze",
			Importance: "medium",
			Suggestion: "Please ensure both job description and resume are properly formatted with clear information",
		}},
		StrengthsFound: []string{"Analysis incomplete - please retry"},
		ActionableTip:  "Ensure your resume clearly highlights relevant skills and experience",
	}
}
