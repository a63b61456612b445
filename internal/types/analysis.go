package types

// ResumeAnalysis is the candidate summary extracted from an uploaded resume.
type ResumeAnalysis struct {
	Name       string `json:"name"`
	JobRole    string `json:"job_role"`
	FocusField string `json:"focus_field"`
	Summary    string `json:"summary"`
}

// RankResult is the output of the resume ranking flow.
type RankResult struct {
	MatchScore          float64  `json:"match_score"`
	Strengths           string   `json:"strengths"`
	Weaknesses          string   `json:"weaknesses"`
	KeywordsMissing     []string `json:"keywords_missing"`
	FinalRecommendation string   `json:"final_recommendation"`
}

// RoastResult is the output of the resume roasting flow.
type RoastResult struct {
	RoastComments   []string `json:"roast_comments"`
	ImprovementTips []string `json:"improvement_tips"`
}

// ResumeEvaluationKind distinguishes stored resume evaluation records.
type ResumeEvaluationKind string

// Resume evaluation kinds
const (
	EvaluationKindRank  ResumeEvaluationKind = "rank"
	EvaluationKindRoast ResumeEvaluationKind = "roast"
)
