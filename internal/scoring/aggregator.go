// Package scoring derives normalized composite readiness metrics from a
// user's stored evaluation records.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/careerkit/career-compass/internal/types"
)

// Defaults used when no input of the relevant kind exists.
const (
	defaultSkillReadiness = 10
	defaultCareerFit      = 15
)

// profileFieldCount is the fixed denominator for profile completion.
const profileFieldCount = 17

// Metric weights. Absent inputs are dropped from both numerator and
// denominator, so present weights renormalize to 1.0.
var (
	skillReadinessWeights = map[string]float64{"resume": 0.4, "technical": 0.6}
	careerFitWeights      = map[string]float64{"resume": 0.25, "technical": 0.25, "soft": 0.5}
)

// ParseScoreFraction parses a score string of the form "X/Y" (e.g. "8/10")
// into a 0-100 percentage. Whitespace around either number is tolerated.
// Returns false for malformed input or a zero denominator.
func ParseScoreFraction(s string) (float64, bool) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, false
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || max == 0 {
		return 0, false
	}
	return score / max * 100, true
}

// resumeMatchScore extracts the 0-100 match score from the most recent
// rank evaluation, if any.
func resumeMatchScore(record *types.ResumeEvaluationRecord) (float64, bool) {
	if record == nil || record.Kind != types.EvaluationKindRank || record.Rank == nil {
		return 0, false
	}
	return record.Rank.MatchScore, true
}

// interviewTechnicalScore averages the per-question final scores of the
// most recent interview evaluation. Pairs with unparsable scores are
// skipped; no parsable pair at all means the metric is absent.
func interviewTechnicalScore(record *types.InterviewRecord) (float64, bool) {
	if record == nil || record.Evaluation == nil {
		return 0, false
	}
	var sum float64
	var count int
	for _, pair := range record.Evaluation.QuestionPairs {
		if pct, ok := ParseScoreFraction(pair.FinalScore); ok {
			sum += pct
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// interviewSoftSkillScore extracts the soft-skill percentage from the
// most recent interview evaluation.
func interviewSoftSkillScore(record *types.InterviewRecord) (float64, bool) {
	if record == nil || record.Evaluation == nil {
		return 0, false
	}
	return ParseScoreFraction(record.Evaluation.FinalEvaluation.SoftSkillScore)
}

// clampPercent restricts a rounded metric to the 0-100 range. Fractions
// like "12/10" can otherwise push a weighted average past 100.
func clampPercent(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}

// weightedAvg computes a weighted average over present values only,
// renormalizing the present weights to sum to 1. Returns false when no
// value is present.
func weightedAvg(weights map[string]float64, values map[string]float64) (float64, bool) {
	var sum, totalWeight float64
	for key, value := range values {
		weight, ok := weights[key]
		if !ok {
			continue
		}
		sum += value * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0, false
	}
	return sum / totalWeight, true
}

// Aggregate derives the composite score from whichever inputs are
// available. Missing inputs never zero out a metric: each metric is a
// renormalized weighted average over what exists, with a fixed default
// when nothing does.
func Aggregate(inputs types.ScoreInputs) types.CompositeScore {
	present := map[string]float64{}
	if v, ok := resumeMatchScore(inputs.Resume); ok {
		present["resume"] = v
	}
	if v, ok := interviewTechnicalScore(inputs.Interview); ok {
		present["technical"] = v
	}
	if v, ok := interviewSoftSkillScore(inputs.Interview); ok {
		present["soft"] = v
	}

	skillReadiness := defaultSkillReadiness
	if v, ok := weightedAvg(skillReadinessWeights, present); ok {
		skillReadiness = clampPercent(math.Round(v))
	}

	careerFit := defaultCareerFit
	if v, ok := weightedAvg(careerFitWeights, present); ok {
		careerFit = clampPercent(math.Round(v))
	}

	return types.CompositeScore{
		ProfileCompletion: ProfileCompletion(inputs.Profile),
		SkillReadiness:    skillReadiness,
		CareerFit:         careerFit,
	}
}

// ProfileCompletion returns the percentage of the fixed profile fields
// that are filled in, rounded to the nearest integer. Numeric fields
// count when positive; the skills array counts only when non-empty.
func ProfileCompletion(profile *types.UserProfile) int {
	if profile == nil {
		return 0
	}

	filled := 0
	for _, s := range []string{
		profile.Name, profile.Mobile, profile.DOB, profile.Gender,
		profile.City, profile.State, profile.Country, profile.PostalCode,
		profile.College, profile.Degree, profile.Experience,
		profile.LinkedIn, profile.GitHub, profile.Portfolio,
	} {
		if strings.TrimSpace(s) != "" {
			filled++
		}
	}
	if profile.Age > 0 {
		filled++
	}
	if profile.GradYear > 0 {
		filled++
	}
	if len(profile.Skills) > 0 {
		filled++
	}

	return int(math.Round(float64(filled) / profileFieldCount * 100))
}
