package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/career-compass/internal/types"
)

func TestParseScoreFraction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"simple", "8/10", 80, true},
		{"whitespace", " 7 / 10 ", 70, true},
		{"decimal", "7.5/10", 75, true},
		{"full marks", "10/10", 100, true},
		{"no slash", "eight", 0, false},
		{"non numeric", "eight/ten", 0, false},
		{"zero denominator", "5/0", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScoreFraction(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func rankRecord(matchScore float64) *types.ResumeEvaluationRecord {
	return &types.ResumeEvaluationRecord{
		Kind: types.EvaluationKindRank,
		Rank: &types.RankResult{MatchScore: matchScore},
	}
}

func interviewRecord(softSkill string, finalScores ...string) *types.InterviewRecord {
	evaluation := &types.Evaluation{
		FinalEvaluation: types.FinalEvaluation{SoftSkillScore: softSkill},
	}
	for _, score := range finalScores {
		evaluation.QuestionPairs = append(evaluation.QuestionPairs, types.QuestionPair{FinalScore: score})
	}
	return &types.InterviewRecord{Evaluation: evaluation}
}

func TestAggregate_ResumeOnlyRenormalizes(t *testing.T) {
	// With only a resume score, its weight renormalizes to 1.0 so the
	// metric equals the raw score, not score*0.4.
	composite := Aggregate(types.ScoreInputs{Resume: rankRecord(80)})

	assert.Equal(t, 80, composite.SkillReadiness)
	assert.Equal(t, 80, composite.CareerFit)
}

func TestAggregate_NoInputsUsesDefaults(t *testing.T) {
	composite := Aggregate(types.ScoreInputs{})

	assert.Equal(t, 10, composite.SkillReadiness)
	assert.Equal(t, 15, composite.CareerFit)
	assert.Equal(t, 0, composite.ProfileCompletion)
}

func TestAggregate_AllInputsWeighted(t *testing.T) {
	inputs := types.ScoreInputs{
		Resume:    rankRecord(80),
		Interview: interviewRecord("6/10", "8/10", "10/10"), // technical avg = 90
	}

	composite := Aggregate(inputs)

	// skillReadiness = 80*0.4 + 90*0.6 = 86
	assert.Equal(t, 86, composite.SkillReadiness)
	// careerFit = 80*0.25 + 90*0.25 + 60*0.5 = 72.5, rounds to 73
	assert.Equal(t, 73, composite.CareerFit)
}

func TestAggregate_UnparsablePairsExcluded(t *testing.T) {
	inputs := types.ScoreInputs{
		Interview: interviewRecord("not a score", "8/10", "garbage", "6/10"),
	}

	composite := Aggregate(inputs)

	// technical avg over parsable pairs only = (80+60)/2 = 70; soft absent.
	assert.Equal(t, 70, composite.SkillReadiness)
	assert.Equal(t, 70, composite.CareerFit)
}

func TestAggregate_ClampsToHundred(t *testing.T) {
	// A model that hands back "12/10" must not produce a score above 100.
	composite := Aggregate(types.ScoreInputs{
		Interview: interviewRecord("12/10", "15/10", "11/10"),
	})

	assert.Equal(t, 100, composite.SkillReadiness)
	assert.Equal(t, 100, composite.CareerFit)
}

func TestAggregate_RoastRecordContributesNothing(t *testing.T) {
	record := &types.ResumeEvaluationRecord{
		Kind:  types.EvaluationKindRoast,
		Roast: &types.RoastResult{RoastComments: []string{"Comic Sans, really?"}},
	}

	composite := Aggregate(types.ScoreInputs{Resume: record})
	assert.Equal(t, 10, composite.SkillReadiness)
	assert.Equal(t, 15, composite.CareerFit)
}

func TestProfileCompletion(t *testing.T) {
	empty := &types.UserProfile{}
	assert.Equal(t, 0, ProfileCompletion(empty))

	full := &types.UserProfile{
		Name: "Asha", Mobile: "9999999999", DOB: "2001-04-12", Gender: "female",
		Age: 25, City: "Pune", State: "Maharashtra", Country: "India",
		PostalCode: "411001", College: "COEP", Degree: "B.Tech", GradYear: 2023,
		Skills: []string{"Go"}, Experience: "2 years", LinkedIn: "in/asha",
		GitHub: "asha", Portfolio: "asha.dev",
	}
	assert.Equal(t, 100, ProfileCompletion(full))

	// 5 of 17 fields filled rounds to 29.
	partial := &types.UserProfile{
		Name: "Asha", City: "Pune", Country: "India",
		Skills: []string{"Go", "SQL"}, GradYear: 2023,
	}
	assert.Equal(t, 29, ProfileCompletion(partial))

	// Empty skills array does not count.
	withEmptySkills := &types.UserProfile{Name: "Asha", Skills: []string{}}
	require.Equal(t, 6, ProfileCompletion(withEmptySkills))
}
