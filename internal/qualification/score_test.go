package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersWithScores(scores map[string]float64) []Answer {
	out := make([]Answer, 0, len(scores))
	for id, score := range scores {
		q, ok := QuestionByID(id)
		if !ok {
			panic("unknown question " + id)
		}
		out = append(out, Answer{QuestionID: id, Score: score, Weight: q.Weight})
	}
	return out
}

func TestTotalScoreWeightedMean(t *testing.T) {
	answers := []Answer{
		{QuestionID: "initial", Score: 10, Weight: 2},
		{QuestionID: "goal", Score: 5, Weight: 3},
	}
	// (10*2 + 5*3) / (2+3) = 7
	assert.InDelta(t, 7.0, TotalScore(answers), 1e-9)
}

func TestTotalScoreEmpty(t *testing.T) {
	assert.Zero(t, TotalScore(nil))
	assert.Zero(t, TotalScore([]Answer{}))
}

func TestTotalScoreOrderInvariant(t *testing.T) {
	a := []Answer{
		{QuestionID: "initial", Score: 3, Weight: 2},
		{QuestionID: "goal", Score: 10, Weight: 3},
		{QuestionID: "budget", Score: 6, Weight: 3.5},
	}
	b := []Answer{a[2], a[0], a[1]}
	assert.InDelta(t, TotalScore(a), TotalScore(b), 1e-9)
}

func TestTotalScoreBestPath(t *testing.T) {
	// Highest option on every question. The terminal question tops
	// out at 9, so the ceiling is just under 10.
	answers := answersWithScores(map[string]float64{
		"initial":    10,
		"goal":       10,
		"commitment": 10,
		"budget":     10,
		"timeline":   10,
		"final":      9,
	})
	score := TotalScore(answers)
	assert.InDelta(t, 143.5/14.5, score, 1e-9)
	assert.Equal(t, OutcomeHighlyQualified, OutcomeFor(score))
}

func TestTotalScoreWorstPath(t *testing.T) {
	answers := answersWithScores(map[string]float64{
		"initial":    3,
		"goal":       2,
		"commitment": 3,
		"budget":     1,
		"timeline":   2,
		"final":      3,
	})
	score := TotalScore(answers)
	assert.Less(t, score, 5.0)
	assert.Equal(t, OutcomeBuildingFoundation, OutcomeFor(score))
}

func TestOutcomeForThresholds(t *testing.T) {
	assert.Equal(t, OutcomeHighlyQualified, OutcomeFor(7.5))
	assert.Equal(t, OutcomeQualified, OutcomeFor(7.49))
	assert.Equal(t, OutcomeQualified, OutcomeFor(5.0))
	assert.Equal(t, OutcomeBuildingFoundation, OutcomeFor(4.99))
	assert.Equal(t, OutcomeBuildingFoundation, OutcomeFor(0))
}

func TestOutcomeLabels(t *testing.T) {
	assert.Equal(t, "HIGHLY QUALIFIED!", OutcomeHighlyQualified.Label())
	assert.Equal(t, "QUALIFIED", OutcomeQualified.Label())
	assert.Equal(t, "BUILDING FOUNDATION", OutcomeBuildingFoundation.Label())
}

func TestRedirectFor(t *testing.T) {
	assert.Equal(t, "/checkout?qualified=true&score=8.2", RedirectFor(8.2))
	assert.Equal(t, "/checkout?qualified=true&score=5.0", RedirectFor(5.0))
	assert.Equal(t, "/sales?qualified=explorer", RedirectFor(4.9))
	// Scores round to one decimal in the query string.
	assert.Equal(t, "/checkout?qualified=true&score=9.9", RedirectFor(143.5/14.5))
}

func TestResultMessagePicksStrongestSignals(t *testing.T) {
	perfect := answersWithScores(map[string]float64{
		"initial": 10, "budget": 10, "timeline": 10,
	})
	msg := ResultMessage(OutcomeHighlyQualified, perfect)
	require.Contains(t, msg, "perfect candidate")

	experienced := answersWithScores(map[string]float64{"initial": 8, "budget": 4, "timeline": 5})
	assert.Contains(t, ResultMessage(OutcomeHighlyQualified, experienced), "advanced experience")

	explorer := answersWithScores(map[string]float64{"goal": 2})
	assert.Contains(t, ResultMessage(OutcomeBuildingFoundation, explorer), "explore your options")
}
