package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphWalksAllQuestions(t *testing.T) {
	visited := make(map[string]bool)
	id := StartQuestionID
	for id != "" {
		q, ok := QuestionByID(id)
		require.True(t, ok, "question %q", id)
		require.False(t, visited[id], "cycle at %q", id)
		visited[id] = true
		id = q.Options[0].Next
	}
	assert.Len(t, visited, QuestionCount())
}

func TestGraphOrder(t *testing.T) {
	want := []string{"initial", "goal", "commitment", "budget", "timeline", "final"}
	id := StartQuestionID
	for _, expect := range want {
		require.Equal(t, expect, id)
		q, _ := QuestionByID(id)
		id = q.Options[0].Next
	}
	assert.Empty(t, id)
}

// Successors live on options, so a question could branch per answer.
// The shipped graph is a straight path: every option of a question
// names the same follow-up, and the terminal question's options all
// end the chat.
func TestGraphSuccessorsPerOption(t *testing.T) {
	for _, id := range []string{"initial", "goal", "commitment", "budget", "timeline", "final"} {
		q, ok := QuestionByID(id)
		require.True(t, ok, "question %q", id)
		next := q.Options[0].Next
		for _, opt := range q.Options {
			assert.Equal(t, next, opt.Next, "question %q option %q", id, opt.Text)
			if opt.Next != "" {
				_, ok := QuestionByID(opt.Next)
				assert.True(t, ok, "question %q option %q successor %q", id, opt.Text, opt.Next)
			}
		}
	}
	final, _ := QuestionByID("final")
	for _, opt := range final.Options {
		assert.Empty(t, opt.Next, "terminal option %q", opt.Text)
	}
}

func TestGraphWeights(t *testing.T) {
	weights := map[string]float64{
		"initial":    2,
		"goal":       3,
		"commitment": 2.5,
		"budget":     3.5,
		"timeline":   2,
		"final":      1.5,
	}
	for id, want := range weights {
		q, ok := QuestionByID(id)
		require.True(t, ok, "question %q", id)
		assert.Equal(t, want, q.Weight, "question %q", id)
	}
}

func TestGraphOptionsWithinScale(t *testing.T) {
	for _, id := range []string{"initial", "goal", "commitment", "budget", "timeline", "final"} {
		q, _ := QuestionByID(id)
		require.Len(t, q.Options, 4, "question %q", id)
		for _, opt := range q.Options {
			assert.GreaterOrEqual(t, opt.Score, 1.0, "question %q option %q", id, opt.Text)
			assert.LessOrEqual(t, opt.Score, 10.0, "question %q option %q", id, opt.Text)
			assert.NotEmpty(t, opt.Text)
		}
	}
}
