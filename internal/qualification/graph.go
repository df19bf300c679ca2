// Package qualification implements the pre-sales chat that scores a
// visitor across a fixed question graph and routes them to checkout or
// to the long-form sales page.
package qualification

// Option is one selectable answer. Score contributes to the weighted
// total under the owning question's weight. Next names the follow-up
// question for this option; an empty Next ends the chat. Each option
// carries its own successor so the graph can branch, though the
// shipped graph is a straight path.
type Option struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Emoji string  `json:"emoji,omitempty"`
	Next  string  `json:"-"`
}

// Question is a node in the conversation graph.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Weight  float64  `json:"weight"`
	Options []Option `json:"options"`
}

// StartQuestionID is the entry node of the graph.
const StartQuestionID = "initial"

// questions is the fixed conversation graph. Weights bias the final
// score toward investment readiness (budget) and goal clarity.
var questions = map[string]Question{
	"initial": {
		ID:     "initial",
		Text:   "What's your current fitness level?",
		Weight: 2,
		Options: []Option{
			{Text: "Complete beginner", Score: 3, Emoji: "🌱", Next: "goal"},
			{Text: "Some experience (6-12 months)", Score: 5, Emoji: "💪", Next: "goal"},
			{Text: "Intermediate (1-3 years)", Score: 8, Emoji: "🔥", Next: "goal"},
			{Text: "Advanced (3+ years)", Score: 10, Emoji: "⚡", Next: "goal"},
		},
	},
	"goal": {
		ID:     "goal",
		Text:   "What's your primary fitness goal?",
		Weight: 3,
		Options: []Option{
			{Text: "Build muscle mass", Score: 10, Emoji: "💯", Next: "commitment"},
			{Text: "Get shredded & defined", Score: 10, Emoji: "🎯", Next: "commitment"},
			{Text: "Improve overall fitness", Score: 7, Emoji: "📈", Next: "commitment"},
			{Text: "Just exploring options", Score: 2, Emoji: "🤔", Next: "commitment"},
		},
	},
	"commitment": {
		ID:     "commitment",
		Text:   "How many days per week can you train?",
		Weight: 2.5,
		Options: []Option{
			{Text: "1-2 days", Score: 3, Emoji: "📅", Next: "budget"},
			{Text: "3-4 days", Score: 7, Emoji: "📆", Next: "budget"},
			{Text: "5-6 days", Score: 10, Emoji: "🗓️", Next: "budget"},
			{Text: "Every day", Score: 9, Emoji: "🔥", Next: "budget"},
		},
	},
	"budget": {
		ID:     "budget",
		Text:   "Are you ready to invest in your transformation?",
		Weight: 3.5,
		Options: []Option{
			{Text: "Yes, I'm ready to invest in myself", Score: 10, Emoji: "💎", Next: "timeline"},
			{Text: "I need to see the value first", Score: 6, Emoji: "🤝", Next: "timeline"},
			{Text: "Depends on the price", Score: 4, Emoji: "💭", Next: "timeline"},
			{Text: "Just looking for free content", Score: 1, Emoji: "👀", Next: "timeline"},
		},
	},
	"timeline": {
		ID:     "timeline",
		Text:   "When do you want to start seeing results?",
		Weight: 2,
		Options: []Option{
			{Text: "Immediately - I'm ready now", Score: 10, Emoji: "🚀", Next: "final"},
			{Text: "Within the next month", Score: 8, Emoji: "📈", Next: "final"},
			{Text: "In a few months", Score: 5, Emoji: "📊", Next: "final"},
			{Text: "No specific timeline", Score: 2, Emoji: "🕐", Next: "final"},
		},
	},
	"final": {
		ID:     "final",
		Text:   "Have you tried other fitness programs before?",
		Weight: 1.5,
		Options: []Option{
			{Text: "Yes, but didn't get results", Score: 9, Emoji: "💪"},
			{Text: "Yes, and got some results", Score: 7, Emoji: "✅"},
			{Text: "No, this would be my first", Score: 8, Emoji: "🆕"},
			{Text: "I prefer to train on my own", Score: 3, Emoji: "🏃"},
		},
	},
}

// QuestionByID looks up a graph node.
func QuestionByID(id string) (Question, bool) {
	q, ok := questions[id]
	return q, ok
}

// QuestionCount is the number of nodes every completed session visits.
func QuestionCount() int {
	return len(questions)
}
