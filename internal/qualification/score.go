package qualification

import "fmt"

// Answer is one recorded selection, carrying the weight of the
// question it answered so scoring never re-reads the graph.
type Answer struct {
	QuestionID string  `json:"question_id"`
	OptionText string  `json:"option_text"`
	Score      float64 `json:"score"`
	Weight     float64 `json:"weight"`
	Emoji      string  `json:"emoji,omitempty"`
}

// Outcome buckets a final score into a qualification tier.
type Outcome string

const (
	OutcomeHighlyQualified    Outcome = "highly_qualified"
	OutcomeQualified          Outcome = "qualified"
	OutcomeBuildingFoundation Outcome = "building_foundation"
)

// Label returns the display heading for the tier.
func (o Outcome) Label() string {
	switch o {
	case OutcomeHighlyQualified:
		return "HIGHLY QUALIFIED!"
	case OutcomeQualified:
		return "QUALIFIED"
	default:
		return "BUILDING FOUNDATION"
	}
}

// TotalScore computes the weighted mean of the recorded answers on
// the 0-10 scale. Order does not matter and no answers means zero.
func TotalScore(answers []Answer) float64 {
	var weightedSum, totalWeight float64
	for _, a := range answers {
		weightedSum += a.Score * a.Weight
		totalWeight += a.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// OutcomeFor buckets a score: 7.5 and above is highly qualified, 5.0
// and above qualified, everything below building foundation.
func OutcomeFor(score float64) Outcome {
	switch {
	case score >= 7.5:
		return OutcomeHighlyQualified
	case score >= 5.0:
		return OutcomeQualified
	default:
		return OutcomeBuildingFoundation
	}
}

// RedirectFor returns the post-chat destination. Qualified visitors
// (5.0 and above) go straight to checkout with their score in the
// query string, shown to one decimal; everyone else lands on the
// sales page flagged as an explorer.
func RedirectFor(score float64) string {
	if score >= 5.0 {
		return fmt.Sprintf("/checkout?qualified=true&score=%.1f", score)
	}
	return "/sales?qualified=explorer"
}

// answerByQuestion finds the recorded answer for a question, if any.
func answerByQuestion(answers []Answer, questionID string) (Answer, bool) {
	for _, a := range answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// ResultMessage picks the tier copy variant that best matches the
// visitor's strongest signals.
func ResultMessage(outcome Outcome, answers []Answer) string {
	initial, _ := answerByQuestion(answers, "initial")
	goal, _ := answerByQuestion(answers, "goal")
	commitment, _ := answerByQuestion(answers, "commitment")
	budget, _ := answerByQuestion(answers, "budget")
	timeline, _ := answerByQuestion(answers, "timeline")

	switch outcome {
	case OutcomeHighlyQualified:
		hasExperience := initial.Score >= 8
		hasUrgency := timeline.Score >= 8
		readyToInvest := budget.Score >= 8
		switch {
		case hasExperience && hasUrgency && readyToInvest:
			return "You're the perfect candidate - experienced, urgent, and ready to invest. Brandon's elite methods will take you to the next level immediately."
		case hasExperience:
			return "Your advanced experience combined with Brandon's championship methods will create extraordinary results. You're ready for the most elite training."
		case hasUrgency && readyToInvest:
			return "Your urgency and investment mindset show you're serious about transformation. Brandon will fast-track your journey to championship physique."
		default:
			return "You're exactly the type of dedicated individual Brandon works with. Your commitment level and goals align perfectly with our elite transformation program."
		}
	case OutcomeQualified:
		switch {
		case commitment.Score >= 7 && goal.Score >= 8:
			return "Your strong commitment and clear goals are the foundation for success. Brandon's guidance will accelerate your transformation journey."
		case goal.Score >= 8:
			return "Your ambitious goals show you're ready for change. With Brandon's proven system, you'll achieve the transformation you desire."
		default:
			return "You have what it takes to succeed. With the right guidance and Brandon's proven system, you can achieve the transformation you're looking for."
		}
	default:
		isExploring := goal.Score > 0 && goal.Score <= 3
		isBeginner := initial.Score > 0 && initial.Score <= 3
		switch {
		case isExploring:
			return "Taking time to explore your options is wise. We have resources to help you understand what's possible with the right guidance."
		case isBeginner:
			return "Every champion started as a beginner. We'll help you build a strong foundation and develop the habits for long-term success."
		default:
			return "Everyone starts somewhere. While you may need more preparation, we have resources to help you build the foundation for success."
		}
	}
}
