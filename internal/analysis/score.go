package analysis

import "strings"

// Disclaimer must accompany every rendered assessment. The scorer is an
// explainable point total, not a statistical model.
const Disclaimer = "This is an explainable estimate based on case circumstances, not a prediction of the outcome."

const baseScore = 50

// Score computes a case-strength assessment from an analysis result.
// It starts at a baseline of 50 and applies additive adjustments, each
// recorded as a factor with human-readable text and its signed impact.
// The final score is clamped to [0,100] before banding. A nil result
// yields no assessment.
func Score(a *AnalysisResult) *Assessment {
	if a == nil {
		return nil
	}

	score := baseScore
	var factors []Factor

	addFactor := func(text string, impact int) {
		score += impact
		factors = append(factors, Factor{
			Text:     text,
			Impact:   impact,
			Positive: impact > 0,
		})
	}

	// Category adjustments are mutually exclusive: only the first
	// matching branch applies.
	category := strings.ToLower(a.Category)
	switch {
	case strings.Contains(category, "rating") || strings.Contains(category, "performance"):
		addFactor("Rating and performance cases are frequently overturned with context", 15)
	case strings.Contains(category, "safety") || strings.Contains(category, "fraud"):
		addFactor("Safety and fraud cases face stricter platform review", -25)
	case strings.Contains(category, "completion"):
		addFactor("Completion rate disputes respond well to documentation", 10)
	}

	switch n := len(a.MissingInfo); {
	case n == 0:
		addFactor("Notice contains all key details", 20)
	case n > 3:
		addFactor("Several key details are missing from the notice", -15)
	default:
		addFactor("Some details are missing from the notice", -5)
	}

	switch {
	case a.DaysRemaining > 14:
		addFactor("Ample time remains before the appeal deadline", 10)
	case a.DaysRemaining < 3:
		addFactor("Appeal deadline is imminent", -10)
	}

	platform := strings.ToLower(a.Platform)
	if strings.Contains(platform, "instacart") {
		addFactor("Instacart appeals reach human reviewers more often", 8)
	}
	if strings.Contains(platform, "amazon") {
		addFactor("Amazon Flex appeals are largely automated", -12)
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	likelihood, band := banding(score)

	return &Assessment{
		Score:          score,
		Likelihood:     likelihood,
		ConfidenceBand: band,
		Factors:        factors,
	}
}

func banding(score int) (string, string) {
	switch {
	case score >= 65:
		return "High", "65-85%"
	case score >= 40:
		return "Medium", "40-65%"
	default:
		return "Low", "15-40%"
	}
}
